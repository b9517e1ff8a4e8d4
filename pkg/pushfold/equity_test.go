package pushfold

import (
	"math"
	"math/rand"
	"testing"
)

func TestAllHandClassesCount(t *testing.T) {
	classes := AllHandClasses()
	if len(classes) != NumHandClasses {
		t.Fatalf("AllHandClasses() returned %d classes, want %d", len(classes), NumHandClasses)
	}

	pairs, suited, offsuit := 0, 0, 0
	for _, h := range classes {
		switch {
		case h.Pair():
			pairs++
		case h.Suited:
			suited++
		default:
			offsuit++
		}
	}
	if pairs != 13 {
		t.Errorf("pairs = %d, want 13", pairs)
	}
	if suited != 78 {
		t.Errorf("suited = %d, want 78", suited)
	}
	if offsuit != 78 {
		t.Errorf("offsuit = %d, want 78", offsuit)
	}
}

func TestHandClassString(t *testing.T) {
	classes := AllHandClasses()
	if got := classes[0].String(); got != "AA" {
		t.Errorf("classes[0].String() = %q, want %q", got, "AA")
	}
	if !classes[0].Pair() {
		t.Errorf("classes[0] should be a pocket pair")
	}
}

func TestReferenceOracleIsSymmetric(t *testing.T) {
	classes := AllHandClasses()
	oracle := NewReferenceOracle(classes)
	for i := 0; i < len(classes); i += 17 {
		for j := 0; j < len(classes); j += 23 {
			if i == j {
				continue
			}
			eij := oracle.Equity(i, j)
			eji := oracle.Equity(j, i)
			if math.Abs((eij+eji)-1) > 1e-12 {
				t.Fatalf("Equity(%d,%d)=%v and Equity(%d,%d)=%v do not sum to 1", i, j, eij, j, i, eji)
			}
		}
	}
}

func TestReferenceOracleSelfEquityIsHalf(t *testing.T) {
	classes := AllHandClasses()
	oracle := NewReferenceOracle(classes)
	if got := oracle.Equity(5, 5); got != 0.5 {
		t.Errorf("Equity(i,i) = %v, want 0.5", got)
	}
}

func TestReferenceOracleOrdersPremiumAboveTrash(t *testing.T) {
	classes := AllHandClasses()
	oracle := NewReferenceOracle(classes)

	aaIdx, trashIdx := -1, -1
	for i, h := range classes {
		if h.String() == "AA" {
			aaIdx = i
		}
		if h.String() == "72o" {
			trashIdx = i
		}
	}
	if aaIdx == -1 || trashIdx == -1 {
		t.Fatalf("expected to find AA and 72o among the 169 classes")
	}
	if eq := oracle.Equity(aaIdx, trashIdx); eq < 0.8 {
		t.Errorf("Equity(AA, 72o) = %v, want a lopsided equity in AA's favor", eq)
	}
}

func TestMonteCarloOracleIsSymmetric(t *testing.T) {
	classes := AllHandClasses()[:12]
	oracle := NewMonteCarloOracle(classes, 80, rand.New(rand.NewSource(1)))
	for i := range classes {
		for j := range classes {
			if i == j {
				continue
			}
			eij := oracle.Equity(i, j)
			eji := oracle.Equity(j, i)
			if math.Abs((eij+eji)-1) > 1e-12 {
				t.Fatalf("Equity(%d,%d)=%v and Equity(%d,%d)=%v do not sum to 1", i, j, eij, j, i, eji)
			}
		}
	}
}

func TestMonteCarloOracleSelfEquityIsHalf(t *testing.T) {
	classes := AllHandClasses()[:5]
	oracle := NewMonteCarloOracle(classes, 40, rand.New(rand.NewSource(2)))
	if got := oracle.Equity(2, 2); got != 0.5 {
		t.Errorf("Equity(i,i) = %v, want 0.5", got)
	}
}

func TestMonteCarloOracleOrdersPremiumAboveTrash(t *testing.T) {
	classes := AllHandClasses()

	aaIdx, trashIdx := -1, -1
	for i, h := range classes {
		if h.String() == "AA" {
			aaIdx = i
		}
		if h.String() == "72o" {
			trashIdx = i
		}
	}
	if aaIdx == -1 || trashIdx == -1 {
		t.Fatalf("expected to find AA and 72o among the 169 classes")
	}

	subset := []HandClass{classes[aaIdx], classes[trashIdx]}
	oracle := NewMonteCarloOracle(subset, 400, rand.New(rand.NewSource(3)))
	if eq := oracle.Equity(0, 1); eq < 0.7 {
		t.Errorf("Monte Carlo Equity(AA, 72o) = %v, want a lopsided equity in AA's favor", eq)
	}
}

func TestSampleHoleCardsRespectsClassShape(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	classes := AllHandClasses()

	var pair, suited, offsuit HandClass
	for _, h := range classes {
		switch {
		case h.Pair() && pair == (HandClass{}):
			pair = h
		case h.Suited && !h.Pair() && suited == (HandClass{}):
			suited = h
		case !h.Suited && !h.Pair() && offsuit == (HandClass{}):
			offsuit = h
		}
	}

	for _, h := range []HandClass{pair, suited, offsuit} {
		cards, used, ok := sampleHoleCards(h, 0, rng)
		if !ok {
			t.Fatalf("sampleHoleCards(%v) failed to find a combination", h)
		}
		if cards[0].Rank() != h.High || cards[1].Rank() != h.Low {
			t.Errorf("sampleHoleCards(%v) = %v, wrong ranks", h, cards)
		}
		if h.Suited && !h.Pair() && cards[0].Suit() != cards[1].Suit() {
			t.Errorf("sampleHoleCards(%v) = %v, want matching suits", h, cards)
		}
		if !h.Pair() && !h.Suited && cards[0].Suit() == cards[1].Suit() {
			t.Errorf("sampleHoleCards(%v) = %v, want distinct suits", h, cards)
		}
		if !used.HasCard(cards[0]) || !used.HasCard(cards[1]) {
			t.Errorf("sampleHoleCards(%v) returned a used set missing the dealt cards", h)
		}
	}
}
