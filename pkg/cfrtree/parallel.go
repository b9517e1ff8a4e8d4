package cfrtree

import "golang.org/x/sync/errgroup"

// forEachChild dispatches fn over every child concurrently and waits for all
// of them to finish before returning: all children of a node complete their
// respective pass before the parent's post-recursion computation begins,
// since siblings have no data dependency on each other.
func forEachChild(children []Node, fn func(i int, c Node) error) error {
	var g errgroup.Group
	for i, c := range children {
		i, c := i, c
		g.Go(func() error {
			return fn(i, c)
		})
	}
	return g.Wait()
}
