package reporters

import (
	"github.com/timtadh/treespan/lattice"
	"github.com/timtadh/treespan/miners"
)

// Max passes on the patterns which have no frequent growth, the leaves of
// the search. A leaf may still be contained in a larger frequent pattern
// grown from a different prefix.
type Max struct {
	Reporter miners.Reporter
}

func NewMax(reporter miners.Reporter) *Max {
	return &Max{
		Reporter: reporter,
	}
}

// Report asks for the first child only so at most one child is projected.
func (r *Max) Report(n lattice.Node) error {
	it, err := n.IterChildren()
	if err != nil {
		return err
	}
	_, err, next := it()
	if err != nil {
		return err
	} else if next == nil {
		return r.Reporter.Report(n)
	}
	return nil
}

func (r *Max) Close() error {
	return r.Reporter.Close()
}
