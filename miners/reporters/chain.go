package reporters

import (
	"github.com/timtadh/treespan/lattice"
	"github.com/timtadh/treespan/miners"
)

type Chain struct {
	Reporters []miners.Reporter
}

func (r *Chain) Report(n lattice.Node) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(n)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Chain) Close() error {
	var first error
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}
