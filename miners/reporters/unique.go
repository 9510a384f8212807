package reporters

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/treespan/lattice"
	"github.com/timtadh/treespan/miners"
)

// Unique passes each distinct pattern to the inner reporter once.
type Unique struct {
	Seen     *set.SortedSet
	Reporter miners.Reporter
	dups     int
}

func NewUnique(reporter miners.Reporter) *Unique {
	return &Unique{
		Seen:     set.NewSortedSet(10),
		Reporter: reporter,
	}
}

func (r *Unique) Report(n lattice.Node) error {
	label := types.ByteSlice(n.Pattern().Label())
	if r.Seen.Has(label) {
		r.dups++
		return nil
	}
	if err := r.Seen.Add(label); err != nil {
		return err
	}
	return r.Reporter.Report(n)
}

func (r *Unique) Close() error {
	if r.dups > 0 {
		errors.Logf("WARN", "unique dropped %d duplicate patterns", r.dups)
	}
	return r.Reporter.Close()
}
