package reporters

import (
	"fmt"
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/treespan/lattice"
)

// HeapProfile writes a heap profile every n-th report once after reports
// have been seen. Each profile goes to its own numbered file.
type HeapProfile struct {
	path         string
	after, every int
	count        int
	written      int
}

func NewHeapProfile(path string, after, every int) (*HeapProfile, error) {
	if every <= 0 {
		every = 1
	}
	hp := &HeapProfile{path: path, after: after, every: every}
	return hp, nil
}

func (hp *HeapProfile) Report(n lattice.Node) error {
	hp.count++
	if hp.count <= hp.after || (hp.count-hp.after)%hp.every != 0 {
		return nil
	}
	f, err := os.Create(fmt.Sprintf("%s.%d", hp.path, hp.written))
	if err != nil {
		return err
	}
	hp.written++
	err = pprof.WriteHeapProfile(f)
	cerr := f.Close()
	if err != nil {
		return err
	}
	return cerr
}

func (hp *HeapProfile) Close() error {
	return nil
}
