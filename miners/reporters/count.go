package reporters

import (
	"fmt"
	"os"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
)

// Count writes the number of reported patterns, and a histogram of pattern
// sizes, to a file in the output directory on Close.
type Count struct {
	config   *config.Config
	count    int
	levels   map[int]int
	maxLevel int
	filename string
}

func NewCount(c *config.Config, filename string) (*Count, error) {
	r := &Count{
		config:   c,
		levels:   make(map[int]int),
		filename: filename,
	}
	return r, nil
}

func (r *Count) Report(n lattice.Node) error {
	r.count++
	level := n.Pattern().Level()
	r.levels[level]++
	if level > r.maxLevel {
		r.maxLevel = level
	}
	return nil
}

func (r *Count) Count() int {
	return r.count
}

func (r *Count) Close() error {
	f, err := os.Create(r.config.OutputFile(r.filename))
	if err != nil {
		return err
	}
	_, perr := fmt.Fprintf(f, "%v\n", r.count)
	for level := 1; level <= r.maxLevel && perr == nil; level++ {
		_, perr = fmt.Fprintf(f, "size %d: %d\n", level, r.levels[level])
	}
	err = f.Close()
	if perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	return nil
}
