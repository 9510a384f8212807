package reporters

import (
	"fmt"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
)

// Dir writes each pattern into its own numbered directory.
type Dir struct {
	config *config.Config
	fmt    lattice.Formatter
	dir    string
	count  int
}

func NewDir(c *config.Config, fmt lattice.Formatter, dirname string) (*Dir, error) {
	patterns := c.OutputFile(dirname)
	err := os.MkdirAll(patterns, 0775)
	if err != nil {
		return nil, err
	}
	r := &Dir{
		config: c,
		fmt:    fmt,
		dir:    patterns,
	}
	return r, nil
}

func (r *Dir) Report(n lattice.Node) error {
	dir := filepath.Join(r.dir, fmt.Sprintf("%d", r.count))
	err := os.MkdirAll(dir, 0775)
	if err != nil {
		return err
	}
	r.count++
	name, err := os.Create(filepath.Join(dir, "pattern.name"))
	if err != nil {
		return err
	}
	defer name.Close()
	fmt.Fprintf(name, "%s\n", r.fmt.PatternName(n))
	pattern, err := os.Create(filepath.Join(dir, "pattern"+r.fmt.FileExt()))
	if err != nil {
		return err
	}
	defer pattern.Close()
	err = r.fmt.FormatPattern(pattern, n)
	if err != nil {
		return err
	}
	embeddings, err := os.Create(filepath.Join(dir, "embeddings"+r.fmt.FileExt()))
	if err != nil {
		return err
	}
	defer embeddings.Close()
	return r.fmt.FormatEmbeddings(embeddings, n)
}

func (r *Dir) Close() error {
	count, err := os.Create(filepath.Join(r.dir, "count"))
	if err != nil {
		return err
	}
	defer count.Close()
	_, err = fmt.Fprintf(count, "%d\n", r.count)
	return err
}
