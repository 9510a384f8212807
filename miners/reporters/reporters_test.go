package reporters

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"database/sql"
	"io/ioutil"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
	"github.com/timtadh/treespan/miners"
	"github.com/timtadh/treespan/types/tree"
)

// patterns are every node grown from the tree 1(2)(3) in dfs order.
func patterns(t *testing.T) []lattice.Node {
	dt := tree.NewDatabase(&config.Config{Support: 1}, &tree.Config{MinSize: 1})
	if _, err := dt.AddTokens([]tree.Label{1, 2, -1, 3, -1, -1}); err != nil {
		t.Fatal(err)
	}
	singletons, err := dt.Singletons()
	if err != nil {
		t.Fatal(err)
	}
	nodes := make([]lattice.Node, 0, 6)
	var walk func(n lattice.Node)
	walk = func(n lattice.Node) {
		nodes = append(nodes, n)
		kids, err := n.Children()
		if err != nil {
			t.Fatal(err)
		}
		for _, k := range kids {
			walk(k)
		}
	}
	for _, n := range singletons {
		walk(n)
	}
	return nodes
}

func report(t *testing.T, r miners.Reporter, nodes []lattice.Node) {
	for _, n := range nodes {
		if err := r.Report(n); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestChain(t *testing.T) {
	x := assert.New(t)
	nodes := patterns(t)
	a := &Collector{}
	b := &Collector{}
	report(t, &Chain{[]miners.Reporter{a, b}}, nodes)
	x.Len(a.Nodes, len(nodes))
	x.Equal(a.Nodes, b.Nodes)
}

func TestUnique(t *testing.T) {
	x := assert.New(t)
	nodes := patterns(t)
	c := &Collector{}
	report(t, NewUnique(c), append(nodes, nodes...))
	x.Equal(nodes, c.Nodes)
}

func TestSkip(t *testing.T) {
	x := assert.New(t)
	nodes := patterns(t)
	c := &Collector{}
	report(t, NewSkip(2, c), nodes)
	x.Equal([]lattice.Node{nodes[1], nodes[3], nodes[5]}, c.Nodes)
	c = &Collector{}
	report(t, NewSkip(0, c), nodes)
	x.Equal(nodes, c.Nodes)
}

func TestCount(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Output: t.TempDir()}
	r, err := NewCount(conf, "count")
	x.Nil(err)
	report(t, r, patterns(t))
	x.Equal(6, r.Count())
	bytes, err := ioutil.ReadFile(conf.OutputFile("count"))
	x.Nil(err)
	x.Equal("6\nsize 1: 3\nsize 2: 2\nsize 3: 1\n", string(bytes))
}

func TestFile(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Output: t.TempDir()}
	r, err := NewFile(conf, tree.Formatter{}, "patterns", "embeddings")
	x.Nil(err)
	nodes := patterns(t)
	report(t, r, nodes[:2])
	bytes, err := ioutil.ReadFile(conf.OutputFile("patterns.trees"))
	x.Nil(err)
	x.Equal("# size 1 support 1\n1 -1\n# size 2 support 1\n1 2 -1 -1\n", string(bytes))
	bytes, err = ioutil.ReadFile(conf.OutputFile("embeddings.trees"))
	x.Nil(err)
	x.Equal("1 -1\t0\t0\n1 2 -1 -1\t0\t0 1\n", string(bytes))
}

func TestDir(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Output: t.TempDir()}
	r, err := NewDir(conf, tree.Formatter{}, "patterns")
	x.Nil(err)
	report(t, r, patterns(t))
	bytes, err := ioutil.ReadFile(filepath.Join(conf.Output, "patterns", "2", "pattern.name"))
	x.Nil(err)
	x.Equal("1 2 -1 3 -1 -1\n", string(bytes))
	bytes, err = ioutil.ReadFile(filepath.Join(conf.Output, "patterns", "count"))
	x.Nil(err)
	x.Equal("6\n", string(bytes))
}

func TestLog(t *testing.T) {
	x := assert.New(t)
	r := NewLog(tree.Formatter{}, "DEBUG", "test")
	report(t, r, patterns(t))
	x.Equal(6, r.count)
}

func TestSQLite(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Output: t.TempDir()}
	r, err := NewSQLite(conf, tree.Formatter{}, "patterns.sqlite", true)
	x.Nil(err)
	r.batchSize = 4
	report(t, r, patterns(t))

	db, err := sql.Open("sqlite", conf.OutputFile("patterns.sqlite"))
	x.Nil(err)
	defer db.Close()
	var count int
	x.Nil(db.QueryRow("SELECT COUNT(*) FROM patterns").Scan(&count))
	x.Equal(6, count)
	var name string
	var size, support int
	x.Nil(db.QueryRow("SELECT name, size, support FROM patterns WHERE id = 2").Scan(&name, &size, &support))
	x.Equal("1 2 -1 3 -1 -1", name)
	x.Equal(3, size)
	x.Equal(1, support)
	var nodes string
	x.Nil(db.QueryRow("SELECT nodes FROM embeddings WHERE pattern_id = 2").Scan(&nodes))
	x.Equal("0 1 3", nodes)
}

func TestHeapProfile(t *testing.T) {
	x := assert.New(t)
	dir := t.TempDir()
	r, err := NewHeapProfile(filepath.Join(dir, "heap"), 0, 3)
	x.Nil(err)
	report(t, r, patterns(t))
	entries, err := os.ReadDir(dir)
	x.Nil(err)
	x.NotEmpty(entries)
}

func TestMax(t *testing.T) {
	x := assert.New(t)
	nodes := patterns(t)
	c := &Collector{}
	report(t, NewMax(c), nodes)
	names := make([]string, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		names = append(names, tree.Formatter{}.PatternName(n))
	}
	x.Equal([]string{"1 2 -1 3 -1 -1", "1 3 -1 -1", "2 -1", "3 -1"}, names)
}

func TestSQLiteBadPath(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Output: filepath.Join(t.TempDir(), "missing", "dir")}
	_, err := NewSQLite(conf, tree.Formatter{}, "patterns.sqlite", true)
	x.NotNil(err)
	if err != nil {
		x.Contains(err.Error(), "patterns.sqlite")
	}
}
