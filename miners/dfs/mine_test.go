package dfs

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"context"
	"io"
	"strings"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
	"github.com/timtadh/treespan/miners/reporters"
	"github.com/timtadh/treespan/types/tree"
)

const forest = `1 2 -1 3 2 -1 -1 -1
1 2 -1 3 -1 2 -1 -1
1 3 2 -1 -1 -1
2 1 3 -1 -1 -1
`

func load(t *testing.T, conf *config.Config, tc *tree.Config, data string) lattice.DataType {
	l, err := tree.NewIntLoader(conf, tc)
	if err != nil {
		t.Fatal(err)
	}
	dt, err := l.Load(func() (io.Reader, func()) {
		return strings.NewReader(data), func() {}
	})
	if err != nil {
		t.Fatal(err)
	}
	return dt
}

func mine(t *testing.T, conf *config.Config, tc *tree.Config, data string) (*Miner, []string) {
	dt := load(t, conf, tc, data)
	m := NewMiner(conf)
	c := &reporters.Collector{}
	err := m.Mine(context.Background(), dt, c, tree.Formatter{})
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		names = append(names, tree.Formatter{}.PatternName(n))
	}
	return m, names
}

func TestMineSingleTree(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Support: 1}
	m, names := mine(t, conf, &tree.Config{MinSize: 1}, "1 2 -1 3 -1 -1\n")
	x.Equal([]string{
		"1 -1",
		"1 2 -1 -1",
		"1 2 -1 3 -1 -1",
		"1 3 -1 -1",
		"2 -1",
		"3 -1",
	}, names)
	x.Equal(6, m.Visited())
}

func TestMineDeterministic(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Support: 2}
	_, a := mine(t, conf, &tree.Config{MinSize: 1}, forest)
	_, b := mine(t, conf, &tree.Config{MinSize: 1}, forest)
	x.Equal(a, b)
	x.Contains(a, "1 3 2 -1 -1 -1")
	x.NotContains(a, "2 1 -1 -1")
}

func TestMineMinSize(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Support: 1}
	m, names := mine(t, conf, &tree.Config{MinSize: 2}, "1 2 -1 3 -1 -1\n")
	x.Equal([]string{
		"1 2 -1 -1",
		"1 2 -1 3 -1 -1",
		"1 3 -1 -1",
	}, names)
	x.Equal(6, m.Visited())
}

func TestMineMaxSize(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Support: 1}
	m, names := mine(t, conf, &tree.Config{MinSize: 1, MaxSize: 2}, "1 2 -1 3 -1 -1\n")
	x.NotContains(names, "1 2 -1 3 -1 -1")
	x.Len(names, 5)
	x.Equal(5, m.Visited())
}

func TestMineNoFrequent(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Support: 3}
	m, names := mine(t, conf, &tree.Config{MinSize: 1}, "1 2 -1 -1\n1 -1\n")
	x.Empty(names)
	x.Equal(0, m.Visited())
}

func TestMineCancelled(t *testing.T) {
	x := assert.New(t)
	conf := &config.Config{Support: 1}
	dt := load(t, conf, &tree.Config{MinSize: 1}, "1 2 -1 3 -1 -1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMiner(conf)
	c := &reporters.Collector{}
	err := m.Mine(ctx, dt, c, tree.Formatter{})
	x.Equal(context.Canceled, err)
	// the pattern popped before noticing is still reported
	x.Len(c.Nodes, 1)
	x.Equal(1, m.Visited())
	x.Nil(m.Close())
}
