package tree

import "testing"

import (
	"github.com/timtadh/treespan/config"
)

func database(t *testing.T, support int, counting Counting, lines ...string) *Database {
	conf := &config.Config{Support: support}
	dt := NewDatabase(conf, &Config{Counting: counting, MinSize: 1})
	for _, line := range lines {
		rec, err := ParseRecord(line)
		if err != nil {
			t.Fatal(err)
		}
		dt.Add(rec)
	}
	return dt
}

func singleton(t *testing.T, dt *Database, label Label) *Node {
	nodes, err := dt.Singletons()
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range nodes {
		if n.(*Node).Tree().Tokens[0] == label {
			return n.(*Node)
		}
	}
	t.Fatalf("label %d is not frequent", label)
	return nil
}

func geSupports(ges []Growth) map[GE]int {
	m := make(map[GE]int)
	for _, g := range ges {
		m[g.GE] = g.Support
	}
	return m
}
