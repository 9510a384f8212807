package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/treespan/lattice"
)

type Log struct {
	fmtr   lattice.Formatter
	level  string
	prefix string
	count  int
}

func NewLog(fmtr lattice.Formatter, level, prefix string) *Log {
	if level == "" {
		level = "INFO"
	}
	return &Log{fmtr: fmtr, level: level, prefix: prefix}
}

func (lr *Log) Report(n lattice.Node) error {
	lr.count++
	depth := n.Pattern().Level()
	if lr.prefix != "" {
		errors.Logf(lr.level, "%s %v depth %d support %d [%v]", lr.prefix, lr.count, depth, n.Support(), lr.fmtr.PatternName(n))
	} else {
		errors.Logf(lr.level, "%v depth %d support %d [%v]", lr.count, depth, n.Support(), lr.fmtr.PatternName(n))
	}
	return nil
}

func (lr *Log) Close() error {
	return nil
}
