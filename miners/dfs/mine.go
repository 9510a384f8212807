package dfs

import (
	"context"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
	"github.com/timtadh/treespan/miners"
)

// Miner grows every frequent pattern depth first. Children are visited in
// growth element discovery order so the report order is reproducible.
type Miner struct {
	Config  *config.Config
	Dt      lattice.DataType
	Rptr    miners.Reporter
	visited int
}

func NewMiner(conf *config.Config) *Miner {
	return &Miner{
		Config: conf,
	}
}

func (m *Miner) Init(dt lattice.DataType, rptr miners.Reporter) (err error) {
	m.Dt = dt
	m.Rptr = rptr
	m.visited = 0
	return nil
}

func (m *Miner) Close() error {
	errors := make(chan error)
	go func() {
		errors <- m.Dt.Close()
	}()
	go func() {
		errors <- m.Rptr.Close()
	}()
	var first error
	for i := 0; i < 2; i++ {
		err := <-errors
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Visited is the number of patterns visited by the last call to Mine.
func (m *Miner) Visited() int {
	return m.visited
}

func (m *Miner) Mine(ctx context.Context, dt lattice.DataType, rptr miners.Reporter, fmtr lattice.Formatter) error {
	err := m.Init(dt, rptr)
	if err != nil {
		return err
	}
	if m.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Config.Timeout)
		defer cancel()
	}
	start := time.Now()
	singletons, err := m.Dt.Singletons()
	if err != nil {
		return err
	}
	errors.Logf("INFO", "database size: %d, min support: %d, frequent labels: %d", m.Dt.Size(), m.Dt.Support(), len(singletons))
	for _, n := range singletons {
		count, err := m.grow(ctx, n)
		m.visited += count
		if err != nil {
			errors.Logf("INFO", "stopped after %d patterns in %v", m.visited, time.Since(start))
			return err
		}
	}
	errors.Logf("INFO", "visited %d patterns in %v", m.visited, time.Since(start))
	return nil
}

// grow reports n and recursively grows its children. It returns how many
// patterns were visited under (and including) n.
func (m *Miner) grow(ctx context.Context, n lattice.Node) (visited int, err error) {
	visited = 1
	if m.Dt.Acceptable(n) {
		if err := m.Rptr.Report(n); err != nil {
			return visited, err
		}
	}
	if err := ctx.Err(); err != nil {
		return visited, err
	}
	it, err := n.IterChildren()
	if err != nil {
		return visited, err
	}
	kid, err, next := it()
	for next != nil {
		if cerr := ctx.Err(); cerr != nil {
			return visited, cerr
		}
		count, gerr := m.grow(ctx, kid)
		visited += count
		if gerr != nil {
			return visited, gerr
		}
		kid, err, next = next()
	}
	return visited, err
}
