package vsigram

import (
	"context"
	"sync"
	"sync/atomic"
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

// Miner explores independent branches of the search in parallel. Each node
// on the stack owns its projected database so workers share nothing but the
// read only database. The set of visited patterns matches the dfs miner, the
// report order does not.
type Miner struct {
	Config  *config.Config
	Dt      lattice.DataType
	Rptr    miners.Reporter
	visited int64
}

func NewMiner(conf *config.Config) *Miner {
	return &Miner{
		Config: conf,
	}
}

func (m *Miner) Init(dt lattice.DataType, rptr miners.Reporter) (err error) {
	m.Dt = dt
	m.Rptr = rptr
	atomic.StoreInt64(&m.visited, 0)
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

func (m *Miner) Visited() int {
	return int(atomic.LoadInt64(&m.visited))
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
	err = m.mine(ctx)
	errors.Logf("INFO", "visited %d patterns in %v with %d workers", m.Visited(), time.Since(start), m.Config.Workers())
	return err
}

func (m *Miner) mine(ctx context.Context) error {
	singletons, err := m.Dt.Singletons()
	if err != nil {
		return err
	}
	errors.Logf("INFO", "database size: %d, min support: %d, frequent labels: %d", m.Dt.Size(), m.Dt.Support(), len(singletons))
	stack := NewStack()
	for i := len(singletons) - 1; i >= 0; i-- {
		stack.Push(singletons[i])
	}

	var errMu sync.Mutex
	var first error
	fail := func(err error) {
		errMu.Lock()
		if first == nil {
			first = err
		}
		errMu.Unlock()
		stack.Close()
	}

	reports := make(chan lattice.Node, 100)
	reported := make(chan bool)
	go func() {
		for n := range reports {
			if err := m.Rptr.Report(n); err != nil {
				fail(err)
			}
		}
		reported <- true
	}()

	var wg sync.WaitGroup
	workers := m.Config.Workers()
	for i := 0; i < workers; i++ {
		tid := stack.AddThread()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				n := stack.Pop()
				if n == nil {
					return
				}
				atomic.AddInt64(&m.visited, 1)
				if m.Dt.Acceptable(n) {
					reports <- n
				}
				if err := ctx.Err(); err != nil {
					fail(err)
					return
				}
				kids, err := n.Children()
				if err != nil {
					errors.Logf("ERROR", "worker %d: %v", tid, err)
					fail(err)
					return
				}
				for j := len(kids) - 1; j >= 0; j-- {
					stack.Push(kids[j])
				}
			}
		}()
	}
	stack.WaitClosed()
	wg.Wait()
	close(reports)
	<-reported
	return first
}
