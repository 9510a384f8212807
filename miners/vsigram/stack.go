package vsigram

import (
	"sync"
)

import (
	"github.com/timtadh/treespan/lattice"
)

// Stack is the shared work stack of the parallel miner. Pop blocks while the
// stack is empty and some registered thread may still push. Once every
// registered thread is waiting the stack closes itself.
type Stack struct {
	mu      sync.Mutex
	cond    *sync.Cond
	stack   []lattice.Node
	threads int
	waiting int
	closed  bool
}

func NewStack() *Stack {
	s := &Stack{
		stack: make([]lattice.Node, 0, 100),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *Stack) AddThread() int {
	s.mu.Lock()
	tid := s.threads
	s.threads++
	s.mu.Unlock()
	return tid
}

func (s *Stack) Close() {
	s.mu.Lock()
	s.closed = true
	s.stack = nil
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *Stack) Closed() bool {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	return closed
}

func (s *Stack) WaitClosed() {
	s.mu.Lock()
	for !s.closed {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

func (s *Stack) Push(node lattice.Node) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stack = append(s.stack, node)
	s.mu.Unlock()
	s.cond.Broadcast()
}

func (s *Stack) Pop() (node lattice.Node) {
	s.mu.Lock()
	for {
		if s.closed {
			s.mu.Unlock()
			return nil
		}
		if len(s.stack) > 0 {
			node = s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			s.mu.Unlock()
			return node
		}
		s.waiting++
		if s.threads > 0 && s.threads == s.waiting {
			s.closed = true
			s.stack = nil
			s.mu.Unlock()
			s.cond.Broadcast()
			return nil
		}
		s.cond.Wait()
		s.waiting--
	}
}
