package tree

import (
	"fmt"
)

// Instance is one occurrence of a pattern in one database tree. Nodes[k] is
// the database node realizing the k-th pattern node in preorder.
type Instance struct {
	Tid   int
	Nodes []int
}

func NewInstance(tid int, nodes ...int) *Instance {
	return &Instance{Tid: tid, Nodes: nodes}
}

// Scope is the growth window of the instance at pattern position pos. L is
// always the last node of the instance and R is the partner of the node at
// pos. Legal growth lies strictly between them.
func (inst *Instance) Scope(rec *Record, pos int) (L, R int) {
	last := inst.Nodes[len(inst.Nodes)-1]
	return last, rec.Partner(inst.Nodes[pos])
}

// Extend returns a copy of the instance with idx appended.
func (inst *Instance) Extend(idx int) *Instance {
	nodes := make([]int, len(inst.Nodes), len(inst.Nodes)+1)
	copy(nodes, inst.Nodes)
	return &Instance{
		Tid:   inst.Tid,
		Nodes: append(nodes, idx),
	}
}

func (inst *Instance) Transaction() int {
	return inst.Tid
}

func (inst *Instance) Components() []int {
	return inst.Nodes
}

// attachment finds the pattern position whose database node has idx as a
// direct child. -1 when no pattern node is the parent.
func (inst *Instance) attachment(rec *Record, idx int) int {
	parent := rec.Parent(idx)
	if parent < 0 {
		return -1
	}
	for pos, node := range inst.Nodes {
		if node == parent {
			return pos
		}
	}
	return -1
}

func (inst *Instance) String() string {
	return fmt.Sprintf("<Instance %d %v>", inst.Tid, inst.Nodes)
}
