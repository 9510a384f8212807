package tree

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/types"
)

// End closes the most recently opened node in a token sequence.
const End Label = -1

type Label int32

// Record is a bracket encoded ordered tree. Nodes are addressed by the index
// of their label token in Tokens.
type Record struct {
	Tokens   []Label
	partner  []int
	children [][]int
	parent   []int
	size     int
}

type FormatError struct {
	Line   int
	Tokens []Label
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("record on line %d in bad format (%s): %v", e.Line, e.Reason, e.Tokens)
	}
	return fmt.Sprintf("record in bad format (%s): %v", e.Reason, e.Tokens)
}

// NewRecord indexes the tokens. The slice is owned by the Record afterwards.
func NewRecord(tokens []Label) (*Record, error) {
	r := &Record{
		Tokens:   tokens,
		partner:  make([]int, len(tokens)),
		children: make([][]int, len(tokens)),
		parent:   make([]int, len(tokens)),
	}
	if len(tokens) == 0 {
		return nil, &FormatError{Tokens: tokens, Reason: "empty"}
	}
	stack := make([]int, 0, 10)
	for i, t := range tokens {
		r.partner[i] = -1
		r.parent[i] = -1
		if t != End {
			stack = append(stack, i)
			r.size++
			continue
		}
		if len(stack) == 0 {
			return nil, &FormatError{Tokens: tokens, Reason: fmt.Sprintf("unmatched end at %d", i)}
		}
		start := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r.partner[start] = i
		if len(stack) > 0 {
			father := stack[len(stack)-1]
			r.children[father] = append(r.children[father], start)
			r.parent[start] = father
		}
	}
	if len(stack) != 0 {
		return nil, &FormatError{Tokens: tokens, Reason: fmt.Sprintf("%d unclosed nodes", len(stack))}
	}
	return r, nil
}

// ParseRecord reads a whitespace separated line of integer tokens.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Fields(line)
	tokens := make([]Label, 0, len(fields))
	for _, f := range fields {
		t, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, errors.Errorf("token '%v' is not an int: %v", f, err)
		}
		tokens = append(tokens, Label(t))
	}
	return NewRecord(tokens)
}

// Singleton is the one node pattern [label, End].
func Singleton(label Label) *Record {
	r, err := NewRecord([]Label{label, End})
	if err != nil {
		panic(err)
	}
	return r
}

// Partner is the index of the end token closing node i.
func (r *Record) Partner(i int) int {
	return r.partner[i]
}

func (r *Record) Children(i int) []int {
	return r.children[i]
}

// Parent of node i, -1 for a root or an end token.
func (r *Record) Parent(i int) int {
	return r.parent[i]
}

func (r *Record) Size() int {
	return r.size
}

// Labels lists the node labels in preorder.
func (r *Record) Labels() []Label {
	labels := make([]Label, 0, r.size)
	for _, t := range r.Tokens {
		if t != End {
			labels = append(labels, t)
		}
	}
	return labels
}

// Extend adds a node with the given label as the last child of the pos-th
// node (preorder) of the pattern. The receiver is not changed.
func (r *Record) Extend(label Label, pos int) (*Record, error) {
	if label == End {
		return nil, errors.Errorf("can not extend with the end marker")
	}
	cnt, end := -1, -1
	for i, t := range r.Tokens {
		if t == End {
			continue
		}
		cnt++
		if cnt == pos {
			end = r.partner[i]
			break
		}
	}
	if end < 0 {
		return nil, errors.Errorf("position %d out of range for pattern of size %d", pos, r.size)
	}
	tokens := make([]Label, 0, len(r.Tokens)+2)
	tokens = append(tokens, r.Tokens[:end]...)
	tokens = append(tokens, label, End)
	tokens = append(tokens, r.Tokens[end:]...)
	return NewRecord(tokens)
}

// Label is a binary encoding of the token sequence, usable as a map key.
func (r *Record) Label() []byte {
	bytes := make([]byte, 4*(len(r.Tokens)+1))
	binary.BigEndian.PutUint32(bytes[0:4], uint32(len(r.Tokens)))
	s := 4
	for _, t := range r.Tokens {
		binary.BigEndian.PutUint32(bytes[s:s+4], uint32(int32(t)))
		s += 4
	}
	return bytes
}

func (r *Record) Level() int {
	return r.size
}

func (r *Record) String() string {
	parts := make([]string, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		parts = append(parts, strconv.Itoa(int(t)))
	}
	return strings.Join(parts, " ")
}

func (r *Record) Equals(o types.Equatable) bool {
	a := types.ByteSlice(r.Label())
	switch b := o.(type) {
	case *Record:
		return a.Equals(types.ByteSlice(b.Label()))
	default:
		return false
	}
}

func (r *Record) Less(o types.Sortable) bool {
	a := types.ByteSlice(r.Label())
	switch b := o.(type) {
	case *Record:
		return a.Less(types.ByteSlice(b.Label()))
	default:
		return false
	}
}

func (r *Record) Hash() int {
	return types.ByteSlice(r.Label()).Hash()
}
