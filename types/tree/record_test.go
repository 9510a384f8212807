package tree

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"math/rand"
)

func randomTokens(r *rand.Rand, size, labels int) []Label {
	tokens := make([]Label, 0, 2*size)
	var grow func(budget int) int
	grow = func(budget int) int {
		tokens = append(tokens, Label(r.Intn(labels)+1))
		used := 1
		for used < budget && r.Intn(3) != 0 {
			used += grow(budget - used)
		}
		tokens = append(tokens, End)
		return used
	}
	grow(size)
	return tokens
}

func TestRecordScopes(t *testing.T) {
	x := assert.New(t)
	r, err := NewRecord([]Label{1, 2, -1, 3, -1, -1})
	x.Nil(err)
	x.Equal(3, r.Size())
	x.Equal(5, r.Partner(0))
	x.Equal(2, r.Partner(1))
	x.Equal(4, r.Partner(3))
	x.Equal([]int{1, 3}, r.Children(0))
	x.Empty(r.Children(1))
	x.Equal(-1, r.Parent(0))
	x.Equal(0, r.Parent(1))
	x.Equal(0, r.Parent(3))
	x.Equal([]Label{1, 2, 3}, r.Labels())
	x.Equal("1 2 -1 3 -1 -1", r.String())
}

func TestRecordDeep(t *testing.T) {
	x := assert.New(t)
	r, err := ParseRecord("1 2 4 -1 5 -1 -1 3 -1 -1")
	x.Nil(err)
	x.Equal(9, r.Partner(0))
	x.Equal(6, r.Partner(1))
	x.Equal([]int{1, 7}, r.Children(0))
	x.Equal([]int{2, 4}, r.Children(1))
	x.Equal(1, r.Parent(4))
}

func TestMalformed(t *testing.T) {
	x := assert.New(t)
	_, err := NewRecord([]Label{1, 2, -1})
	x.NotNil(err)
	_, ok := err.(*FormatError)
	x.True(ok, "expected a FormatError got %T", err)

	_, err = NewRecord([]Label{1, -1, -1})
	_, ok = err.(*FormatError)
	x.True(ok, "expected a FormatError got %T", err)

	_, err = NewRecord([]Label{})
	_, ok = err.(*FormatError)
	x.True(ok, "expected a FormatError got %T", err)

	_, err = ParseRecord("1 x -1")
	x.NotNil(err)
}

func TestPartnersNest(t *testing.T) {
	x := assert.New(t)
	rnd := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		r, err := NewRecord(randomTokens(rnd, 1+rnd.Intn(20), 4))
		x.Nil(err)
		labels := make([]int, 0, r.Size())
		for i, tok := range r.Tokens {
			if tok != End {
				labels = append(labels, i)
				x.True(r.Partner(i) > i)
				x.Equal(End, r.Tokens[r.Partner(i)])
			}
		}
		for _, i := range labels {
			for _, j := range labels {
				if i == j {
					continue
				}
				a, b := r.Partner(i), r.Partner(j)
				nested := (i < j && b < a) || (j < i && a < b)
				disjoint := a < j || b < i
				x.True(nested || disjoint, "[%d, %d] and [%d, %d] overlap in %v", i, a, j, b, r)
			}
		}
	}
}

func TestChildrenComplete(t *testing.T) {
	x := assert.New(t)
	rnd := rand.New(rand.NewSource(11))
	for n := 0; n < 50; n++ {
		r, err := NewRecord(randomTokens(rnd, 1+rnd.Intn(20), 4))
		x.Nil(err)
		for i, tok := range r.Tokens {
			if tok == End {
				continue
			}
			// direct children are the nodes starting right after i or right
			// after the end of a previous direct child.
			expected := make([]int, 0)
			for j := i + 1; j < r.Partner(i); j = r.Partner(j) + 1 {
				expected = append(expected, j)
			}
			kids := r.Children(i)
			if len(expected) == 0 {
				x.Empty(kids)
			} else {
				x.Equal(expected, kids)
			}
			for _, k := range kids {
				x.Equal(i, r.Parent(k))
			}
		}
	}
}

func TestExtend(t *testing.T) {
	x := assert.New(t)
	p := Singleton(1)
	q, err := p.Extend(2, 0)
	x.Nil(err)
	x.Equal("1 2 -1 -1", q.String())
	x.Equal("1 -1", p.String())
	r, err := q.Extend(3, 0)
	x.Nil(err)
	x.Equal("1 2 -1 3 -1 -1", r.String())
	s, err := r.Extend(4, 1)
	x.Nil(err)
	x.Equal("1 2 4 -1 -1 3 -1 -1", s.String())
	_, err = s.Extend(5, 4)
	x.NotNil(err)
	_, err = s.Extend(End, 0)
	x.NotNil(err)
}

func TestExtendPreserves(t *testing.T) {
	x := assert.New(t)
	rnd := rand.New(rand.NewSource(3))
	for n := 0; n < 50; n++ {
		p, err := NewRecord(randomTokens(rnd, 1+rnd.Intn(12), 3))
		x.Nil(err)
		pos := rnd.Intn(p.Size())
		q, err := p.Extend(9, pos)
		x.Nil(err)
		x.Equal(p.Size()+1, q.Size())
		// map node ordinals of p to token indices in p and q
		pidx := make([]int, 0, p.Size())
		qidx := make([]int, 0, q.Size())
		for i, tok := range p.Tokens {
			if tok != End {
				pidx = append(pidx, i)
			}
		}
		for i, tok := range q.Tokens {
			if tok != End {
				qidx = append(qidx, i)
			}
		}
		ordinal := func(idx []int, i int) int {
			for o, j := range idx {
				if j == i {
					return o
				}
			}
			return -1
		}
		newNode := -1
		for o, i := range qidx {
			if q.Tokens[i] == 9 && q.Parent(i) == qidx[pos] {
				kids := q.Children(qidx[pos])
				if kids[len(kids)-1] == i {
					newNode = o
				}
			}
		}
		x.True(newNode >= 0, "new node is not the last child of %d in %v", pos, q)
		for o := range pidx {
			qo := o
			if o >= newNode {
				qo = o + 1
			}
			x.Equal(p.Tokens[pidx[o]], q.Tokens[qidx[qo]])
			pp := ordinal(pidx, p.Parent(pidx[o]))
			qp := ordinal(qidx, q.Parent(qidx[qo]))
			if pp >= newNode {
				pp++
			}
			x.Equal(pp, qp, "parent of node %d changed %v -> %v", o, p, q)
		}
	}
}

func TestRecordHashable(t *testing.T) {
	x := assert.New(t)
	a, _ := ParseRecord("1 2 -1 -1")
	b := Singleton(1)
	b, _ = b.Extend(2, 0)
	c, _ := ParseRecord("1 3 -1 -1")
	x.True(a.Equals(b))
	x.False(a.Equals(c))
	x.Equal(a.Hash(), b.Hash())
	x.True(a.Less(c) || c.Less(a))
	x.Equal(a.Label(), b.Label())
	x.Equal(2, a.Level())
}
