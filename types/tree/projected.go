package tree

import (
	"fmt"
)

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/timtadh/data-structures/errors"
)

type Counting int

const (
	// Occurrences counts every qualifying instance, so a tree holding the
	// pattern twice contributes twice.
	Occurrences Counting = iota
	// Transactions counts the distinct trees.
	Transactions
)

func ParseCounting(name string) (Counting, error) {
	switch name {
	case "occurrence", "occurrences":
		return Occurrences, nil
	case "transaction", "transactions", "tx":
		return Transactions, nil
	}
	return Occurrences, errors.Errorf("unknown counting mode '%v' (occurrence, transaction)", name)
}

func (c Counting) String() string {
	switch c {
	case Transactions:
		return "transaction"
	default:
		return "occurrence"
	}
}

// GE is a growth element: attach a node labeled Label as the last child of
// the pattern node at preorder position Pos.
type GE struct {
	Label Label
	Pos   int
}

type Growth struct {
	GE
	Support int
}

func (g GE) String() string {
	return fmt.Sprintf("(%d, %d)", g.Label, g.Pos)
}

// Projected is the projected database of one pattern: every instance of the
// pattern in the database. It is read only once built so a node may be
// expanded and inspected from several goroutines.
type Projected struct {
	Pattern   *Record
	Instances []*Instance
}

func NewProjected(pattern *Record) *Projected {
	return &Projected{
		Pattern:   pattern,
		Instances: make([]*Instance, 0, 10),
	}
}

// FindGEs tallies every legal growth element of every instance. The table is
// returned in discovery order and not kept on p.
func (p *Projected) FindGEs(db []*Record, counting Counting) []Growth {
	index := make(map[GE]int)
	ges := make([]Growth, 0, 10)
	var tids []*roaring.Bitmap
	for _, inst := range p.Instances {
		rec := db[inst.Tid]
		// growth can attach anywhere on the rightmost path so the window
		// closes at the end of the instance root's subtree.
		L, R := inst.Scope(rec, 0)
		for i := L + 1; i < R; i++ {
			label := rec.Tokens[i]
			if label == End {
				continue
			}
			pos := inst.attachment(rec, i)
			if pos < 0 {
				continue
			}
			ge := GE{Label: label, Pos: pos}
			j, has := index[ge]
			if !has {
				j = len(ges)
				index[ge] = j
				ges = append(ges, Growth{GE: ge})
				if counting == Transactions {
					tids = append(tids, roaring.New())
				}
			}
			if counting == Transactions {
				tids[j].Add(uint32(inst.Tid))
			} else {
				ges[j].Support++
			}
		}
	}
	if counting == Transactions {
		for j := range ges {
			ges[j].Support = int(tids[j].GetCardinality())
		}
	}
	return ges
}

// Frequent filters a GE table by support, keeping discovery order.
func Frequent(ges []Growth, support int) []Growth {
	freq := make([]Growth, 0, len(ges))
	for _, g := range ges {
		if g.Support >= support {
			freq = append(freq, g)
		}
	}
	return freq
}

// Project grows the pattern by ge and builds the projected database of the
// grown pattern. Each instance contributes at most one new instance: the
// first matching child in its window.
func (p *Projected) Project(ge GE, db []*Record) (*Projected, error) {
	pattern, err := p.Pattern.Extend(ge.Label, ge.Pos)
	if err != nil {
		return nil, err
	}
	next := NewProjected(pattern)
	for _, inst := range p.Instances {
		rec := db[inst.Tid]
		father := inst.Nodes[ge.Pos]
		L, R := inst.Scope(rec, ge.Pos)
		for _, kid := range rec.Children(father) {
			if kid <= L || kid >= R {
				continue
			}
			if rec.Tokens[kid] == ge.Label {
				next.Instances = append(next.Instances, inst.Extend(kid))
				break
			}
		}
	}
	return next, nil
}

// Transactions is the number of distinct trees holding an instance.
func (p *Projected) Transactions() int {
	tids := roaring.New()
	for _, inst := range p.Instances {
		tids.Add(uint32(inst.Tid))
	}
	return int(tids.GetCardinality())
}

func (p *Projected) String() string {
	return fmt.Sprintf("<Projected [%v] %d instances>", p.Pattern, len(p.Instances))
}
