package tree

import (
	"sort"
)

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
)

type Config struct {
	Counting      Counting
	MinSize       int
	MaxSize       int
	SkipMalformed bool
}

// Database is the read only collection of trees being mined. It is shared by
// every branch of the search.
type Database struct {
	Records          []*Record
	Counting         Counting
	MinSize, MaxSize int
	config           *config.Config
	labelTxs         map[Label]*roaring.Bitmap
	labelCounts      map[Label]int
}

func NewDatabase(conf *config.Config, tc *Config) *Database {
	return &Database{
		Records:     make([]*Record, 0, 100),
		Counting:    tc.Counting,
		MinSize:     tc.MinSize,
		MaxSize:     tc.MaxSize,
		config:      conf,
		labelTxs:    make(map[Label]*roaring.Bitmap),
		labelCounts: make(map[Label]int),
	}
}

// Add appends a tree to the database and indexes its labels. Returns the tid.
func (d *Database) Add(rec *Record) int {
	tid := len(d.Records)
	d.Records = append(d.Records, rec)
	for _, t := range rec.Tokens {
		if t == End {
			continue
		}
		d.labelCounts[t]++
		txs, has := d.labelTxs[t]
		if !has {
			txs = roaring.New()
			d.labelTxs[t] = txs
		}
		txs.Add(uint32(tid))
	}
	return tid
}

// AddTokens builds a record from a raw token sequence and adds it.
func (d *Database) AddTokens(tokens []Label) (int, error) {
	rec, err := NewRecord(tokens)
	if err != nil {
		return -1, err
	}
	return d.Add(rec), nil
}

func (d *Database) Size() int {
	return len(d.Records)
}

func (d *Database) Support() int {
	return d.config.Support
}

// LabelSupport is the support of the single node pattern with this label
// under the database's counting mode.
func (d *Database) LabelSupport(label Label) int {
	if d.Counting == Transactions {
		if txs, has := d.labelTxs[label]; has {
			return int(txs.GetCardinality())
		}
		return 0
	}
	return d.labelCounts[label]
}

// FrequentLabels are the labels meeting the support threshold in ascending
// order.
func (d *Database) FrequentLabels() []Label {
	labels := make([]Label, 0, len(d.labelCounts))
	for label := range d.labelCounts {
		if d.LabelSupport(label) >= d.Support() {
			labels = append(labels, label)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

func (d *Database) Labels() int {
	return len(d.labelCounts)
}

func (d *Database) Acceptable(n lattice.Node) bool {
	level := n.Pattern().Level()
	return level >= d.MinSize && (d.MaxSize <= 0 || level <= d.MaxSize)
}

func (d *Database) TooLarge(n lattice.Node) bool {
	return d.MaxSize > 0 && n.Pattern().Level() >= d.MaxSize
}

// Singletons builds the first order projected database of every frequent
// label. A singleton holds one instance per database node with its label.
func (d *Database) Singletons() ([]lattice.Node, error) {
	if d.Support() <= 0 {
		return nil, errors.Errorf("support %d must be > 0", d.Support())
	}
	nodes := make([]lattice.Node, 0, 10)
	for _, label := range d.FrequentLabels() {
		proj := NewProjected(Singleton(label))
		txs := d.labelTxs[label]
		for it := txs.Iterator(); it.HasNext(); {
			tid := int(it.Next())
			for i, t := range d.Records[tid].Tokens {
				if t == label {
					proj.Instances = append(proj.Instances, NewInstance(tid, i))
				}
			}
		}
		nodes = append(nodes, NewNode(d, proj, d.LabelSupport(label)))
	}
	return nodes, nil
}

func (d *Database) Close() error {
	d.labelTxs = nil
	d.labelCounts = nil
	return nil
}
