package tree

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io"
	"strings"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
)

func input(s string) lattice.Input {
	return func() (io.Reader, func()) {
		return strings.NewReader(s), func() {}
	}
}

const trees = `# two trees
1 2 -1 3 -1 -1

1 2 4 -1 -1 -1
`

func TestLoad(t *testing.T) {
	x := assert.New(t)
	l, err := NewIntLoader(&config.Config{Support: 1}, &Config{MinSize: 1})
	x.Nil(err)
	dt, err := l.Load(input(trees))
	x.Nil(err)
	db := dt.(*Database)
	x.Equal(2, db.Size())
	x.Equal("1 2 -1 3 -1 -1", db.Records[0].String())
	x.Equal("1 2 4 -1 -1 -1", db.Records[1].String())
	x.Equal(4, db.Labels())
}

func TestLoadMalformed(t *testing.T) {
	x := assert.New(t)
	l, err := NewIntLoader(&config.Config{Support: 1}, &Config{MinSize: 1})
	x.Nil(err)
	_, err = l.Load(input("1 -1\n1 2 -1\n2 -1\n-1 3\n"))
	x.NotNil(err)
	errs, ok := err.(ErrorList)
	x.True(ok, "expected an ErrorList got %T", err)
	x.Len(errs, 2)
	fe, ok := errs[0].(*FormatError)
	x.True(ok)
	x.Equal(2, fe.Line)
	fe, ok = errs[1].(*FormatError)
	x.True(ok)
	x.Equal(4, fe.Line)
}

func TestLoadSkipMalformed(t *testing.T) {
	x := assert.New(t)
	l, err := NewIntLoader(&config.Config{Support: 1}, &Config{MinSize: 1, SkipMalformed: true})
	x.Nil(err)
	dt, err := l.Load(input("1 -1\n1 2 -1\n2 -1\n1 a -1\n"))
	x.Nil(err)
	x.Equal(2, dt.Size())
}

func TestLoaderSizes(t *testing.T) {
	x := assert.New(t)
	_, err := NewIntLoader(&config.Config{Support: 1}, &Config{MinSize: 3, MaxSize: 2})
	x.NotNil(err)
}
