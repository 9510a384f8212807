package tree

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
)

type ErrorList []error

func (self ErrorList) Error() string {
	var s []string
	for _, err := range self {
		s = append(s, err.Error())
	}
	return "Errors [" + strings.Join(s, ", ") + "]"
}

// IntLoader reads one tree per line. Tokens are whitespace separated ints
// and -1 closes the most recently opened node.
//
//	1 2 -1 3 -1 -1
//
// Blank lines and lines starting with # are skipped.
type IntLoader struct {
	dt   *Database
	skip bool
}

func NewIntLoader(conf *config.Config, tc *Config) (lattice.Loader, error) {
	if tc.MaxSize > 0 && tc.MinSize > tc.MaxSize {
		return nil, errors.Errorf("min-size %d > max-size %d", tc.MinSize, tc.MaxSize)
	}
	return &IntLoader{
		dt:   NewDatabase(conf, tc),
		skip: tc.SkipMalformed,
	}, nil
}

func (l *IntLoader) Load(input lattice.Input) (lattice.DataType, error) {
	in, closer := input()
	defer closer()
	err := l.load(in)
	if err != nil {
		return nil, err
	}
	errors.Logf("INFO", "loaded %d trees with %d distinct labels", l.dt.Size(), l.dt.Labels())
	return l.dt, nil
}

func (l *IntLoader) load(in io.Reader) error {
	var errs ErrorList
	lineno := 0
	err := processLines(in, func(line []byte) {
		lineno++
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			return
		}
		rec, err := ParseRecord(string(line))
		if fe, ok := err.(*FormatError); ok {
			fe.Line = lineno
		} else if err != nil {
			err = errors.Errorf("line %d: %v", lineno, err)
		}
		if err != nil && l.skip {
			errors.Logf("WARN", "skipping malformed record: %v", err)
			return
		} else if err != nil {
			errs = append(errs, err)
			return
		}
		l.dt.Add(rec)
	})
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func processLines(in io.Reader, process func([]byte)) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		unsafe := scanner.Bytes()
		line := make([]byte, len(unsafe))
		copy(line, unsafe)
		process(line)
	}
	return scanner.Err()
}
