package reporters

import (
	"database/sql"
	"fmt"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	_ "modernc.org/sqlite"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
)

// SQLite stores patterns and their embeddings in a sqlite database in the
// output directory. Inserts are batched into transactions.
type SQLite struct {
	db          *sql.DB
	tx          *sql.Tx
	fmtr        lattice.Formatter
	stmtPattern *sql.Stmt
	stmtEmb     *sql.Stmt
	embeddings  bool
	batchSize   int
	pending     int
	count       int
}

func NewSQLite(c *config.Config, fmtr lattice.Formatter, filename string, embeddings bool) (*SQLite, error) {
	path := c.OutputFile(filename)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Errorf("open sqlite %s: %v", path, err)
	}
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, errors.Errorf("configure sqlite %s: %v", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, errors.Errorf("configure sqlite %s: %v", path, err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS patterns (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		size INTEGER NOT NULL,
		support INTEGER NOT NULL,
		label BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_patterns_size ON patterns(size);

	CREATE TABLE IF NOT EXISTS embeddings (
		pattern_id INTEGER NOT NULL,
		tid INTEGER NOT NULL,
		nodes TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_embeddings_pattern ON embeddings(pattern_id);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Errorf("create schema: %v", err)
	}
	r := &SQLite{
		db:         db,
		fmtr:       fmtr,
		embeddings: embeddings,
		batchSize:  1000,
	}
	if err := r.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLite) beginTx() error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmtPattern, err := tx.Prepare("INSERT INTO patterns (id, name, size, support, label) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	stmtEmb, err := tx.Prepare("INSERT INTO embeddings (pattern_id, tid, nodes) VALUES (?, ?, ?)")
	if err != nil {
		_ = stmtPattern.Close()
		_ = tx.Rollback()
		return err
	}
	r.tx = tx
	r.stmtPattern = stmtPattern
	r.stmtEmb = stmtEmb
	r.pending = 0
	return nil
}

func (r *SQLite) commit() error {
	_ = r.stmtPattern.Close()
	_ = r.stmtEmb.Close()
	err := r.tx.Commit()
	r.tx = nil
	return err
}

func (r *SQLite) Report(n lattice.Node) error {
	id := r.count
	r.count++
	_, err := r.stmtPattern.Exec(id, r.fmtr.PatternName(n), n.Pattern().Level(), n.Support(), n.Pattern().Label())
	if err != nil {
		return errors.Errorf("insert pattern %d: %v", id, err)
	}
	if r.embeddings {
		for _, emb := range n.Embeddings() {
			nodes := make([]string, 0, len(emb.Components()))
			for _, c := range emb.Components() {
				nodes = append(nodes, fmt.Sprint(c))
			}
			_, err := r.stmtEmb.Exec(id, emb.Transaction(), strings.Join(nodes, " "))
			if err != nil {
				return errors.Errorf("insert embedding of pattern %d: %v", id, err)
			}
		}
	}
	r.pending++
	if r.pending >= r.batchSize {
		if err := r.commit(); err != nil {
			return err
		}
		return r.beginTx()
	}
	return nil
}

func (r *SQLite) Close() error {
	var err error
	if r.tx != nil {
		err = r.commit()
	}
	if cerr := r.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
