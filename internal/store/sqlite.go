package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/memvault/memvault/internal/models"
)

// SQLite stores memories in a single-file SQLite database. List-valued
// fields (people, topics, embedding) are kept as JSON-encoded TEXT:
// nothing queries inside them, and it keeps the schema a single flat
// table. Pure-Go driver, no cgo.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS memories (
	id              INTEGER PRIMARY KEY,
	text            TEXT NOT NULL,
	date            TEXT NOT NULL,
	emotion         TEXT NOT NULL DEFAULT 'Neutral',
	people          TEXT NOT NULL DEFAULT '[]',
	location        TEXT NOT NULL DEFAULT 'Unknown',
	topics          TEXT NOT NULL DEFAULT '[]',
	context         TEXT NOT NULL DEFAULT '',
	embedding       TEXT,
	unlock_date     TEXT NOT NULL DEFAULT '',
	is_time_capsule INTEGER NOT NULL DEFAULT 0
);`

// NewSQLite opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

const memoryColumns = `id, text, date, emotion, people, location, topics, context, embedding, unlock_date, is_time_capsule`

// Load reads every memory ordered by id.
func (s *SQLite) Load(ctx context.Context) ([]models.Memory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memoryColumns+` FROM memories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query memories: %w", err)
	}
	defer rows.Close()

	memories := []models.Memory{}
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memories: %w", err)
	}
	return memories, nil
}

// Get returns one memory by id.
func (s *SQLite) Get(ctx context.Context, id int) (models.Memory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+memoryColumns+` FROM memories WHERE id = ?`, id)
	m, err := scanMemory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Memory{}, fmt.Errorf("memory %d: %w", id, ErrNotFound)
	}
	return m, err
}

// Save assigns the next id (max + 1, computed in the same transaction
// as the insert) and stores the record.
func (s *SQLite) Save(ctx context.Context, memory models.Memory) (models.Memory, error) {
	memory.RelevanceScore = 0
	memory.Normalize()

	people, err := json.Marshal(memory.People)
	if err != nil {
		return models.Memory{}, fmt.Errorf("marshal people: %w", err)
	}
	topics, err := json.Marshal(memory.Topics)
	if err != nil {
		return models.Memory{}, fmt.Errorf("marshal topics: %w", err)
	}
	var embedding any
	if memory.Embedding != nil {
		data, err := json.Marshal(memory.Embedding)
		if err != nil {
			return models.Memory{}, fmt.Errorf("marshal embedding: %w", err)
		}
		embedding = string(data)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Memory{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1 FROM memories`).Scan(&memory.ID); err != nil {
		return models.Memory{}, fmt.Errorf("next id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO memories (`+memoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		memory.ID, memory.Text, memory.Date, memory.Emotion,
		string(people), memory.Location, string(topics), memory.Context,
		embedding, memory.UnlockDate, memory.IsTimeCapsule,
	)
	if err != nil {
		return models.Memory{}, fmt.Errorf("insert memory: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Memory{}, fmt.Errorf("commit: %w", err)
	}
	return memory, nil
}

// UpdateUnlockDate reschedules a time capsule.
func (s *SQLite) UpdateUnlockDate(ctx context.Context, id int, unlockDate string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE memories SET unlock_date = ? WHERE id = ?`, unlockDate, id)
	if err != nil {
		return fmt.Errorf("update unlock date: %w", err)
	}
	return requireAffected(res, id)
}

// Delete removes a memory by id.
func (s *SQLite) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	return requireAffected(res, id)
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func requireAffected(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("memory %d: %w", id, ErrNotFound)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemory(row rowScanner) (models.Memory, error) {
	var (
		m         models.Memory
		people    string
		topics    string
		embedding sql.NullString
	)
	err := row.Scan(&m.ID, &m.Text, &m.Date, &m.Emotion, &people,
		&m.Location, &topics, &m.Context, &embedding, &m.UnlockDate,
		&m.IsTimeCapsule)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Memory{}, err
		}
		return models.Memory{}, fmt.Errorf("scan memory: %w", err)
	}

	if err := json.Unmarshal([]byte(people), &m.People); err != nil {
		return models.Memory{}, fmt.Errorf("decode people for memory %d: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(topics), &m.Topics); err != nil {
		return models.Memory{}, fmt.Errorf("decode topics for memory %d: %w", m.ID, err)
	}
	if embedding.Valid && embedding.String != "" {
		if err := json.Unmarshal([]byte(embedding.String), &m.Embedding); err != nil {
			return models.Memory{}, fmt.Errorf("decode embedding for memory %d: %w", m.ID, err)
		}
	}
	m.Normalize()
	return m, nil
}
