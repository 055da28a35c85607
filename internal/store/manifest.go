// Package store persists the member manifest: which members each artifact
// holds, recorded as they are merged. Route planning reads the manifest back
// instead of re-scanning artifact text.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Member is one recorded artifact member.
type Member struct {
	Artifact string
	Name     string
	Kind     string
	Field    string
	RunID    string
}

// ManifestStore is a SQLite-backed member manifest.
type ManifestStore struct {
	db *sql.DB
}

// OpenManifest opens or creates the manifest database at path.
func OpenManifest(path string) (*ManifestStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest db: %w", err)
	}
	// modernc's driver serializes access per connection; a single connection
	// avoids SQLITE_BUSY between writers.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &ManifestStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS artifact_members (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	artifact TEXT NOT NULL,
	member TEXT NOT NULL,
	kind TEXT NOT NULL DEFAULT '',
	field TEXT NOT NULL DEFAULT '',
	run_id TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT (datetime('now')),
	UNIQUE(artifact, member)
);
CREATE INDEX IF NOT EXISTS idx_artifact_members_artifact ON artifact_members(artifact);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate manifest db: %w", err)
	}
	return nil
}

// RecordMember upserts one member for an artifact. Re-recording an existing
// member refreshes its kind, field, and run.
func (s *ManifestStore) RecordMember(m Member) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO artifact_members (artifact, member, kind, field, run_id)
		VALUES (?, ?, ?, ?, ?)`,
		m.Artifact, m.Name, m.Kind, m.Field, m.RunID)
	if err != nil {
		return fmt.Errorf("failed to record member: %w", err)
	}
	return nil
}

// ClearArtifact drops every recorded member of an artifact. Called when an
// artifact is re-seeded; rows from earlier runs would otherwise describe
// members the new file no longer declares.
func (s *ManifestStore) ClearArtifact(artifact string) error {
	_, err := s.db.Exec(`DELETE FROM artifact_members WHERE artifact = ?`, artifact)
	if err != nil {
		return fmt.Errorf("failed to clear artifact members: %w", err)
	}
	return nil
}

// Members returns the recorded members of an artifact in insertion order.
func (s *ManifestStore) Members(artifact string) ([]Member, error) {
	rows, err := s.db.Query(`
		SELECT artifact, member, kind, field, run_id
		FROM artifact_members
		WHERE artifact = ?
		ORDER BY id`, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.Artifact, &m.Name, &m.Kind, &m.Field, &m.RunID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Close closes the underlying database.
func (s *ManifestStore) Close() error {
	return s.db.Close()
}
