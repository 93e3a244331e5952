// Package state persists per-listing change-detection state in a sqlite
// file: when a listing was last seen, its last announced update time and a
// fingerprint of its last successfully parsed detail page. The store
// decides which listings need a detail (re)fetch on each run.
package state

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kaslund/statjobs/app/discovery"
)

// DBFilename is the state file created inside the output directory.
const DBFilename = "statjobs.sqlite3"

// Candidate selection reasons.
const (
	ReasonFull             = "full"
	ReasonNew              = "new"
	ReasonNoFingerprint    = "no_fingerprint"
	ReasonUpdatedAtChanged = "updated_at_changed"
)

// Listing is a persisted state record.
type Listing struct {
	ListingID         string
	LastSeenAt        string
	UpdatedAt         *string
	DetailFingerprint *string
}

// Candidate is a listing selected for detail (re)fetch with the rule that
// selected it.
type Candidate struct {
	ListingID string
	Reason    string
}

// Store owns the persisted listing state. It is safe for a single run's
// sequential access; writes commit transactionally.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the state database at path and applies the
// schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// Single connection: serializes writers and keeps in-memory databases
	// on one connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply pragma: %w", err)
		}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertListing inserts or updates one listing record:
//
//   - last_seen_at only advances (ISO-8601 strings compare lexicographically
//     in time order), it never regresses
//   - updated_at is overwritten only by a non-null incoming value
//   - detail_fingerprint is preserved unless a non-null value is given
func (s *Store) UpsertListing(listingID, lastSeenAt string, updatedAt, fingerprint *string) error {
	_, err := s.db.Exec(`
		INSERT INTO listings (listing_id, last_seen_at, updated_at, detail_fingerprint)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (listing_id) DO UPDATE SET
			last_seen_at = CASE
				WHEN excluded.last_seen_at > listings.last_seen_at
				THEN excluded.last_seen_at ELSE listings.last_seen_at END,
			updated_at = COALESCE(excluded.updated_at, listings.updated_at),
			detail_fingerprint = COALESCE(excluded.detail_fingerprint, listings.detail_fingerprint)
	`, listingID, lastSeenAt, updatedAt, fingerprint)
	if err != nil {
		return fmt.Errorf("failed to upsert listing %s: %w", listingID, err)
	}
	return nil
}

// UpsertFromSummaries records a discovery batch with a common seen_at
// timestamp. It must run AFTER candidate selection for the same batch,
// since selection compares against pre-upsert state. The batch commits as
// one transaction.
func (s *Store) UpsertFromSummaries(summaries []discovery.ListingSummary, seenAt string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin upsert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO listings (listing_id, last_seen_at, updated_at, detail_fingerprint)
		VALUES (?, ?, ?, NULL)
		ON CONFLICT (listing_id) DO UPDATE SET
			last_seen_at = CASE
				WHEN excluded.last_seen_at > listings.last_seen_at
				THEN excluded.last_seen_at ELSE listings.last_seen_at END,
			updated_at = COALESCE(excluded.updated_at, listings.updated_at)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, summary := range summaries {
		if _, err := stmt.Exec(summary.ListingID, seenAt, nullable(summary.UpdatedAt)); err != nil {
			return 0, fmt.Errorf("failed to upsert listing %s: %w", summary.ListingID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit upsert transaction: %w", err)
	}
	return count, nil
}

// SelectDetailCandidates classifies each summary against stored state and
// returns the listings needing a detail fetch, in summary order. Summaries
// are not deduplicated: the same ID can appear with different reasons.
//
// Classification: full run selects everything with reason "full";
// otherwise no prior record -> "new", record without fingerprint ->
// "no_fingerprint", non-null incoming updated_at differing from the stored
// value -> "updated_at_changed", anything else is unchanged and excluded.
func (s *Store) SelectDetailCandidates(summaries []discovery.ListingSummary, full bool) ([]Candidate, error) {
	var candidates []Candidate
	for _, summary := range summaries {
		if full {
			candidates = append(candidates, Candidate{summary.ListingID, ReasonFull})
			continue
		}

		stored, err := s.GetListing(summary.ListingID)
		if err != nil {
			return nil, err
		}

		switch {
		case stored == nil:
			candidates = append(candidates, Candidate{summary.ListingID, ReasonNew})
		case stored.DetailFingerprint == nil:
			candidates = append(candidates, Candidate{summary.ListingID, ReasonNoFingerprint})
		case summary.UpdatedAt != "" && (stored.UpdatedAt == nil || *stored.UpdatedAt != summary.UpdatedAt):
			candidates = append(candidates, Candidate{summary.ListingID, ReasonUpdatedAtChanged})
		}
	}
	return candidates, nil
}

// GetListing returns the stored record for an ID, or nil when none exists.
func (s *Store) GetListing(listingID string) (*Listing, error) {
	var listing Listing
	var updatedAt, fingerprint sql.NullString

	err := s.db.QueryRow(`
		SELECT listing_id, last_seen_at, updated_at, detail_fingerprint
		FROM listings WHERE listing_id = ?
	`, listingID).Scan(&listing.ListingID, &listing.LastSeenAt, &updatedAt, &fingerprint)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %s: %w", listingID, err)
	}

	if updatedAt.Valid {
		listing.UpdatedAt = &updatedAt.String
	}
	if fingerprint.Valid {
		listing.DetailFingerprint = &fingerprint.String
	}
	return &listing, nil
}

// UpdateDetailFingerprint unconditionally overwrites the stored
// fingerprint. Callers invoke it only after a fully successful detail
// fetch and parse.
func (s *Store) UpdateDetailFingerprint(listingID, fingerprint string) error {
	_, err := s.db.Exec(`
		UPDATE listings SET detail_fingerprint = ? WHERE listing_id = ?
	`, fingerprint, listingID)
	if err != nil {
		return fmt.Errorf("failed to update fingerprint for %s: %w", listingID, err)
	}
	return nil
}

// ComputeFingerprint returns a stable content hash of raw detail HTML.
func ComputeFingerprint(html string) string {
	digest := sha256.Sum256([]byte(html))
	return hex.EncodeToString(digest[:])
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
