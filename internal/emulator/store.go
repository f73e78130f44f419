// Package emulator implements a local stand-in for the external
// reconciliation service, used for development and testing parity. It is
// not the product: its matching is intentionally naive.
package emulator

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// Bucket names.
const (
	BucketDocuments   = "documents"
	BucketLinks       = "links"
	BucketIdempotency = "idempotency"
)

// Document is a candidate target document held by the emulator: a bank
// movement, invoice or expense that sources can be matched against.
type Document struct {
	ID       int64   `json:"id"`
	Kind     string  `json:"kind"` // bank, sales, purchase, expense
	Doc      string  `json:"doc"`
	Fecha    string  `json:"fecha"` // YYYY-MM-DD
	Amount   float64 `json:"amount"`
	Ref      string  `json:"ref,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// LinkRecord is a confirmed link held by the emulator.
type LinkRecord struct {
	ID         int64   `json:"id"`
	SourceType string  `json:"source_type"`
	SourceRef  string  `json:"source_ref"`
	TargetType string  `json:"target_type"`
	TargetRef  string  `json:"target_ref"`
	Fecha      string  `json:"fecha"`
	Amount     float64 `json:"amount"`
}

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// NewStore creates a new Store instance and initializes buckets.
func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := []string{BucketDocuments, BucketLinks, BucketIdempotency}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateDocument stores a document, assigning it an ID.
func (s *Store) CreateDocument(doc *Document) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketDocuments))

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		doc.ID = int64(seq)

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}

		return b.Put(itob(doc.ID), data)
	})
}

// ListDocuments retrieves all documents, optionally filtered.
func (s *Store) ListDocuments(filter func(Document) bool) ([]Document, error) {
	var docs []Document

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketDocuments))

		return b.ForEach(func(k, v []byte) error {
			var doc Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("failed to unmarshal document: %w", err)
			}
			if filter == nil || filter(doc) {
				docs = append(docs, doc)
			}
			return nil
		})
	})

	return docs, err
}

// CreateLink stores a confirmed link. When idempotencyKey is non-empty and
// was seen before, the previously created link is returned instead of a new
// one being written.
func (s *Store) CreateLink(link *LinkRecord, idempotencyKey string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		links := tx.Bucket([]byte(BucketLinks))
		tokens := tx.Bucket([]byte(BucketIdempotency))

		if idempotencyKey != "" {
			if prev := tokens.Get([]byte(idempotencyKey)); prev != nil {
				data := links.Get(prev)
				if data == nil {
					return ErrNotFound
				}
				return json.Unmarshal(data, link)
			}
		}

		seq, err := links.NextSequence()
		if err != nil {
			return err
		}
		link.ID = int64(seq)

		data, err := json.Marshal(link)
		if err != nil {
			return fmt.Errorf("failed to marshal link: %w", err)
		}
		if err := links.Put(itob(link.ID), data); err != nil {
			return err
		}

		if idempotencyKey != "" {
			return tokens.Put([]byte(idempotencyKey), itob(link.ID))
		}
		return nil
	})
}

// ListLinks retrieves all links, optionally filtered.
func (s *Store) ListLinks(filter func(LinkRecord) bool) ([]LinkRecord, error) {
	var links []LinkRecord

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLinks))

		return b.ForEach(func(k, v []byte) error {
			var link LinkRecord
			if err := json.Unmarshal(v, &link); err != nil {
				return fmt.Errorf("failed to unmarshal link: %w", err)
			}
			if filter == nil || filter(link) {
				links = append(links, link)
			}
			return nil
		})
	})

	return links, err
}

// itob converts an int64 to a byte slice for use as a bbolt key.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
