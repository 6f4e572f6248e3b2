// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/AleutianAI/aimcr/pkg/review"
)

// ErrSessionNotFound is returned when no journal entry exists for a key.
var ErrSessionNotFound = errors.New("session not found")

const (
	sessionKeyPrefix = "session/"
	latestKey        = "session/latest"
)

// Journal stores in-progress review documents keyed by session id.
//
// # Description
//
// Each form-editing session gets a UUID; autosave writes the working
// document under that id and points "latest" at it. Entries carry a
// TTL so abandoned sessions eventually expire instead of accumulating.
//
// # Thread Safety
//
// Safe for concurrent use; BadgerDB transactions provide isolation.
type Journal struct {
	db  *badger.DB
	ttl time.Duration
}

// NewJournal opens a journal with the given database config.
//
// ttl of zero disables expiry. The caller must Close() the journal.
func NewJournal(cfg Config, ttl time.Duration) (*Journal, error) {
	db, err := open(cfg)
	if err != nil {
		return nil, err
	}
	return &Journal{db: db, ttl: ttl}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func sessionKey(id uuid.UUID) []byte {
	return []byte(sessionKeyPrefix + id.String())
}

// Save writes the working document under the session id and updates
// the latest pointer.
func (j *Journal) Save(id uuid.UUID, doc *review.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal session document: %w", err)
	}

	return j.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(id), data)
		if j.ttl > 0 {
			entry = entry.WithTTL(j.ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return err
		}

		pointer := badger.NewEntry([]byte(latestKey), []byte(id.String()))
		if j.ttl > 0 {
			pointer = pointer.WithTTL(j.ttl)
		}
		return txn.SetEntry(pointer)
	})
}

// Load reads the document saved under the session id.
func (j *Journal) Load(id uuid.UUID) (*review.Document, error) {
	var doc *review.Document
	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var d review.Document
			if err := json.Unmarshal(val, &d); err != nil {
				return fmt.Errorf("parse session document: %w", err)
			}
			doc = &d
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Latest returns the most recently saved session and its document.
func (j *Journal) Latest() (uuid.UUID, *review.Document, error) {
	var id uuid.UUID
	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(latestKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, err := uuid.Parse(string(val))
			if err != nil {
				return fmt.Errorf("parse latest session id: %w", err)
			}
			id = parsed
			return nil
		})
	})
	if err != nil {
		return uuid.Nil, nil, err
	}

	doc, err := j.Load(id)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, doc, nil
}

// Delete removes a session entry, clearing the latest pointer if it
// referenced the deleted session.
func (j *Journal) Delete(id uuid.UUID) error {
	return j.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey(id)); err != nil {
			return err
		}

		item, err := txn.Get([]byte(latestKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		var latest string
		if err := item.Value(func(val []byte) error {
			latest = string(val)
			return nil
		}); err != nil {
			return err
		}
		if latest == id.String() {
			return txn.Delete([]byte(latestKey))
		}
		return nil
	})
}
