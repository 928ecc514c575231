// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// KV is the BadgerDB database shared by the session and OIDC state stores.
type KV struct {
	db       *badger.DB
	inMemory bool
}

// OpenKV opens the Badger database at path. An empty path opens an
// in-memory database (sessions are lost on restart).
func OpenKV(path string) (*KV, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
		opts.ValueLogFileSize = 16 << 20
		opts.SyncWrites = true
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &KV{db: db, inMemory: path == ""}, nil
}

// Close closes the database.
func (kv *KV) Close() error {
	return kv.db.Close()
}

// RunGC reclaims value log space. It is a no-op for in-memory databases and
// returns nil when there was nothing to collect.
func (kv *KV) RunGC() error {
	if kv.inMemory {
		return nil
	}
	err := kv.db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("value log gc: %w", err)
	}
	return nil
}

// putJSON stores v under key, expiring at expiresAt.
func (kv *KV) putJSON(key string, v interface{}, expiresAt time.Time) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return kv.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)
		if ttl := time.Until(expiresAt); ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

// getJSON loads key into v. A missing key returns notFound.
func (kv *KV) getJSON(key string, v interface{}, notFound error) error {
	return kv.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return notFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// delete removes key; a missing key is not an error.
func (kv *KV) delete(key string) error {
	return kv.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// take reads and deletes key in one transaction so it can be consumed once.
func (kv *KV) take(key string, v interface{}, notFound error) error {
	return kv.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return notFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		}); err != nil {
			return err
		}
		return txn.Delete([]byte(key))
	})
}

// deleteExpired removes entries under prefix whose decoded expiry (via
// expiresAt) is before now. Corrupt entries are removed too.
func (kv *KV) deleteExpired(prefix string, now time.Time, expiresAt func(val []byte) (time.Time, error)) (int, error) {
	var expired [][]byte

	err := kv.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			var exp time.Time
			err := item.Value(func(val []byte) error {
				var err error
				exp, err = expiresAt(val)
				return err
			})
			if err != nil || exp.Before(now) {
				expired = append(expired, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", prefix, err)
	}

	count := 0
	for _, key := range expired {
		if err := kv.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		}); err == nil {
			count++
		}
	}
	return count, nil
}
