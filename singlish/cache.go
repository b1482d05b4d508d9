package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"fmt"
	"time"

	"github.com/tidwall/buntdb"
)

// TokenCache keeps mapped phonetic tokens so retyping a buffer doesn't map
// every unchanged word again. Safe for concurrent use.
type TokenCache struct {
	db         *buntdb.DB
	ttl        time.Duration
	maxEntries int
}

func tokenCacheKey(word string) string {
	return "tok " + word
}

// NewTokenCache opens an in-memory cache. ttl 0 keeps entries until they
// are evicted, maxEntries 0 means unbounded.
func NewTokenCache(ttl time.Duration, maxEntries int) (*TokenCache, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening token cache: %w", err)
	}
	return &TokenCache{db: db, ttl: ttl, maxEntries: maxEntries}, nil
}

// Get the mapped output of a token
func (cache *TokenCache) Get(word string) (result string, ok bool) {
	err := cache.db.View(func(tx *buntdb.Tx) error {
		var err error
		result, err = tx.Get(tokenCacheKey(word))
		return err
	})
	switch err {
	case nil:
		return result, true
	case buntdb.ErrNotFound:
		return "", false
	default:
		tracer().Errorf("token cache get %q: %v", word, err)
		return "", false
	}
}

// Set the mapped output of a token. When the cache is full it is emptied
// first.
func (cache *TokenCache) Set(word string, result string) error {
	var setOptions *buntdb.SetOptions
	if cache.ttl > 0 {
		setOptions = &buntdb.SetOptions{Expires: true, TTL: cache.ttl}
	}

	return cache.db.Update(func(tx *buntdb.Tx) error {
		if cache.maxEntries > 0 {
			n, err := tx.Len()
			if err != nil {
				return err
			}
			if n >= cache.maxEntries {
				tracer().Debugf("token cache full at %d entries, evicting", n)
				if err := tx.DeleteAll(); err != nil {
					return err
				}
			}
		}
		_, _, err := tx.Set(tokenCacheKey(word), result, setOptions)
		return err
	})
}

// Len is the number of cached tokens
func (cache *TokenCache) Len() int {
	var n int
	cache.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n
}

// Close the cache
func (cache *TokenCache) Close() error {
	return cache.db.Close()
}
