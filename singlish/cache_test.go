package singlish

import (
	"testing"
	"time"
)

func TestTokenCache(t *testing.T) {
	cache, err := NewTokenCache(0, 0)
	checkError(err)
	defer cache.Close()

	_, ok := cache.Get("mama")
	assertEqual(t, ok, false)

	checkError(cache.Set("mama", "මම"))
	checkError(cache.Set("mama", "මම"))

	result, ok := cache.Get("mama")
	assertEqual(t, ok, true)
	assertEqual(t, result, "මම")
	assertEqual(t, cache.Len(), 1)
}

func TestTokenCacheTTL(t *testing.T) {
	cache, err := NewTokenCache(50*time.Millisecond, 0)
	checkError(err)
	defer cache.Close()

	checkError(cache.Set("oyaa", "ඔයා"))
	_, ok := cache.Get("oyaa")
	assertEqual(t, ok, true)

	time.Sleep(150 * time.Millisecond)

	_, ok = cache.Get("oyaa")
	assertEqual(t, ok, false)
}

func TestTokenCacheMaxEntries(t *testing.T) {
	cache, err := NewTokenCache(0, 2)
	checkError(err)
	defer cache.Close()

	checkError(cache.Set("mama", "මම"))
	checkError(cache.Set("oyaa", "ඔයා"))
	assertEqual(t, cache.Len(), 2)

	// Full, emptied before the new entry goes in
	checkError(cache.Set("api", "අපි"))
	assertEqual(t, cache.Len(), 1)

	_, ok := cache.Get("mama")
	assertEqual(t, ok, false)
	result, ok := cache.Get("api")
	assertEqual(t, ok, true)
	assertEqual(t, result, "අපි")
}
