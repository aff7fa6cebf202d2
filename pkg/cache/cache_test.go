package cache

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bson/filtergen/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "design:abc"); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "design:abc", []byte("sheet"), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "design:abc")
	if err != nil || !hit || string(data) != "sheet" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "design:abc"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "design:abc"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "design:abc"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should never expire")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("cleared entry should miss")
	}
}

func TestValueRoundTrip(t *testing.T) {
	type entry struct {
		Seed      uint32
		Artifacts map[string][]byte
	}
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	in := entry{Seed: 42, Artifacts: map[string][]byte{"sch": []byte("EESchema")}}
	if err := SetValue(ctx, c, "k", in, time.Hour); err != nil {
		t.Fatal(err)
	}
	var out entry
	hit, err := GetValue(ctx, c, "k", &out)
	if err != nil || !hit {
		t.Fatalf("GetValue = %v, %v", hit, err)
	}
	if out.Seed != 42 || string(out.Artifacts["sch"]) != "EESchema" {
		t.Errorf("decoded %+v", out)
	}

	// Undecodable entries are dropped and reported as a miss.
	if err := c.Set(ctx, "bad", []byte{0xc1}, time.Hour); err != nil {
		t.Fatal(err)
	}
	if hit, err := GetValue(ctx, c, "bad", &out); hit || err != nil {
		t.Errorf("bad entry: hit=%v err=%v", hit, err)
	}
}

func TestFileCacheEntryNames(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	key := NewDefaultKeyer().DesignKey(struct{ Frequency float64 }{1000})
	if !strings.HasPrefix(key, "design:") {
		t.Errorf("design key = %q", key)
	}
	if err := c.Set(ctx, key, []byte{0x80}, time.Hour); err != nil {
		t.Fatal(err)
	}

	hash := Hash([]byte(key))
	want := filepath.Join(dir, hash[:2], hash[2:]+".msgpack")
	matches, _ := filepath.Glob(filepath.Join(dir, "*", "*.msgpack"))
	if len(matches) != 1 || matches[0] != want {
		t.Errorf("entries = %v, want [%s]", matches, want)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	type spec struct {
		Frequency float64
		Seed      uint32
	}
	dk1 := k.DesignKey(spec{Frequency: 1000, Seed: 1})
	dk2 := k.DesignKey(spec{Frequency: 1000, Seed: 2})
	if dk1 == dk2 {
		t.Error("Different design options should produce different keys")
	}
	if dk1 != k.DesignKey(spec{Frequency: 1000, Seed: 1}) {
		t.Error("DesignKey should be deterministic")
	}
	if !strings.HasPrefix(dk1, "design:") || len(dk1) != len("design:")+64 {
		t.Errorf("DesignKey unexpected: %s", dk1)
	}

	if pk := k.PolesKey("chebyshev", 4, 0.5); pk != "poles:chebyshev:4:0.5" {
		t.Errorf("PolesKey unexpected: %s", pk)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "api:")

	if pk := scoped.PolesKey("bessel", 2, 0); pk != "api:poles:bessel:2:0" {
		t.Errorf("ScopedKeyer PolesKey unexpected: %s", pk)
	}

	designKey := scoped.DesignKey("x")
	if designKey != "api:"+inner.DesignKey("x") {
		t.Errorf("ScopedKeyer DesignKey should be prefixed: %s", designKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.PolesKey("butterworth", 2, 0)
	if key != "prefix:poles:butterworth:2:0" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url")
	if !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("expected INVALID_PARAMETER, got %v", err)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

var errPermanent error = errors.New(errors.ErrCodeInternal, "permanent")
