package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func Test_bodyHash(t *testing.T) {
	data := []byte(`{"quantity":100}`)
	sum := sha256.Sum256(data)
	if got, want := bodyHash(data), hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("bodyHash mismatch: got %s want %s", got, want)
	}
}

func Test_buildKey(t *testing.T) {
	k := buildKey("POST", "/orders", strings.Repeat("b", 32), strings.Repeat("a", 32))
	if !strings.HasPrefix(k, "idemp:ax:post:/orders:") {
		t.Fatalf("buildKey prefix mismatch: %q", k)
	}
	if !strings.Contains(k, ":"+strings.Repeat("b", 32)+":") || !strings.HasSuffix(k, strings.Repeat("a", 32)) {
		t.Fatalf("buildKey missing actor/request segments: %q", k)
	}
}

func Test_validReqID(t *testing.T) {
	valid := []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88", // UUID v4
		strings.Repeat("a", 32),                // bare 32-hex
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",
	}
	for _, s := range valid {
		if !validReqID(s) {
			t.Errorf("validReqID should accept %q", s)
		}
	}

	invalid := []string{
		"",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",      // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c880",    // 33 chars
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",     // non-hex
		"3f9a6a1b-3d54-9fbe-8b3a-6b3e8d6b2c88", // bad UUID version
	}
	for _, s := range invalid {
		if validReqID(s) {
			t.Errorf("validReqID should reject %q", s)
		}
	}
}

func Test_parseAxRequestAt(t *testing.T) {
	sec := time.Now().UTC().Unix()
	if ts, err := parseAxRequestAt(strconv.FormatInt(sec, 10)); err != nil || !ts.Equal(time.Unix(sec, 0).UTC()) {
		t.Errorf("epoch seconds: ts=%v err=%v", ts, err)
	}

	ms := time.Now().UTC().UnixMilli()
	if ts, err := parseAxRequestAt(strconv.FormatInt(ms, 10)); err != nil || !ts.Equal(time.UnixMilli(ms).UTC()) {
		t.Errorf("epoch millis: ts=%v err=%v", ts, err)
	}

	// 10:00 +05:30 == 04:30 UTC
	ts, err := parseAxRequestAt("2026-04-10T10:00:00+05:30")
	if err != nil {
		t.Fatalf("rfc3339 with zone: %v", err)
	}
	if want := time.Date(2026, 4, 10, 4, 30, 0, 0, time.UTC); !ts.Equal(want) {
		t.Errorf("rfc3339 zone: got %v want %v", ts, want)
	}

	for _, raw := range []string{"", "not-a-time", "2026-04-10T10:00:00", "1736123456abc"} {
		if _, err := parseAxRequestAt(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func Test_provisionalSet_LoadEntry(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	ctx := context.Background()

	key := buildKey("POST", "/orders", strings.Repeat("b", 32), strings.Repeat("a", 32))
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash([]byte(`{"quantity":100}`)),
		RequestID:   strings.Repeat("a", 32),
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   nowUTC(),
	}

	ok, err := provisionalSet(ctx, rdb, key, entry)
	if err != nil || !ok {
		t.Fatalf("provisionalSet 1: ok=%v err=%v", ok, err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > provisionalLockTTL {
		t.Fatalf("provisional TTL not set: %v", ttl)
	}

	// lock is exclusive
	if ok, err := provisionalSet(ctx, rdb, key, entry); err != nil || ok {
		t.Fatalf("provisionalSet 2: ok=%v err=%v, want false", ok, err)
	}

	got, err := loadEntry(ctx, rdb, key)
	if err != nil {
		t.Fatalf("loadEntry: %v", err)
	}
	if !got.InProgress || got.RequestID != entry.RequestID || got.BodySHA256 != entry.BodySHA256 {
		t.Fatalf("loaded entry mismatch: %+v", got)
	}
}

func Test_saveFinal_Load_TTL(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	defer mr.Close()
	ctx := context.Background()

	key := buildKey("POST", "/orders", strings.Repeat("b", 32), strings.Repeat("a", 32))
	final := idempEntry{
		Code:        201,
		Body:        []byte(`{"order_id":"x"}`),
		BodySHA256:  bodyHash([]byte(`{"quantity":100}`)),
		RequestID:   strings.Repeat("a", 32),
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   nowUTC(),
	}

	ttlWant := 5 * time.Second
	if err := saveFinal(ctx, rdb, key, final, ttlWant); err != nil {
		t.Fatalf("saveFinal: %v", err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > ttlWant {
		t.Fatalf("final TTL out of range: %v", ttl)
	}

	got, err := loadEntry(ctx, rdb, key)
	if err != nil {
		t.Fatalf("loadEntry: %v", err)
	}
	if got.Code != 201 || string(got.Body) != `{"order_id":"x"}` || got.InProgress {
		t.Fatalf("final entry mismatch: %+v", got)
	}
}
