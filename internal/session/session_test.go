package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// ─── File store ───────────────────────────────────────────────────────────────

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if tok := store.Token(); tok != "" {
		t.Fatalf("fresh store has token %q", tok)
	}

	if err := store.Set("abc.def.ghi"); err != nil {
		t.Fatal(err)
	}
	if tok := store.Token(); tok != "abc.def.ghi" {
		t.Fatalf("got %q after set", tok)
	}

	// A second store over the same path sees the persisted token.
	again, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if tok := again.Token(); tok != "abc.def.ghi" {
		t.Fatalf("reopened store got %q", tok)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file mode = %o, want 600", perm)
	}

	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if tok := store.Token(); tok != "" {
		t.Fatalf("token survives clear: %q", tok)
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
}

func TestFileStoreIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatal(err)
	}
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if tok := store.Token(); tok != "" {
		t.Fatalf("corrupt file produced token %q", tok)
	}
}

// ─── Memory store ─────────────────────────────────────────────────────────────

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set("tok"); err != nil {
		t.Fatal(err)
	}
	if tok := store.Token(); tok != "tok" {
		t.Fatalf("got %q", tok)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if tok := store.Token(); tok != "" {
		t.Fatalf("got %q after clear", tok)
	}
}

// ─── Expiry ───────────────────────────────────────────────────────────────────

func TestExpired(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return base }
	defer func() { now = time.Now }()

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty token", "", false},
		{"not a jwt", "opaque-session-token", false},
		{"live jwt", signedToken(t, base.Add(time.Hour)), false},
		{"expired jwt", signedToken(t, base.Add(-time.Minute)), true},
		{"jwt without exp", func() string {
			tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"})
			s, _ := tok.SignedString([]byte("test-key"))
			return s
		}(), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Expired(tc.token); got != tc.want {
				t.Errorf("Expired(%s) = %t, want %t", tc.name, got, tc.want)
			}
		})
	}
}
