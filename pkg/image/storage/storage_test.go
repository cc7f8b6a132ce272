package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestCleanKey(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":            "photo.jpg",
		"../../etc/passwd":     "passwd",
		`C:\Users\ana\a b.png`: "a_b.png",
		"..":                   "",
		"lote#1?.jpeg":         "lote1.jpeg",
	}
	for in, want := range cases {
		if got := CleanKey(in); got != want {
			t.Errorf("CleanKey(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestLocalRoundTrip(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:8000/uploads/")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	url, err := l.Put(ctx, "a.jpg", "image/jpeg", []byte("jpeg"))
	if err != nil {
		t.Fatal(err)
	}
	if url != "http://localhost:8000/uploads/a.jpg" {
		t.Errorf("unexpected url %s", url)
	}
	if b, _ := os.ReadFile(filepath.Join(dir, "a.jpg")); string(b) != "jpeg" {
		t.Errorf("Expected file written, got %q", b)
	}
	if _, err := l.Put(ctx, "a.jpg", "image/jpeg", []byte("other")); !errors.Is(err, ErrObjectExists) {
		t.Errorf("Expected ErrObjectExists, got %v", err)
	}
	if b, _ := os.ReadFile(filepath.Join(dir, "a.jpg")); string(b) != "jpeg" {
		t.Errorf("Expected first object kept, got %q", b)
	}
	if err := l.Delete(ctx, "a.jpg"); err != nil {
		t.Fatal(err)
	}
	if err := l.Delete(ctx, "a.jpg"); err != nil {
		t.Errorf("Expected deleting a missing object to succeed, got %v", err)
	}
	if _, err := l.Put(ctx, "../x.jpg", "image/jpeg", nil); err == nil {
		t.Errorf("Expected traversal key to be rejected")
	}
}

func TestLocalPutIsExclusive(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "")
	if err != nil {
		t.Fatal(err)
	}

	const writers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		won    []byte
		losses int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(b byte) {
			defer wg.Done()
			_, err := l.Put(context.Background(), "hoja.jpg", "image/jpeg", []byte{b})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won = append(won, b)
			case errors.Is(err, ErrObjectExists):
				losses++
			default:
				t.Errorf("unexpected error %v", err)
			}
		}(byte('a' + i))
	}
	wg.Wait()

	if len(won) != 1 || losses != writers-1 {
		t.Fatalf("Expected exactly one winner, got %d winners and %d losses", len(won), losses)
	}
	if b, _ := os.ReadFile(filepath.Join(dir, "hoja.jpg")); string(b) != string(won) {
		t.Errorf("Expected winner's bytes %q, got %q", won, b)
	}
}

func TestGCSCredentialChecks(t *testing.T) {
	cases := []struct {
		name   string
		bucket string
		creds  string
		want   error
	}{
		{"nothing configured", "", "", ErrNoCredentials},
		{"credentials without bucket", "", "sa.json", ErrPartialCredentials},
		{"missing credentials file", "minascan", filepath.Join(t.TempDir(), "nope.json"), ErrNoCredentials},
	}
	for _, tc := range cases {
		g := NewGCS(tc.bucket, tc.creds, "", "")
		if err := g.Check(); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if _, err := g.Put(context.Background(), "a.jpg", "image/jpeg", nil); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected Put to fail with %v, got %v", tc.name, tc.want, err)
		}
	}

	if err := NewGCS("minascan", "", "", "").Check(); err != nil {
		t.Errorf("Expected bucket with default credentials to pass, got %v", err)
	}
}

func TestGCSPublicURL(t *testing.T) {
	g := NewGCS("minascan", "", "", "")
	if got := joinURL(g.publicBase, "a.jpg"); got != "https://storage.googleapis.com/minascan/a.jpg" {
		t.Errorf("unexpected url %s", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{401, ErrNoCredentials},
		{403, ErrPartialCredentials},
		{412, ErrObjectExists},
	}
	for _, tc := range cases {
		if err := classify(&googleapi.Error{Code: tc.code}); !errors.Is(err, tc.want) {
			t.Errorf("code %d: expected %v, got %v", tc.code, tc.want, err)
		}
	}
	if err := classify(errors.New("boom")); errors.Is(err, ErrObjectExists) || errors.Is(err, ErrNoCredentials) {
		t.Errorf("Expected plain store error, got %v", err)
	}
}
