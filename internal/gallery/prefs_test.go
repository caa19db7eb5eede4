package gallery

import (
	"os"
	"path/filepath"
	"testing"
)

func testKV(t *testing.T) *FileKV {
	t.Helper()
	return NewFileKV(filepath.Join(t.TempDir(), "prefs.json"))
}

func TestFileKVMissingFile(t *testing.T) {
	kv := testKV(t)

	value, err := kv.Get(FavoritesKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for missing key, got %q", value)
	}
}

func TestFileKVRoundTrip(t *testing.T) {
	kv := testKV(t)

	if err := kv.Set(FavoritesKey, []byte(`["abc","def"]`)); err != nil {
		t.Fatalf("set favorites: %v", err)
	}
	if err := kv.Set(DarkModeKey, []byte(`true`)); err != nil {
		t.Fatalf("set dark mode: %v", err)
	}

	value, err := kv.Get(FavoritesKey)
	if err != nil {
		t.Fatalf("get favorites: %v", err)
	}
	if string(value) != `["abc","def"]` {
		t.Fatalf("favorites round trip: got %q", value)
	}

	value, err = kv.Get(DarkModeKey)
	if err != nil {
		t.Fatalf("get dark mode: %v", err)
	}
	if string(value) != `true` {
		t.Fatalf("dark mode round trip: got %q", value)
	}
}

func TestFileKVCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	kv := NewFileKV(path)
	if _, err := kv.Get(FavoritesKey); err == nil {
		t.Fatal("expected error for corrupt prefs file")
	}
}

func TestFileKVClear(t *testing.T) {
	kv := testKV(t)

	if err := kv.Set(DarkModeKey, []byte(`true`)); err != nil {
		t.Fatal(err)
	}
	if err := kv.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	value, err := kv.Get(DarkModeKey)
	if err != nil || value != nil {
		t.Fatalf("expected empty store after clear, got %q, %v", value, err)
	}

	// Clearing an already-empty store is fine.
	if err := kv.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
