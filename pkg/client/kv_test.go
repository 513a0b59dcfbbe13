package client_test

import (
	"path/filepath"
	"testing"

	"github.com/contentloom/contentloom/pkg/client"
)

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")

	store, err := client.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := store.Set("last_seen_user_id", "42"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened, err := client.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() reopen error = %v", err)
	}
	if v, ok := reopened.Get("last_seen_user_id"); !ok || v != "42" {
		t.Errorf("Get() = %q, %v, want %q, true", v, ok, "42")
	}

	if err := reopened.Delete("last_seen_user_id"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := reopened.Get("last_seen_user_id"); ok {
		t.Error("key survived Delete()")
	}
}
