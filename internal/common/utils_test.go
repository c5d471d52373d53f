package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadStoryIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sids.txt")
	if err := os.WriteFile(path, []byte("15\n\n  200  \n\n7\n"), 0644); err != nil {
		t.Fatalf("writing id file: %v", err)
	}

	sids, err := ReadStoryIDs(path)
	if err != nil {
		t.Fatalf("ReadStoryIDs: %v", err)
	}
	if diff := cmp.Diff([]string{"15", "200", "7"}, sids); diff != "" {
		t.Errorf("story ids mismatch (-want +got):\n%s", diff)
	}
}

func TestReadStoryIDsMissingFile(t *testing.T) {
	if _, err := ReadStoryIDs(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
