package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeleteBestEffort(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "artifact.nc")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	missing := filepath.Join(dir, "never-existed.nc")

	// A missing file must not abort the batch.
	Delete([]string{missing, existing})

	if _, err := os.Stat(existing); !os.IsNotExist(err) {
		t.Errorf("existing file was not deleted")
	}
}
