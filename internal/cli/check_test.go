package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCheckValid(t *testing.T) {
	path := writeDataset(t, `{"individuals": [
		{"name": "dad", "sex": "male"},
		{"name": "mom", "sex": "female"},
		{"name": "kid", "mother": "mom", "father": "dad"}
	]}`)

	if err := runCheck(context.Background(), path); err != nil {
		t.Errorf("valid dataset should pass check: %v", err)
	}
}

func TestRunCheckInvalid(t *testing.T) {
	path := writeDataset(t, `{"individuals": [
		{"name": "kid", "mother": "ghost"}
	]}`)

	if err := runCheck(context.Background(), path); err == nil {
		t.Error("dataset with unknown parent should fail check")
	}
}

func TestRunCheckMissingFile(t *testing.T) {
	if err := runCheck(context.Background(), filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Error("missing file should fail check")
	}
}
