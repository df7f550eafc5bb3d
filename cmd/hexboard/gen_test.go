package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNeedDB(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "data", "hexboard.db")
	existing := filepath.Join(dir, "hexboard.db")
	if err := os.WriteFile(existing, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name         string
		save, random bool
		path         string
		want         bool
	}{
		{"search without database", false, false, missing, false},
		{"search with database", false, false, existing, true},
		{"random", false, true, existing, false},
		{"save", true, false, missing, true},
		{"save random", true, true, missing, true},
	}
	for _, tt := range tests {
		if got := needDB(tt.save, tt.random, tt.path); got != tt.want {
			t.Fatalf("%s: got %v want %v", tt.name, got, tt.want)
		}
	}
	if _, err := os.Stat(filepath.Dir(missing)); !os.IsNotExist(err) {
		t.Fatalf("data directory was created: %v", err)
	}
}
