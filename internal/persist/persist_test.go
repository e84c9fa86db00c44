package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "doc.json")

	in := map[string]int{"a": 1, "b": 2}
	if err := SaveJSON(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out map[string]int
	ok, err := LoadJSON(path, &out)
	if err != nil || !ok {
		t.Fatalf("load = %v, %v", ok, err)
	}
	if out["a"] != 1 || out["b"] != 2 {
		t.Errorf("round trip = %v", out)
	}
}

func TestSaveJSONLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	if err := SaveJSON(path, []string{"x"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestLoadJSONMissing(t *testing.T) {
	var out map[string]int
	ok, err := LoadJSON(filepath.Join(t.TempDir(), "absent.json"), &out)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if ok {
		t.Error("ok = true for missing file")
	}
}

func TestLoadJSONCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out map[string]int
	if _, err := LoadJSON(path, &out); err == nil {
		t.Error("expected error for corrupt document")
	}
}

func TestSaveJSONOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	if err := SaveJSON(path, map[string]int{"old": 1}); err != nil {
		t.Fatal(err)
	}
	if err := SaveJSON(path, map[string]int{"new": 2}); err != nil {
		t.Fatal(err)
	}

	var out map[string]int
	if _, err := LoadJSON(path, &out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out["old"]; ok {
		t.Error("old snapshot survived overwrite")
	}
	if out["new"] != 2 {
		t.Errorf("doc = %v", out)
	}
}
