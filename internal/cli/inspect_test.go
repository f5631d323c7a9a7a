package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestRunInspect(t *testing.T) {
	path := writeTempCSV(t, "name;qty\nbolt;12\nwasher;300\nshort\n")

	var out bytes.Buffer
	if err := runInspect(&out, path, false, 20); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"name", "qty", "bolt", "washer", "3 data rows", "1 invalid", `';'`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunInspect_Limit(t *testing.T) {
	path := writeTempCSV(t, "a\n1\n2\n3\n4\n5\n")

	var out bytes.Buffer
	if err := runInspect(&out, path, false, 2); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "showing first 2") {
		t.Errorf("output missing truncation note:\n%s", got)
	}
	if strings.Contains(got, "5 data rows") == false {
		t.Errorf("output missing full row count:\n%s", got)
	}
}

func TestRunInspect_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "\n\n")

	var out bytes.Buffer
	if err := runInspect(&out, path, false, 20); err == nil {
		t.Fatal("runInspect() on empty file succeeded, want error")
	}
}

func TestRunInspect_MissingFile(t *testing.T) {
	var out bytes.Buffer
	if err := runInspect(&out, filepath.Join(t.TempDir(), "nope.csv"), false, 20); err == nil {
		t.Fatal("runInspect() on missing file succeeded, want error")
	}
}

func TestRunInspect_Strict(t *testing.T) {
	path := writeTempCSV(t, "size,name\n"+`3" pipe,flange`+"\n")

	var out bytes.Buffer
	if err := runInspect(&out, path, true, 20); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}
	if !strings.Contains(out.String(), "0 invalid") {
		t.Errorf("strict parse should keep the row:\n%s", out.String())
	}
}
