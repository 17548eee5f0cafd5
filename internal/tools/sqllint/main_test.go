package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLintFileAcceptsMarkedConcatenatedQuery(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "q.go", "package q\n\nconst cols = `id, name`\n\nconst QList = `--sql 59277811-d00e-46f3-b001-993f3bc28eac\nselect ` + cols + `\nfrom charity_project;\n`\n")

	vs, err := lintFile(path, map[string]violation{})
	if err != nil {
		t.Fatalf("lintFile() error: %v", err)
	}
	if len(vs) != 0 {
		t.Fatalf("expected no violations, got %+v", vs)
	}
}

func TestLintFileFlagsMissingMarker(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "q.go", "package q\n\nconst QDelete = `delete from donation where id = $1;`\n")

	vs, err := lintFile(path, map[string]violation{})
	if err != nil {
		t.Fatalf("lintFile() error: %v", err)
	}
	if len(vs) != 1 || vs[0].name != "QDelete" {
		t.Fatalf("expected one violation for QDelete, got %+v", vs)
	}
}

func TestLintFileFlagsReusedMarker(t *testing.T) {
	dir := t.TempDir()
	seen := map[string]violation{}
	body := "package q\n\nconst QA = `--sql 6a4e2751-cf25-4e0d-98aa-ce0640032298\nselect 1;`\n"
	first := writeSource(t, dir, "a.go", body)
	second := writeSource(t, dir, "b.go", strings.Replace(body, "QA", "QB", 1))

	if vs, err := lintFile(first, seen); err != nil || len(vs) != 0 {
		t.Fatalf("first file: violations=%+v err=%v", vs, err)
	}
	vs, err := lintFile(second, seen)
	if err != nil {
		t.Fatalf("lintFile() error: %v", err)
	}
	if len(vs) != 1 || !strings.Contains(vs[0].message, "QA") {
		t.Fatalf("expected reuse violation naming QA, got %+v", vs)
	}
}
