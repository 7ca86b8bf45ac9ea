package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var defaultPatterns = []string{"**/*.eval.json", "**/*.eval.yaml", "**/*.eval.yml"}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.eval.yaml", "evaluations: []")
	writeFile(t, root, "papers/2021/a.eval.json", `{"evaluations":[]}`)
	writeFile(t, root, "papers/c.eval.yml", "evaluations: []")
	writeFile(t, root, "papers/notes.yaml", "ignored: true")
	writeFile(t, root, "papers/readme.md", "# ignored")
	if err := os.MkdirAll(filepath.Join(root, "dir.eval.json"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := NewFileDiscovery(root, defaultPatterns).DiscoverFiles()
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.RelPath)
		if !strings.HasPrefix(f.Path, root) {
			t.Errorf("Path %q not under root", f.Path)
		}
		if f.Size == 0 {
			t.Errorf("Size of %s is 0", f.RelPath)
		}
	}
	want := []string{"b.eval.yaml", "papers/2021/a.eval.json", "papers/c.eval.yml"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("DiscoverFiles() = %v, want %v", got, want)
	}
}

func TestDiscoverFiles_OverlappingPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "x/a.eval.json", "{}")

	files, err := NewFileDiscovery(root, []string{"**/*.json", "x/*.eval.json"}).DiscoverFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file, got %d", len(files))
	}
}

func TestDiscoverFiles_Errors(t *testing.T) {
	root := t.TempDir()
	file := writeFile(t, root, "a.eval.json", "{}")

	tests := []struct {
		name     string
		root     string
		patterns []string
	}{
		{"missing root", filepath.Join(root, "nope"), defaultPatterns},
		{"root is a file", file, defaultPatterns},
		{"bad pattern", root, []string{"[a-"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileDiscovery(tt.root, tt.patterns).DiscoverFiles(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestIsEvaluationDocument(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.eval.json", true},
		{"dir/a.eval.yaml", true},
		{"A.EVAL.YML", true},
		{"a.json", false},
		{"a.eval.md", false},
	}
	for _, tt := range tests {
		if got := IsEvaluationDocument(tt.path); got != tt.want {
			t.Errorf("IsEvaluationDocument(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileFormat(t *testing.T) {
	if got := (File{Path: "a.eval.JSON"}).Format(); got != "json" {
		t.Errorf("Format() = %q, want json", got)
	}
	if got := (File{Path: "a.eval.yml"}).Format(); got != "yaml" {
		t.Errorf("Format() = %q, want yaml", got)
	}
}

func TestValidateFilePath(t *testing.T) {
	root := t.TempDir()
	good := writeFile(t, root, "a.eval.json", `{"evaluations":[]}`)
	empty := writeFile(t, root, "empty.json", "")
	markdown := writeFile(t, root, "notes.md", "# notes")
	binary := writeFile(t, root, "bin.json", "ab\x00cd")

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"valid", good, ""},
		{"missing", filepath.Join(root, "missing.json"), "file not found"},
		{"directory", root, "directory"},
		{"empty", empty, "empty"},
		{"wrong extension", markdown, "unsupported document type"},
		{"binary", binary, "binary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := ValidateFilePath(tt.path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !filepath.IsAbs(abs) {
					t.Errorf("path %q is not absolute", abs)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilePath_Symlink(t *testing.T) {
	root := t.TempDir()
	target := writeFile(t, root, "real.eval.yaml", "evaluations: []")
	link := filepath.Join(root, "link.eval.yaml")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	abs, err := ValidateFilePath(link)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(target)
	if abs != want {
		t.Errorf("ValidateFilePath() = %q, want %q", abs, want)
	}
}
