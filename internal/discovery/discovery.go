// Package discovery finds evaluation documents for batch runs.
package discovery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// documentPattern matches the basename of an evaluation document.
const documentPattern = "*.eval.{json,yaml,yml}"

// File represents a discovered evaluation document
type File struct {
	Path    string // absolute or root-joined path
	RelPath string // slash-separated, relative to the discovery root
	Size    int64
}

// Format returns the document format implied by the extension.
func (f File) Format() string {
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// IsEvaluationDocument reports whether the basename of path follows the
// *.eval.{json,yaml,yml} naming convention.
func IsEvaluationDocument(path string) bool {
	ok, err := doublestar.Match(documentPattern, strings.ToLower(filepath.Base(path)))
	return err == nil && ok
}

// FileDiscovery handles discovering evaluation documents under a root.
type FileDiscovery struct {
	rootPath string
	patterns []string
}

// NewFileDiscovery creates a new FileDiscovery instance. Patterns are
// doublestar globs relative to rootPath.
func NewFileDiscovery(rootPath string, patterns []string) *FileDiscovery {
	return &FileDiscovery{
		rootPath: rootPath,
		patterns: patterns,
	}
}

// DiscoverFiles returns every regular file matched by any pattern, once,
// ordered by relative path.
func (fd *FileDiscovery) DiscoverFiles() ([]File, error) {
	info, err := os.Stat(fd.rootPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access root %s: %w", fd.rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", fd.rootPath)
	}

	fsys := os.DirFS(fd.rootPath)
	seen := make(map[string]bool)
	var files []File

	for _, pattern := range fd.patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			fullPath := filepath.Join(fd.rootPath, filepath.FromSlash(match))
			st, err := os.Stat(fullPath)
			if err != nil || st.IsDir() {
				continue
			}
			files = append(files, File{Path: fullPath, RelPath: match, Size: st.Size()})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// ValidateFilePath validates a single document path given on the command
// line and returns its absolute, symlink-resolved form.
func ValidateFilePath(path string) (absPath string, err error) {
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", absPath)
		}
		if os.IsPermission(err) {
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		realPath, evalErr := filepath.EvalSymlinks(absPath)
		if evalErr != nil {
			return "", fmt.Errorf("cannot resolve symlink %s: %w", absPath, evalErr)
		}
		absPath = realPath
		if info, err = os.Stat(absPath); err != nil {
			return "", fmt.Errorf("symlink target inaccessible: %s: %w", absPath, err)
		}
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("file is empty: %s", absPath)
	}

	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".json", ".yaml", ".yml":
	default:
		return "", fmt.Errorf("unsupported document type %q: %s (want .json, .yaml, or .yml)", filepath.Ext(absPath), absPath)
	}

	head, err := readHead(absPath, 512)
	if err != nil {
		return "", err
	}
	if bytes.Contains(head, []byte{0}) {
		return "", fmt.Errorf("file appears to be binary, not text: %s", absPath)
	}

	return absPath, nil
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := f.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %s: %w", path, err)
	}
	return buf[:read], nil
}
