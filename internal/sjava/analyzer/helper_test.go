package analyzer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bazelbuild/rules_go/go/tools/bazel"
)

const testdataDir = "internal/sjava/analyzer/testdata"

// fixturePath returns the path of a testdata file.
// In Bazel tests, it uses runfiles to find the file.
// Outside of Bazel, it falls back to finding go.mod and using the module root.
func fixturePath(t *testing.T, name string) string {
	t.Helper()
	if path, err := bazel.Runfile(filepath.Join(testdataDir, name)); err == nil {
		return path
	}

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, testdataDir, name)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	t.Fatalf("cannot locate fixture %s", name)
	return ""
}
