package osfilesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "test.txt")
	testData := []byte("hello world")

	if err := fs.WriteFile(testPath, testData); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	testPath := filepath.Join(tmpDir, "a", "b", "c", "test.txt")
	if err := fs.WriteFile(testPath, []byte("test")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist after nested write")
	}
}

func TestFileSystem_Glob(t *testing.T) {
	fs := New()
	tmpDir := t.TempDir()

	for _, name := range []string{"frame_0001.png", "frame_0002.png", "other.txt"} {
		if err := fs.WriteFile(filepath.Join(tmpDir, name), []byte("x")); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	matches, err := fs.Glob(filepath.Join(tmpDir, "frame_*.png"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d: %v", len(matches), matches)
	}
}

func TestFileSystem_TempDirAndRemoveAll(t *testing.T) {
	fs := New()

	dir, err := fs.TempDir("delogo-test-")
	if err != nil {
		t.Fatalf("TempDir failed: %v", err)
	}
	if !strings.Contains(filepath.Base(dir), "delogo-test-") {
		t.Errorf("temp dir %q does not contain the prefix", dir)
	}

	if err := fs.WriteFile(filepath.Join(dir, "sub", "file.txt"), []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected %q to be removed", dir)
	}
}
