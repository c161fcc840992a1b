package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"montage/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	tmpDir := t.TempDir()

	result := CheckDirectoryAccess("Staging directory", tmpDir)
	if !result.Passed {
		t.Fatalf("expected pass for %s, got %q", tmpDir, result.Detail)
	}

	result = CheckDirectoryAccess("Staging directory", filepath.Join(tmpDir, "missing"))
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}

	file := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = CheckDirectoryAccess("Staging directory", file)
	if result.Passed {
		t.Fatal("expected failure for non-directory path")
	}
}

func TestCheckFontFile(t *testing.T) {
	tmpDir := t.TempDir()

	font := filepath.Join(tmpDir, "caption.ttf")
	if err := os.WriteFile(font, []byte("font"), 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	result := CheckFontFile(font)
	if !result.Passed {
		t.Fatalf("expected pass, got %q", result.Detail)
	}

	result = CheckFontFile(filepath.Join(tmpDir, "missing.ttf"))
	if result.Passed {
		t.Fatal("expected failure for missing font")
	}

	result = CheckFontFile(tmpDir)
	if result.Passed {
		t.Fatal("expected failure for directory path")
	}
}

func TestCheckDiskSpace(t *testing.T) {
	tmpDir := t.TempDir()

	result := CheckDiskSpace(tmpDir, 0)
	if !result.Passed {
		t.Fatalf("expected pass with zero minimum, got %q", result.Detail)
	}

	result = CheckDiskSpace(tmpDir, 1<<30)
	if result.Passed {
		t.Fatal("expected failure with absurd minimum")
	}
	if !strings.Contains(result.Detail, "GiB free") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}

	result = CheckDiskSpace(filepath.Join(tmpDir, "missing"), 0)
	if result.Passed {
		t.Fatal("expected failure for missing path")
	}
}

func TestRunAllReportsMissingBinaries(t *testing.T) {
	tmpDir := t.TempDir()

	defaults := config.Default()
	cfg := &defaults
	cfg.Paths.StagingDir = tmpDir
	cfg.Paths.OutputDir = tmpDir
	cfg.Paths.FontPath = ""
	cfg.FFmpeg.Binary = "clearly-not-present-ffmpeg"
	cfg.FFmpeg.ProbeBinary = "clearly-not-present-ffprobe"
	cfg.Export.MinFreeGiB = 0

	results := RunAll(cfg)
	if len(results) == 0 {
		t.Fatal("expected results")
	}

	failed := Failed(results)
	if len(failed) != 2 {
		t.Fatalf("expected 2 failures, got %d: %+v", len(failed), failed)
	}
	for _, result := range failed {
		if result.Name != "FFmpeg" && result.Name != "FFprobe" {
			t.Fatalf("unexpected failed check %q", result.Name)
		}
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}
