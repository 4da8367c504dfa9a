package fetch

import (
	"strings"
	"testing"
)

const sampleDiff = `diff --git a/app.py b/app.py
index 1234567..89abcde 100644
--- a/app.py
+++ b/app.py
@@ -1,2 +1,3 @@
 import os
+password = "hunter2"
diff --git a/lib/util.py b/lib/util.py
--- a/lib/util.py
+++ b/lib/util.py
@@ -5,1 +5,2 @@
+# TODO: refactor
`

func TestSplitDiff(t *testing.T) {
	diffs := splitDiff(sampleDiff)

	if len(diffs) != 2 {
		t.Fatalf("len = %d, want 2", len(diffs))
	}
	if diffs[0].File != "app.py" {
		t.Errorf("diffs[0].File = %q, want app.py", diffs[0].File)
	}
	if diffs[1].File != "lib/util.py" {
		t.Errorf("diffs[1].File = %q, want lib/util.py", diffs[1].File)
	}
	if !strings.Contains(diffs[0].Patch, `+password = "hunter2"`) {
		t.Errorf("diffs[0].Patch missing added line:\n%s", diffs[0].Patch)
	}
	if strings.Contains(diffs[0].Patch, "TODO") {
		t.Error("diffs[0].Patch bleeds into the second file")
	}
	if !strings.Contains(diffs[1].Patch, "+# TODO: refactor") {
		t.Errorf("diffs[1].Patch missing added line:\n%s", diffs[1].Patch)
	}
}

func TestSplitDiff_Empty(t *testing.T) {
	if diffs := splitDiff(""); len(diffs) != 0 {
		t.Errorf("len = %d, want 0", len(diffs))
	}
}

func TestFileFromDiffHeader(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"diff --git a/app.py b/app.py", "app.py"},
		{"diff --git a/lib/util.py b/lib/util.py", "lib/util.py"},
		{"diff --git", ""},
	}
	for _, tt := range tests {
		if got := fileFromDiffHeader(tt.line); got != tt.want {
			t.Errorf("fileFromDiffHeader(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestNew_UnsupportedPlatform(t *testing.T) {
	if _, err := New("sourcehut"); err == nil {
		t.Error("expected error for unsupported platform")
	}
}
