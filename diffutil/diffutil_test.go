// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const (
	oldName = "a/b/c"
	newName = "d/e/f"
	oldText = "abc\ndef\nghi\n"
	newText = "ABC\ndef\nGHI\n"
	want    = "diff a/b/c d/e/f\n--- a/b/c\n+++ d/e/f\n@@ -1,3 +1,3 @@\n-abc\n+ABC\n def\n-ghi\n+GHI\n"
)

func TestDiff(t *testing.T) {
	out, err := Diff(oldName, []byte(oldText), newName, []byte(newText))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != want {
		t.Errorf("Diff: have:\n%s", out)
		t.Errorf("Diff: want:\n%s", want)
	}
}

func TestPrintTransformNamesBothSidesAfterTheSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.go")
	outPath := filepath.Join(dir, "x.xform.go")
	if err := os.WriteFile(outPath, []byte(newText), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var buf bytes.Buffer
	if err := PrintTransform(&buf, path, []byte(oldText), outPath, true); err != nil {
		t.Fatalf("PrintTransform: %v", err)
	}
	got := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("--- "+path)) || !bytes.Contains(buf.Bytes(), []byte("+++ "+path)) {
		t.Errorf("expected both diff headers to name %s, got:\n%s", path, got)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("expected outPath to be cleaned up, stat err: %v", err)
	}
}

func TestPrintTransformKeepsOutputWhenNotCleaningUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.go")
	outPath := path
	if err := os.WriteFile(outPath, []byte(newText), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var buf bytes.Buffer
	if err := PrintTransform(&buf, path, []byte(oldText), outPath, false); err != nil {
		t.Fatalf("PrintTransform: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected outPath to remain when cleanup is false: %v", err)
	}
}
