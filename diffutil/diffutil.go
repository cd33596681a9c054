// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diffutil implements a Diff function that compares two inputs
// using the system 'diff' tool, plus PrintTransform, which understands this
// repo's own output-path convention (§4.6, §6's overwrite_source_files
// flag): a transform writes to path unchanged, or to an adjacent
// ".xform"-suffixed file, and either way the diff should be shown against
// the original and named after it, with the alternate file cleaned up
// afterward.
package diffutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Diff returns the unified diff between old and new, in diff(1) format,
// with the given file names substituted into the header.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	f1, err := writeTempFile(old)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f1)

	f2, err := writeTempFile(new)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f2)

	data, err := exec.Command("diff", "-u", f1, f2).CombinedOutput()
	if err != nil && len(data) == 0 {
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}

	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, nil
	}
	j := bytes.IndexByte(data[i+1:], '\n')
	if j < 0 {
		return data, nil
	}
	start := i + 1 + j + 1
	if start >= len(data) || data[start] != '@' {
		return data, nil
	}

	return append([]byte(fmt.Sprintf("diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)), data[start:]...), nil
}

// PrintTransform writes the unified diff between path's original contents
// old and the transform's output at outPath to w, naming both sides after
// path (the coordinator always diffs against the source file's own name,
// never the alternate output path, so the diff reads as a patch to path).
// If cleanup is set (the default, non-overwriting run mode) it removes
// outPath once the diff has been produced, since that file only exists to
// be diffed and is not the run's intended artifact.
func PrintTransform(w io.Writer, path string, old []byte, outPath string, cleanup bool) error {
	new, err := os.ReadFile(outPath)
	if err != nil {
		return err
	}
	if cleanup {
		defer os.Remove(outPath)
	}
	d, err := Diff(path, old, path, new)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func writeTempFile(data []byte) (string, error) {
	file, err := os.CreateTemp("", "xform-diff")
	if err != nil {
		return "", err
	}
	_, err = file.Write(data)
	if err1 := file.Close(); err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}
