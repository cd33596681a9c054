// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testcorpus is not a library: it is a small multi-file Go fixture
// package loaded by corpus and coordinator tests via
// golang.org/x/tools/go/packages, standing in for a real target corpus.
package testcorpus
