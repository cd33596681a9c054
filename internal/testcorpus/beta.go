// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testcorpus

import "fmt"

func reportDone(done bool) {
	if done == true {
		fmt.Println("finished")
	} else {
		fmt.Println("pending")
	}
}

// Counter is a small struct with an implicit constructor and a method,
// exercising the implicit constructor/destructor parameterization rule
// when a template abstracts over its type.
type Counter struct {
	n int
}

// NewCounter builds a zeroed Counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Incr advances c by one.
func (c *Counter) Incr() {
	c.n++
}
