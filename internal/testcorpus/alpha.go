// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testcorpus

import "fmt"

func reportStatus(ok bool) {
	if ok == true {
		fmt.Println("ready")
	} else {
		fmt.Println("not ready")
	}
}

func reportFlag(flag bool) {
	if flag == true {
		fmt.Println("set")
	} else {
		fmt.Println("clear")
	}
}
