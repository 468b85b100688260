// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

// Fuzz is the legacy go-fuzz entry point: golang.org/x/tools/cmd/gofuzz-build
// and go-fuzz-build both discover a package-level func Fuzz(data []byte) int
// by convention. It returns 1 when data parses as a valid class file (so the
// corpus is biased toward interesting inputs), 0 otherwise.
func Fuzz(data []byte) int {
	cf, err := Parse(data)
	if err != nil {
		return 0
	}
	if cf == nil {
		return 0
	}
	return 1
}
