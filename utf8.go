// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

import "unicode/utf8"

// validUTF8 reports whether b is well-formed UTF-8. The JVM's "modified
// UTF-8" differs from standard UTF-8 in its encoding of NUL and
// supplementary characters; per §1's scope, decoding that variant is a
// caller concern. This package only needs ordinary UTF-8 validation to
// resolve attribute names (§4.4 step 2), which in practice are always
// plain ASCII.
func validUTF8(b []byte) bool {
	return utf8.Valid(b)
}
