// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

// Access and modifier flag bits. Meaning depends on the position they
// appear in (class, field, method, inner-class, or method-parameter), the
// same bit pattern recurring with different names in different contexts —
// mirrored here as separately named constants that share a value (AccSuper
// and AccSynchronized are both 0x0020), the way the teacher repo gives each
// header its own Characteristics bit block.
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSuper        = 0x0020 // class only
	AccSynchronized = 0x0020 // method only
	AccVolatile     = 0x0040 // field only
	AccBridge       = 0x0040 // method only
	AccTransient    = 0x0080 // field only
	AccVarargs      = 0x0080 // method only
	AccNative       = 0x0100 // method only
	AccInterface    = 0x0200 // class only
	AccAbstract     = 0x0400
	AccStrict       = 0x0800 // method only
	AccSynthetic    = 0x1000
	AccAnnotation   = 0x2000 // class only
	AccEnum         = 0x4000
	AccModule       = 0x8000 // class only
	AccMandated     = 0x8000 // inner-class, parameter only
)

// classAccessMask, fieldAccessMask, methodAccessMask, innerClassAccessMask,
// and parameterAccessMask enumerate the bits the JVM spec defines for each
// context; any other bit set is an unknown access bit (§3.2).
const (
	classAccessMask      = AccPublic | AccFinal | AccSuper | AccInterface | AccAbstract | AccSynthetic | AccAnnotation | AccEnum | AccModule
	fieldAccessMask      = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal | AccVolatile | AccTransient | AccSynthetic | AccEnum
	methodAccessMask     = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal | AccSynchronized | AccBridge | AccVarargs | AccNative | AccAbstract | AccStrict | AccSynthetic
	innerClassAccessMask = AccPublic | AccPrivate | AccProtected | AccStatic | AccFinal | AccInterface | AccAbstract | AccSynthetic | AccAnnotation | AccEnum
	parameterAccessMask  = AccFinal | AccSynthetic | AccMandated
)

// AccessFlags is a raw access/modifier bit-set. Unknown bits (outside the
// mask defined for the context they were read in) are preserved by
// default, not stripped — the design permits future JVM specs to add bits.
// A caller that cares checks against the relevant *AccessMask or calls
// HasUnknownBits.
type AccessFlags uint16

// Has reports whether every bit in mask is set.
func (f AccessFlags) Has(mask uint16) bool { return uint16(f)&mask == mask }

// HasUnknownBits reports whether f carries bits outside the given context
// mask.
func (f AccessFlags) HasUnknownBits(contextMask uint16) bool {
	return uint16(f)&^contextMask != 0
}

func decodeAccessFlags(r *reader, contextMask uint16, onUnknown UnknownAccessBitsPolicy) (AccessFlags, error) {
	offset := int64(r.pos())
	raw, err := r.u16()
	if err != nil {
		return 0, err
	}
	flags := AccessFlags(raw)
	if onUnknown == RejectUnknownAccessBits && flags.HasUnknownBits(contextMask) {
		return 0, newParseError(ErrUnknownAccessBits, offset, raw&^contextMask)
	}
	return flags, nil
}
