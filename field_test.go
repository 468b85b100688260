// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

import "testing"

func TestDecodeFieldWithConstantValue(t *testing.T) {
	b := newClassBuilder()
	nameIdx := b.cpUtf8("MAX")
	descIdx := b.cpUtf8("I")
	cvNameIdx := b.cpUtf8("ConstantValue")
	valueIdx := b.cpInteger(2147483647)

	body := newClassBuilder()
	body.u16(uint16(AccPublic | AccStatic | AccFinal))
	body.u16(nameIdx)
	body.u16(descIdx)
	body.u16(1) // attributes_count
	body.u16(cvNameIdx)
	body.u32(2)
	body.u16(valueIdx)

	poolReader := newReader(b.pool)
	pool, err := decodeConstantPool(poolReader, b.poolCount())
	if err != nil {
		t.Fatalf("decodeConstantPool() error = %v", err)
	}

	r := newReader(body.rest)
	ctx := newTestContext(pool)
	field, err := decodeField(r, ctx)
	if err != nil {
		t.Fatalf("decodeField() error = %v", err)
	}
	if field.NameIndex != nameIdx || field.DescriptorIndex != descIdx {
		t.Errorf("field = %+v, want NameIndex=%d DescriptorIndex=%d", field, nameIdx, descIdx)
	}
	cv := field.Attribute("ConstantValue")
	if cv == nil || cv.ConstantValue == nil || cv.ConstantValue.ConstantValueIndex != valueIdx {
		t.Fatalf("Attribute(ConstantValue) = %+v, want ConstantValueIndex %d", cv, valueIdx)
	}
}

func TestFieldAttributeMissing(t *testing.T) {
	f := &Field{}
	if got := f.Attribute("SourceFile"); got != nil {
		t.Errorf("Attribute() = %+v, want nil", got)
	}
}
