// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

import "testing"

func TestDecodeConstantPoolBasicTags(t *testing.T) {
	b := newClassBuilder()
	utf8Idx := b.cpUtf8("hi")
	classIdx := b.cpClass(utf8Idx)
	intIdx := b.cpInteger(-1)
	natIdx := b.cpNameAndType(utf8Idx, utf8Idx)
	methodrefIdx := b.cpMethodref(classIdx, natIdx)

	r := newReader(b.pool)
	pool, err := decodeConstantPool(r, b.poolCount())
	if err != nil {
		t.Fatalf("decodeConstantPool() error = %v", err)
	}

	if got, _ := pool.Utf8(utf8Idx); string(got) != "hi" {
		t.Errorf("Utf8(%d) = %q, want %q", utf8Idx, got, "hi")
	}

	classEntry, err := pool.At(classIdx)
	if err != nil || classEntry.Tag != ConstantClass || classEntry.NameIndex != utf8Idx {
		t.Errorf("At(%d) = %+v, %v, want Class{NameIndex: %d}", classIdx, classEntry, err, utf8Idx)
	}

	intEntry, err := pool.At(intIdx)
	if err != nil || intEntry.IntValue != -1 {
		t.Errorf("At(%d).IntValue = %v, %v, want -1, nil", intIdx, intEntry.IntValue, err)
	}

	mrEntry, err := pool.At(methodrefIdx)
	if err != nil || mrEntry.ClassIndex != classIdx || mrEntry.NameAndTypeIndex != natIdx {
		t.Errorf("At(%d) = %+v, %v, want Methodref{%d,%d}", methodrefIdx, mrEntry, err, classIdx, natIdx)
	}
}

func TestDecodeConstantPoolLongOccupiesTwoSlots(t *testing.T) {
	b := newClassBuilder()
	longIdx := b.cpLong(0x0102030405060708)
	afterIdx := b.cpUtf8("after")

	r := newReader(b.pool)
	pool, err := decodeConstantPool(r, b.poolCount())
	if err != nil {
		t.Fatalf("decodeConstantPool() error = %v", err)
	}

	entry, err := pool.At(longIdx)
	if err != nil {
		t.Fatalf("At(%d) error = %v", longIdx, err)
	}
	if entry.HighBytes != 0x01020304 || entry.LowBytes != 0x05060708 {
		t.Errorf("Long halves = %#x, %#x, want 0x01020304, 0x05060708", entry.HighBytes, entry.LowBytes)
	}

	if _, err := pool.At(longIdx + 1); err == nil {
		t.Errorf("At(%d) on Long's placeholder slot: want error, got nil", longIdx+1)
	}

	got, err := pool.Utf8(afterIdx)
	if err != nil || string(got) != "after" {
		t.Errorf("Utf8(%d) = %q, %v, want %q, nil", afterIdx, got, err, "after")
	}
}

func TestDecodeConstantPoolUnknownTag(t *testing.T) {
	buf := []byte{0x63} // tag 99, undefined
	r := newReader(buf)
	_, err := decodeConstantPool(r, 2)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrUnknownConstantTag {
		t.Fatalf("decodeConstantPool() error = %v, want ErrUnknownConstantTag", err)
	}
}

func TestConstantPoolAtRejectsIndexZero(t *testing.T) {
	pool := &ConstantPool{Entries: make([]Constant, 2)}
	if _, err := pool.At(0); err == nil {
		t.Error("At(0): want error, got nil")
	}
}
