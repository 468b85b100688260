// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

import (
	"reflect"
	"testing"
)

func TestDecodeInstructionsFixedWidth(t *testing.T) {
	// iconst_0 (0x03), istore_0 (0x3b), return (0xb1)
	code := []byte{0x03, 0x3b, 0xb1}
	instrs, err := decodeInstructions(code, 0)
	if err != nil {
		t.Fatalf("decodeInstructions() error = %v", err)
	}
	want := []Instruction{
		{Offset: 0, Opcode: 0x03},
		{Offset: 1, Opcode: 0x3b},
		{Offset: 2, Opcode: OpReturn},
	}
	if len(instrs) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(instrs), len(want))
	}
	for i := range want {
		if instrs[i].Offset != want[i].Offset || instrs[i].Opcode != want[i].Opcode {
			t.Errorf("instrs[%d] = %+v, want %+v", i, instrs[i], want[i])
		}
	}
}

func TestDecodeInstructionsBipushOperand(t *testing.T) {
	code := []byte{byte(OpBipush), 0x7f}
	instrs, err := decodeInstructions(code, 0)
	if err != nil {
		t.Fatalf("decodeInstructions() error = %v", err)
	}
	if len(instrs) != 1 || !reflect.DeepEqual(instrs[0].Operands, []byte{0x7f}) {
		t.Errorf("instrs = %+v, want one bipush with operand 0x7f", instrs)
	}
}

func TestDecodeInstructionsWideIinc(t *testing.T) {
	// wide iinc indexbyte1 indexbyte2 constbyte1 constbyte2
	code := []byte{byte(OpWide), byte(OpIinc), 0x00, 0x05, 0xff, 0xfe}
	instrs, err := decodeInstructions(code, 0)
	if err != nil {
		t.Fatalf("decodeInstructions() error = %v", err)
	}
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	if instrs[0].Opcode != OpWide {
		t.Errorf("Opcode = %v, want OpWide", instrs[0].Opcode)
	}
	want := []byte{byte(OpIinc), 0x00, 0x05, 0xff, 0xfe}
	if !reflect.DeepEqual(instrs[0].Operands, want) {
		t.Errorf("Operands = %v, want %v", instrs[0].Operands, want)
	}
}

func TestDecodeInstructionsInvokeinterfaceReservedByteMustBeZero(t *testing.T) {
	// indexbyte1, indexbyte2, count, reserved(nonzero)
	code := []byte{byte(OpInvokeinterface), 0x00, 0x01, 0x01, 0x01}
	_, err := decodeInstructions(code, 0)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrMalformedCode {
		t.Fatalf("decodeInstructions() error = %v, want ErrMalformedCode", err)
	}
}

func TestDecodeInstructionsTableswitchAlignment(t *testing.T) {
	// tableswitch at pc 0: opcode consumes 1 byte, so 3 padding bytes
	// follow to reach a 4-byte boundary, then default, low=0, high=1,
	// then two jump offsets.
	code := []byte{
		byte(OpTableswitch),
		0, 0, 0, // padding
		0, 0, 0, 10, // default
		0, 0, 0, 0, // low = 0
		0, 0, 0, 1, // high = 1
		0, 0, 0, 20, // offset[0]
		0, 0, 0, 21, // offset[1]
	}
	instrs, err := decodeInstructions(code, 0)
	if err != nil {
		t.Fatalf("decodeInstructions() error = %v", err)
	}
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	if len(instrs[0].Operands) != len(code)-1 {
		t.Errorf("operand length = %d, want %d", len(instrs[0].Operands), len(code)-1)
	}
}

func TestDecodeInstructionsTableswitchHighLessThanLowRejected(t *testing.T) {
	code := []byte{
		byte(OpTableswitch),
		0, 0, 0,
		0, 0, 0, 0, // default
		0, 0, 0, 5, // low = 5
		0, 0, 0, 1, // high = 1 (< low)
	}
	_, err := decodeInstructions(code, 0)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != ErrMalformedCode {
		t.Fatalf("decodeInstructions() error = %v, want ErrMalformedCode", err)
	}
}

func TestPaddingFor(t *testing.T) {
	tests := []struct {
		pc   uint32
		want uint32
	}{
		{0, 0},
		{1, 3},
		{2, 2},
		{3, 1},
		{4, 0},
	}
	for _, tt := range tests {
		if got := paddingFor(tt.pc); got != tt.want {
			t.Errorf("paddingFor(%d) = %d, want %d", tt.pc, got, tt.want)
		}
	}
}
