// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

// Instruction is a single decoded bytecode instruction: an opcode plus its
// operand bytes, recorded verbatim. Operand indices are not resolved
// against the constant pool here — that is left to consumers, per §4.5.
type Instruction struct {
	// Offset is the byte offset of the opcode within the enclosing Code
	// attribute's instruction stream (i.e. relative to code_start, which
	// is also the JVM's notion of a bytecode "pc").
	Offset   uint32
	Opcode   Opcode
	Operands []byte
}

// decodeInstructions walks the bounded window [0, codeLength) of a code
// region and returns the ordered instruction sequence, per §4.5. codeStart
// is the absolute offset of the window's first byte, used only to report
// error offsets. Alignment padding for tableswitch/lookupswitch is computed
// from the window-relative pc (JVM §6.5 requires alignment relative to the
// start of the method's bytecode, i.e. the start of the window).
func decodeInstructions(window []byte, codeStart uint32) ([]Instruction, error) {
	r := newReader(window)
	var out []Instruction

	for r.remaining() > 0 {
		pc := r.pos()
		opOffset := int64(codeStart) + int64(pc)
		opByte, err := r.u8()
		if err != nil {
			return nil, err
		}
		op, err := opcodeOf(opByte, opOffset)
		if err != nil {
			return nil, err
		}

		var operands []byte
		switch {
		case op == OpWide:
			operands, err = decodeWideOperands(r, opOffset)
		case op == OpTableswitch:
			operands, err = decodeTableswitchOperands(r, pc+1)
		case op == OpLookupswitch:
			operands, err = decodeLookupswitchOperands(r, pc+1)
		default:
			width, ok := fixedOperandWidth(op)
			if !ok {
				width = 0
			}
			if width > 0 {
				operands, err = r.slice(uint32(width))
			}
			if err == nil {
				err = checkReservedOperandBytes(op, operands, opOffset)
			}
		}
		if err != nil {
			return nil, err
		}

		out = append(out, Instruction{Offset: pc, Opcode: op, Operands: operands})
	}

	if r.pos() != r.len() {
		return nil, newParseError(ErrMalformedCode, int64(codeStart)+int64(r.pos()), nil)
	}
	return out, nil
}

// checkReservedOperandBytes enforces the reserved-must-be-zero bytes
// called out in spec.md §4.5 for invokeinterface and invokedynamic.
func checkReservedOperandBytes(op Opcode, operands []byte, opOffset int64) error {
	switch op {
	case OpInvokeinterface:
		// indexbyte1, indexbyte2, count, reserved(must be 0)
		if operands[3] != 0 {
			return newParseError(ErrMalformedCode, opOffset, "invokeinterface reserved byte must be zero")
		}
	case OpInvokedynamic:
		// indexbyte1, indexbyte2, reserved, reserved (both must be 0)
		if operands[2] != 0 || operands[3] != 0 {
			return newParseError(ErrMalformedCode, opOffset, "invokedynamic reserved bytes must be zero")
		}
	}
	return nil
}

// decodeWideOperands decodes the modal `wide` instruction. wide widens the
// index operand of the following instruction to a u16; for iinc it also
// widens the increment operand to an i16. The returned operand slice is
// [modifiedOpcode, indexHi, indexLo, (constHi, constLo)?].
func decodeWideOperands(r *reader, opOffset int64) ([]byte, error) {
	modifiedOpByte, err := r.u8()
	if err != nil {
		return nil, err
	}
	modifiedOp, err := opcodeOf(modifiedOpByte, opOffset+1)
	if err != nil {
		return nil, err
	}

	var width uint32 = 2
	if modifiedOp == OpIinc {
		width = 4
	}
	rest, err := r.slice(width)
	if err != nil {
		return nil, err
	}

	operands := make([]byte, 0, 1+len(rest))
	operands = append(operands, modifiedOpByte)
	operands = append(operands, rest...)
	return operands, nil
}

// decodeTableswitchOperands decodes tableswitch: 0-3 padding bytes to align
// to a 4-byte boundary relative to the start of the code array, then
// default (i32), low (i32), high (i32), then (high-low+1) jump offsets
// (i32 each).
func decodeTableswitchOperands(r *reader, afterOpcodePC uint32) ([]byte, error) {
	start := r.pos()
	pad := paddingFor(afterOpcodePC)
	if _, err := r.slice(pad); err != nil {
		return nil, err
	}

	header, err := r.slice(12) // default, low, high
	if err != nil {
		return nil, err
	}
	low := int32(beUint32(header[4:8]))
	high := int32(beUint32(header[8:12]))
	if high < low {
		return nil, newParseError(ErrMalformedCode, int64(r.pos()), "tableswitch high < low")
	}
	count := uint32(high-low) + 1
	offsets, err := r.slice(count * 4)
	if err != nil {
		return nil, err
	}

	total := r.pos() - start
	out := make([]byte, 0, total)
	padBytes, _ := sliceBack(r, start, pad)
	out = append(out, padBytes...)
	out = append(out, header...)
	out = append(out, offsets...)
	return out, nil
}

// decodeLookupswitchOperands decodes lookupswitch: 0-3 padding bytes, then
// default (i32), npairs (i32), then npairs (match, offset) i32 pairs.
func decodeLookupswitchOperands(r *reader, afterOpcodePC uint32) ([]byte, error) {
	start := r.pos()
	pad := paddingFor(afterOpcodePC)
	if _, err := r.slice(pad); err != nil {
		return nil, err
	}

	header, err := r.slice(8) // default, npairs
	if err != nil {
		return nil, err
	}
	npairs := beUint32(header[4:8])
	pairs, err := r.slice(npairs * 8)
	if err != nil {
		return nil, err
	}

	total := r.pos() - start
	out := make([]byte, 0, total)
	padBytes, _ := sliceBack(r, start, pad)
	out = append(out, padBytes...)
	out = append(out, header...)
	out = append(out, pairs...)
	return out, nil
}

// paddingFor returns the number of padding bytes (0-3) needed so that the
// next byte after pc lands on a multiple of 4, per JVM §6.5 tableswitch.
func paddingFor(pc uint32) uint32 {
	return (4 - pc%4) % 4
}

// sliceBack re-slices bytes already consumed by the reader, from
// [start, start+n) of its backing buffer, without advancing the cursor.
func sliceBack(r *reader, start, n uint32) ([]byte, error) {
	if start+n > r.len() {
		return nil, newParseError(ErrTruncated, int64(start), nil)
	}
	return r.buf[start : start+n], nil
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
