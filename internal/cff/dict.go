/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cff

import (
	"encoding/binary"
	"fmt"
)

// Top DICT / Private DICT operator codes this package cares about. A
// single-byte operator is its own key; an escape operator (the two-byte
// sequence 12 <n>) is encoded here as 0xc00|n so it can share the same
// map without colliding with the single-byte range (0-21).
const (
	opCharset     = 15
	opCharStrings = 17
	opROS         = 0xc00 | 30
)

// parseDict parses a CFF DICT (Top DICT or Private DICT) data block into a
// map from operator code to its operand list, per the number and operator
// encoding described in Adobe Technical Note 5176 section 4.
func parseDict(data []byte) (map[int][]float64, error) {
	out := make(map[int][]float64)
	var operands []float64
	i := 0
	for i < len(data) {
		b0 := data[i]
		switch {
		case b0 <= 21:
			op := int(b0)
			i++
			if b0 == 12 {
				if i >= len(data) {
					return nil, fmt.Errorf("%w: truncated escape operator", ErrMalformed)
				}
				op = 0xc00 | int(data[i])
				i++
			}
			out[op] = operands
			operands = nil

		case b0 == 28:
			if i+3 > len(data) {
				return nil, fmt.Errorf("%w: truncated int16 operand", ErrMalformed)
			}
			v := int16(binary.BigEndian.Uint16(data[i+1:]))
			operands = append(operands, float64(v))
			i += 3

		case b0 == 29:
			if i+5 > len(data) {
				return nil, fmt.Errorf("%w: truncated int32 operand", ErrMalformed)
			}
			v := int32(binary.BigEndian.Uint32(data[i+1:]))
			operands = append(operands, float64(v))
			i += 5

		case b0 == 30:
			v, n, err := parseReal(data[i+1:])
			if err != nil {
				return nil, err
			}
			operands = append(operands, v)
			i += 1 + n

		case b0 >= 32 && b0 <= 246:
			operands = append(operands, float64(int(b0)-139))
			i++

		case b0 >= 247 && b0 <= 250:
			if i+2 > len(data) {
				return nil, fmt.Errorf("%w: truncated two-byte operand", ErrMalformed)
			}
			b1 := data[i+1]
			operands = append(operands, float64((int(b0)-247)*256+int(b1)+108))
			i += 2

		case b0 >= 251 && b0 <= 254:
			if i+2 > len(data) {
				return nil, fmt.Errorf("%w: truncated two-byte operand", ErrMalformed)
			}
			b1 := data[i+1]
			operands = append(operands, float64(-(int(b0)-251)*256-int(b1)-108))
			i += 2

		default:
			// 31 and 255 are reserved; skip defensively rather than fault,
			// matching the general leniency a real font's DICT would need.
			i++
		}
	}
	return out, nil
}

// parseReal decodes a CFF "real number" operand (type 30): a stream of
// nibbles, each encoding a decimal digit or one of the symbols in
// nibbleSymbols, terminated by the 0xf end-of-number nibble.
func parseReal(data []byte) (float64, int, error) {
	var sb []byte
	n := 0
	for {
		if n >= len(data) {
			return 0, n, fmt.Errorf("%w: unterminated real operand", ErrMalformed)
		}
		b := data[n]
		n++
		for _, nib := range [2]byte{b >> 4, b & 0xf} {
			if nib == 0xf {
				goto done
			}
			sb = append(sb, nibbleSymbols[nib]...)
		}
	}
done:
	var v float64
	_, err := fmt.Sscanf(string(sb), "%g", &v)
	if err != nil {
		return 0, n, nil // malformed real text: treat as 0, same leniency as the rest of this parser
	}
	return v, n, nil
}

var nibbleSymbols = [16]string{
	"0", "1", "2", "3", "4", "5", "6", "7",
	"8", "9", ".", "E", "E-", "", "-", "",
}
