/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"sync"

	"golang.org/x/text/encoding/charmap"
)

const baseMacRoman = "MacRomanEncoding"

func init() {
	RegisterSimpleEncoding(baseMacRoman, NewMacRomanEncoder)
}

var (
	macRomanOnce       sync.Once
	macRomanCharToRune map[byte]rune
	macRomanRuneToChar map[rune]byte
)

// NewMacRomanEncoder returns a simpleEncoder that implements MacRomanEncoding.
func NewMacRomanEncoder() SimpleEncoder {
	macRomanOnce.Do(initMacRoman)
	return &simpleEncoding{
		baseName: baseMacRoman,
		encode:   macRomanRuneToChar,
		decode:   macRomanCharToRune,
	}
}

func initMacRoman() {
	macRomanCharToRune = make(map[byte]rune, 256)
	macRomanRuneToChar = make(map[rune]byte, 256)

	enc := charmap.Macintosh
	for i := int(' '); i < 256; i++ {
		b := byte(i)
		r := enc.DecodeByte(b)
		macRomanCharToRune[b] = r
		macRomanRuneToChar[r] = b
	}
}
