/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"sync"

	"golang.org/x/text/encoding/charmap"
)

const baseWinAnsi = "WinAnsiEncoding"

func init() {
	RegisterSimpleEncoding(baseWinAnsi, NewWinAnsiEncoder)
}

var (
	winAnsiOnce       sync.Once
	winAnsiCharToRune map[byte]rune
	winAnsiRuneToChar map[rune]byte
)

// NewWinAnsiEncoder returns a simpleEncoder that implements WinAnsiEncoding.
func NewWinAnsiEncoder() SimpleEncoder {
	winAnsiOnce.Do(initWinAnsi)
	return &simpleEncoding{
		baseName: baseWinAnsi,
		encode:   winAnsiRuneToChar,
		decode:   winAnsiCharToRune,
	}
}

func initWinAnsi() {
	winAnsiCharToRune = make(map[byte]rune, 256)
	winAnsiRuneToChar = make(map[rune]byte, 256)

	// WinAnsiEncoding is also known as CP1252.
	enc := charmap.Windows1252

	// In WinAnsiEncoding, unlike CP1252, unused and non-visual codes above
	// octal 40 are replaced with the bullet glyph (octal 225), except that the
	// no-break space (160) and soft hyphen (173) decode as a space and a hyphen.
	const bullet = '•'
	replace := map[byte]rune{
		127: bullet,

		129: bullet,
		141: bullet,
		143: bullet,
		144: bullet,
		157: bullet,

		160: ' ',
		173: '-',
	}

	for i := int(' '); i < 256; i++ {
		b := byte(i)
		r := enc.DecodeByte(b)

		winAnsiRuneToChar[r] = b

		if rp, ok := replace[b]; ok {
			r = rp
		}
		winAnsiCharToRune[b] = r
	}
}
