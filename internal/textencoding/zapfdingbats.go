/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import "sync"

const baseZapfDingbats = "ZapfDingbatsEncoding"

func init() {
	RegisterSimpleEncoding(baseZapfDingbats, NewZapfDingbatsEncoder)
}

var (
	zapfDingbatsOnce       sync.Once
	zapfDingbatsCharToRune map[byte]rune
	zapfDingbatsRuneToChar map[rune]byte
)

// NewZapfDingbatsEncoder returns a simpleEncoder for the built-in encoding
// of the ZapfDingbats standard-14 font.
//
// ZapfDingbats glyphs (named a1..a191 in the font's AFM, not by a
// descriptive Adobe glyph name) map onto the Unicode Dingbats block
// (U+2700-U+27BF plus a handful of codepoints elsewhere in the BMP) via a
// historically irregular, non-monotonic ordering baked into the original
// font's built-in encoding. Codes 33-126 map in code order onto
// U+2701-U+275E and codes 161-254 onto U+2761-U+27BE, except that the
// glyphs Unicode placed outside that block (stars, geometric shapes, card
// suits, circled digits, arrows) map to their own code points. The
// unassigned code 240 is left unmapped, surfacing as a missing glyph on
// lookup.
func NewZapfDingbatsEncoder() SimpleEncoder {
	zapfDingbatsOnce.Do(initZapfDingbats)
	return &simpleEncoding{
		baseName: baseZapfDingbats,
		encode:   zapfDingbatsRuneToChar,
		decode:   zapfDingbatsCharToRune,
	}
}

func initZapfDingbats() {
	zapfDingbatsCharToRune = make(map[byte]rune, 256)
	zapfDingbatsRuneToChar = make(map[rune]byte, 256)

	zapfDingbatsCharToRune[32] = ' '
	zapfDingbatsRuneToChar[' '] = 32

	r := rune(0x2701)
	for code := 33; code <= 126; code++ {
		b := byte(code)
		zapfDingbatsCharToRune[b] = r
		zapfDingbatsRuneToChar[r] = b
		r++
	}
	r = 0x2761
	for code := 161; code <= 254; code++ {
		b := byte(code)
		zapfDingbatsCharToRune[b] = r
		zapfDingbatsRuneToChar[r] = b
		r++
	}

	// Glyphs that Unicode placed outside the Dingbats block.
	outside := map[byte]rune{37: 0x260E, 42: 0x261B, 43: 0x261E, 72: 0x2605, 108: 0x25CF, 110: 0x25A0,
		115: 0x25B2, 116: 0x25BC, 117: 0x25C6, 119: 0x25D7, 168: 0x2663, 169: 0x2666, 170: 0x2665,
		171: 0x2660, 172: 0x2460, 173: 0x2461, 174: 0x2462, 175: 0x2463, 176: 0x2464, 177: 0x2465,
		178: 0x2466, 179: 0x2467, 180: 0x2468, 181: 0x2469, 213: 0x2192, 214: 0x2194, 215: 0x2195}
	for b, o := range outside {
		delete(zapfDingbatsRuneToChar, zapfDingbatsCharToRune[b])
		zapfDingbatsCharToRune[b] = o
		zapfDingbatsRuneToChar[o] = b
	}
	delete(zapfDingbatsRuneToChar, zapfDingbatsCharToRune[240])
	delete(zapfDingbatsCharToRune, 240)
}
