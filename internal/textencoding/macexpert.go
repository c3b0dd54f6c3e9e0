/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import "sync"

const baseMacExpert = "MacExpertEncoding"

func init() {
	RegisterSimpleEncoding(baseMacExpert, NewMacExpertEncoder)
}

var (
	macExpertOnce       sync.Once
	macExpertCharToRune map[byte]rune
	macExpertRuneToChar map[rune]byte
)

// macExpertEncodingNames maps codes 32-126 of MacExpertEncoding, the
// small-caps/old-style-figures encoding used by Expert-set fonts, to glyph
// names. Codes above 126 are not listed.
//
// Each name is resolved with GlyphToRune, so Expert-set glyphs such as
// oldstyle figures and small caps decode to the Private Use Area code points
// the glyph list assigns them; names GlyphToRune does not know are left
// unmapped, and lookups for those codes surface as a missing glyph.
var macExpertEncodingNames = map[byte]GlyphName{
	32: "space", 33: "exclamsmall", 36: "dollaroldstyle",
	37: "dollarsuperior", 38: "ampersandsmall", 39: "Acutesmall",
	40: "parenleftsuperior", 41: "parenrightsuperior", 42: "twodotenleader",
	43: "onedotenleader", 44: "comma", 45: "hyphen", 46: "period",
	47: "fraction",
	48: "zerooldstyle", 49: "oneoldstyle", 50: "twooldstyle",
	51: "threeoldstyle", 52: "fouroldstyle", 53: "fiveoldstyle",
	54: "sixoldstyle", 55: "sevenoldstyle", 56: "eightoldstyle",
	57: "nineoldstyle",
	58: "colon", 59: "semicolon", 61: "threequartersemdash",
	63: "questionsmall", 68: "Ethsmall", 71: "onequarter", 72: "onehalf",
	73: "threequarters", 74: "oneeighth", 75: "threeeighths",
	76: "fiveeighths", 77: "seveneighths", 78: "onethird", 79: "twothirds",
	86: "ff", 87: "fi", 88: "fl", 89: "ffi", 90: "ffl",
	91: "parenleftinferior", 93: "parenrightinferior",
	94: "Circumflexsmall", 95: "hypheninferior", 96: "Gravesmall",
	97: "Asmall", 98: "Bsmall", 99: "Csmall", 100: "Dsmall",
	101: "Esmall", 102: "Fsmall", 103: "Gsmall", 104: "Hsmall",
	105: "Ismall", 106: "Jsmall", 107: "Ksmall", 108: "Lsmall",
	109: "Msmall", 110: "Nsmall", 111: "Osmall", 112: "Psmall",
	113: "Qsmall", 114: "Rsmall", 115: "Ssmall", 116: "Tsmall",
	117: "Usmall", 118: "Vsmall", 119: "Wsmall", 120: "Xsmall",
	121: "Ysmall", 122: "Zsmall", 123: "colonmonetary",
	124: "onefitted", 125: "rupiah", 126: "Tildesmall",
}

// NewMacExpertEncoder returns a simpleEncoder that implements
// MacExpertEncoding.
func NewMacExpertEncoder() SimpleEncoder {
	macExpertOnce.Do(initMacExpert)
	return &simpleEncoding{
		baseName: baseMacExpert,
		encode:   macExpertRuneToChar,
		decode:   macExpertCharToRune,
	}
}

func initMacExpert() {
	macExpertCharToRune = make(map[byte]rune, 256)
	macExpertRuneToChar = make(map[rune]byte, 256)
	for code, name := range macExpertEncodingNames {
		r, ok := GlyphToRune(name)
		if !ok {
			continue
		}
		macExpertCharToRune[code] = r
		if _, has := macExpertRuneToChar[r]; !has {
			macExpertRuneToChar[r] = code
		}
	}
}
