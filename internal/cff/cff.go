/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package cff parses a Compact Font Format (CFF) table: the binary font
// program container embedded in Type0 descendant fonts (FontDescriptor's
// FontFile3, subtype CIDFontType0C or Type1C). It parses just enough of
// the format to recover, per glyph index, either the glyph's PostScript
// name (name-keyed CFF) or its CID (CID-keyed CFF, identified by a Top
// DICT ROS operator), which is the minimum needed to map a descendant
// font's glyph inventory back to Unicode when no ToUnicode CMap is
// present.
package cff

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformed indicates the input is not a well-formed CFF table, or ends
// before a length the header/index structure promised.
var ErrMalformed = errors.New("malformed CFF table")

// Font is the result of parsing a CFF table.
type Font struct {
	Name string // Name INDEX's first entry - the font's PostScript name.

	IsCID bool // true if the Top DICT carries a ROS operator (CID-keyed CFF).

	// charsetSIDs[gid] is the SID (name-keyed) or CID (CID-keyed) assigned
	// to glyph index gid; charsetSIDs[0] is always 0 (.notdef).
	charsetSIDs []uint16

	strings [][]byte // the String INDEX, indexed by (SID - nStdStrings).
}

// GlyphName returns the PostScript glyph name assigned to glyph index gid
// in a name-keyed CFF font. Returns false for CID-keyed fonts (use CID
// instead) or for gid out of range.
func (f *Font) GlyphName(gid int) (string, bool) {
	if f.IsCID || gid < 0 || gid >= len(f.charsetSIDs) {
		return "", false
	}
	return f.sidToString(f.charsetSIDs[gid]), true
}

// CID returns the CID assigned to glyph index gid in a CID-keyed CFF font.
// Returns false for name-keyed fonts or for gid out of range.
func (f *Font) CID(gid int) (uint16, bool) {
	if !f.IsCID || gid < 0 || gid >= len(f.charsetSIDs) {
		return 0, false
	}
	return f.charsetSIDs[gid], true
}

// GIDForCID returns the glyph index for CID `cid`, or false if the
// charset has no entry for it. Linear scan: the charset is normally a
// handful of contiguous ranges after unpacking, and this is called at
// most once per distinct CID during glyph resolution.
func (f *Font) GIDForCID(cid uint16) (int, bool) {
	if !f.IsCID {
		return 0, false
	}
	for gid, c := range f.charsetSIDs {
		if c == cid {
			return gid, true
		}
	}
	return 0, false
}

func (f *Font) sidToString(sid uint16) string {
	if int(sid) < len(standardStrings) {
		return standardStrings[sid]
	}
	idx := int(sid) - len(standardStrings)
	if idx < 0 || idx >= len(f.strings) {
		return ""
	}
	return string(f.strings[idx])
}

// Parse parses a CFF table from raw bytes and returns its Font record.
func Parse(data []byte) (*Font, error) {
	r := &reader{data: data}

	if err := r.checkLen(4); err != nil {
		return nil, err
	}
	hdrSize := data[2]
	if int(hdrSize) > len(data) {
		return nil, fmt.Errorf("%w: hdrSize past end of data", ErrMalformed)
	}
	r.pos = int(hdrSize)

	nameIdx, err := r.readIndex()
	if err != nil {
		return nil, fmt.Errorf("name index: %w", err)
	}
	topDictIdx, err := r.readIndex()
	if err != nil {
		return nil, fmt.Errorf("top dict index: %w", err)
	}
	stringIdx, err := r.readIndex()
	if err != nil {
		return nil, fmt.Errorf("string index: %w", err)
	}
	// Global Subr INDEX - not needed for charset/charstring-name resolution,
	// but must be consumed in case a future caller wants the raw bytes.
	if _, err := r.readIndex(); err != nil {
		return nil, fmt.Errorf("global subr index: %w", err)
	}

	if len(topDictIdx) == 0 {
		return nil, fmt.Errorf("%w: empty Top DICT INDEX", ErrMalformed)
	}
	topDict, err := parseDict(topDictIdx[0])
	if err != nil {
		return nil, fmt.Errorf("top dict: %w", err)
	}

	font := &Font{
		strings: stringIdx,
	}
	if len(nameIdx) > 0 {
		font.Name = string(nameIdx[0])
	}
	if _, ok := topDict[opROS]; ok {
		font.IsCID = true
	}

	nGlyphs := 0
	if csOff, ok := topDict[opCharStrings]; ok && len(csOff) == 1 {
		off := int(csOff[0])
		cr := &reader{data: data, pos: off}
		charStrings, err := cr.readIndex()
		if err != nil {
			return nil, fmt.Errorf("charstrings index: %w", err)
		}
		nGlyphs = len(charStrings)
	}

	font.charsetSIDs = make([]uint16, nGlyphs)
	if nGlyphs > 0 {
		if csetOff, ok := topDict[opCharset]; ok && len(csetOff) == 1 {
			off := int(csetOff[0])
			switch off {
			case 0, 1, 2:
				// Predefined charsets (ISOAdobe, Expert, ExpertSubset):
				// SID == GID for the identity ordering, which is the
				// common case for fonts not reaching for one of the two
				// Expert variants.
				for gid := range font.charsetSIDs {
					font.charsetSIDs[gid] = uint16(gid)
				}
			default:
				if err := font.parseCharset(data, off, nGlyphs); err != nil {
					return nil, err
				}
			}
		} else {
			for gid := range font.charsetSIDs {
				font.charsetSIDs[gid] = uint16(gid)
			}
		}
	}

	return font, nil
}

// parseCharset parses a format 0, 1 or 2 Charset table at byte offset off.
// Format 0 (required by spec) lists one SID/CID per glyph (after the
// implicit .notdef at gid 0); formats 1/2 run-length encode ranges and are
// handled too since the discriminating format byte costs nothing extra to
// support once the index-reading plumbing exists.
func (f *Font) parseCharset(data []byte, off, nGlyphs int) error {
	r := &reader{data: data, pos: off}
	format, err := r.readUint8()
	if err != nil {
		return fmt.Errorf("charset format: %w", err)
	}

	f.charsetSIDs[0] = 0 // .notdef
	gid := 1
	switch format {
	case 0:
		for gid < nGlyphs {
			sid, err := r.readUint16()
			if err != nil {
				return fmt.Errorf("charset fmt0: %w", err)
			}
			f.charsetSIDs[gid] = sid
			gid++
		}
	case 1:
		for gid < nGlyphs {
			first, err := r.readUint16()
			if err != nil {
				return fmt.Errorf("charset fmt1: %w", err)
			}
			nLeft, err := r.readUint8()
			if err != nil {
				return fmt.Errorf("charset fmt1: %w", err)
			}
			for i := 0; i <= int(nLeft) && gid < nGlyphs; i++ {
				f.charsetSIDs[gid] = first + uint16(i)
				gid++
			}
		}
	case 2:
		for gid < nGlyphs {
			first, err := r.readUint16()
			if err != nil {
				return fmt.Errorf("charset fmt2: %w", err)
			}
			nLeft, err := r.readUint16()
			if err != nil {
				return fmt.Errorf("charset fmt2: %w", err)
			}
			for i := 0; i <= int(nLeft) && gid < nGlyphs; i++ {
				f.charsetSIDs[gid] = first + uint16(i)
				gid++
			}
		}
	default:
		return fmt.Errorf("%w: unsupported charset format %d", ErrMalformed, format)
	}
	return nil
}

// reader is a cursor over a CFF byte slice.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) checkLen(n int) error {
	if r.pos+n > len(r.data) || r.pos < 0 {
		return fmt.Errorf("%w: unexpected end of data", ErrMalformed)
	}
	return nil
}

func (r *reader) readUint8() (byte, error) {
	if err := r.checkLen(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readUint16() (uint16, error) {
	if err := r.checkLen(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) readUint32() (uint32, error) {
	if err := r.checkLen(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// readOffset reads an offset-sized (1-4 byte) big-endian unsigned value,
// per the CFF INDEX/offset-array "offSize" convention.
func (r *reader) readOffset(offSize byte) (uint32, error) {
	if err := r.checkLen(int(offSize)); err != nil {
		return 0, err
	}
	var v uint32
	for i := 0; i < int(offSize); i++ {
		v = v<<8 | uint32(r.data[r.pos])
		r.pos++
	}
	return v, nil
}

// readIndex reads a CFF INDEX structure (count, offSize, offset array,
// data) starting at the reader's current position, leaving the cursor
// just past the INDEX on return. An empty INDEX (count == 0) is exactly
// two bytes: the zero count, no offSize/offset-array/data.
func (r *reader) readIndex() ([][]byte, error) {
	count, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	offSize, err := r.readUint8()
	if err != nil {
		return nil, err
	}
	if offSize < 1 || offSize > 4 {
		return nil, fmt.Errorf("%w: invalid INDEX offSize %d", ErrMalformed, offSize)
	}

	offsets := make([]uint32, count+1)
	for i := range offsets {
		off, err := r.readOffset(offSize)
		if err != nil {
			return nil, err
		}
		offsets[i] = off
	}

	dataStart := r.pos - 1 // offsets are 1-based from the byte before the data block
	out := make([][]byte, count)
	for i := 0; i < int(count); i++ {
		lo := dataStart + int(offsets[i])
		hi := dataStart + int(offsets[i+1])
		if lo < 0 || hi < lo || hi > len(r.data) {
			return nil, fmt.Errorf("%w: INDEX entry out of range", ErrMalformed)
		}
		out[i] = r.data[lo:hi]
	}
	r.pos = dataStart + int(offsets[count])
	return out, nil
}
