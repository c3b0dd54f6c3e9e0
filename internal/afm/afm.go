/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package afm parses Adobe Font Metrics (AFM) files: the plaintext metric
// format describing the glyph widths, bounding boxes and kerning pairs of
// the fourteen standard PDF fonts.
package afm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CharMetric is one parsed `C ... ; WX ... ; N ... ; B ... ; L ... ;` entry
// from a StartCharMetrics/EndCharMetrics block.
type CharMetric struct {
	Code       int     // Character code in the font's built-in encoding, or -1 if unencoded.
	Width      float64 // WX: horizontal advance width.
	Name       string  // N: Adobe glyph name.
	BBox       [4]float64
	HasBBox    bool
	Successor  string // L: ligature successor glyph name, if any.
	Ligature   string // L: resulting ligature glyph name, if any.
}

// KernPair is one parsed `KPX name1 name2 adjustment` entry from a
// StartKernData/StartKernPairs/EndKernPairs block.
type KernPair struct {
	First, Second string
	Adjustment    float64
}

// FontMetrics is the parsed contents of an AFM file: header fields plus the
// character metrics and kerning pairs needed to typeset text in the font.
type FontMetrics struct {
	FontName    string
	FullName    string
	FamilyName  string
	Weight      string
	ItalicAngle float64
	IsFixedPitch bool
	FontBBox    [4]float64
	CapHeight   float64
	XHeight     float64
	Ascender    float64
	Descender   float64
	StdHW       float64
	StdVW       float64

	CharMetrics []CharMetric
	ByName      map[string]CharMetric
	KernPairs   []KernPair
}

// Parse reads an AFM document from r and returns its parsed metrics.
//
// It walks the file a line at a time, classifying each line through lex,
// and only descends into the heavier per-field splitting done by
// parseCharMetricsLine/parseKernPairLine while inside the corresponding
// StartCharMetrics/StartKernData block, mirroring the section-scoped
// dispatch of this module's other block-structured lexers (e.g. the CMap
// lexer's begincidrange/endcidrange handling).
func Parse(r io.Reader) (*FontMetrics, error) {
	fm := &FontMetrics{ByName: make(map[string]CharMetric)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var inCharMetrics, inKernPairs bool
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		tok, rest := lex(line)

		switch tok {
		case "StartCharMetrics":
			inCharMetrics = true
			continue
		case "EndCharMetrics":
			inCharMetrics = false
			continue
		case "StartKernData", "StartKernPairs", "StartKernPairs0":
			inKernPairs = true
			continue
		case "EndKernPairs", "EndKernData":
			inKernPairs = false
			continue
		}

		if inCharMetrics {
			cm, err := parseCharMetricsLine(line)
			if err != nil {
				return nil, fmt.Errorf("afm: line %d: %w", lineNo, err)
			}
			fm.CharMetrics = append(fm.CharMetrics, cm)
			if cm.Name != "" {
				fm.ByName[cm.Name] = cm
			}
			continue
		}
		if inKernPairs {
			if tok != "KPX" {
				continue
			}
			kp, err := parseKernPairLine(rest)
			if err != nil {
				return nil, fmt.Errorf("afm: line %d: %w", lineNo, err)
			}
			fm.KernPairs = append(fm.KernPairs, kp)
			continue
		}

		applyHeaderField(fm, tok, rest)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return fm, nil
}

// lex splits a header/block line into its leading keyword token and the
// remainder of the line.
func lex(line string) (tok, rest string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

func applyHeaderField(fm *FontMetrics, tok, rest string) {
	switch tok {
	case "FontName":
		fm.FontName = rest
	case "FullName":
		fm.FullName = rest
	case "FamilyName":
		fm.FamilyName = rest
	case "Weight":
		fm.Weight = rest
	case "ItalicAngle":
		fm.ItalicAngle, _ = strconv.ParseFloat(rest, 64)
	case "IsFixedPitch":
		fm.IsFixedPitch = rest == "true"
	case "FontBBox":
		fields := strings.Fields(rest)
		for i := 0; i < 4 && i < len(fields); i++ {
			fm.FontBBox[i], _ = strconv.ParseFloat(fields[i], 64)
		}
	case "CapHeight":
		fm.CapHeight, _ = strconv.ParseFloat(rest, 64)
	case "XHeight":
		fm.XHeight, _ = strconv.ParseFloat(rest, 64)
	case "Ascender":
		fm.Ascender, _ = strconv.ParseFloat(rest, 64)
	case "Descender":
		fm.Descender, _ = strconv.ParseFloat(rest, 64)
	case "StdHW":
		fm.StdHW, _ = strconv.ParseFloat(firstField(rest), 64)
	case "StdVW":
		fm.StdVW, _ = strconv.ParseFloat(firstField(rest), 64)
	}
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// parseCharMetricsLine parses one semicolon-delimited char-metrics line,
// e.g. `C 32 ; WX 278 ; N space ;`.
func parseCharMetricsLine(line string) (CharMetric, error) {
	cm := CharMetric{Code: -1}
	for _, field := range strings.Split(line, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		parts := strings.Fields(field)
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "C":
			if len(parts) < 2 {
				return cm, fmt.Errorf("malformed C field: %q", field)
			}
			v, err := strconv.Atoi(parts[1])
			if err != nil {
				return cm, fmt.Errorf("malformed C field: %q", field)
			}
			cm.Code = v
		case "WX":
			if len(parts) < 2 {
				return cm, fmt.Errorf("malformed WX field: %q", field)
			}
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return cm, fmt.Errorf("malformed WX field: %q", field)
			}
			cm.Width = v
		case "N":
			if len(parts) < 2 {
				return cm, fmt.Errorf("malformed N field: %q", field)
			}
			cm.Name = parts[1]
		case "B":
			if len(parts) < 5 {
				return cm, fmt.Errorf("malformed B field: %q", field)
			}
			for i := 0; i < 4; i++ {
				v, err := strconv.ParseFloat(parts[1+i], 64)
				if err != nil {
					return cm, fmt.Errorf("malformed B field: %q", field)
				}
				cm.BBox[i] = v
			}
			cm.HasBBox = true
		case "L":
			if len(parts) < 3 {
				return cm, fmt.Errorf("malformed L field: %q", field)
			}
			cm.Successor = parts[1]
			cm.Ligature = parts[2]
		}
	}
	return cm, nil
}

// parseKernPairLine parses the remainder of a `KPX name1 name2 adjustment` line.
func parseKernPairLine(rest string) (KernPair, error) {
	parts := strings.Fields(rest)
	if len(parts) != 3 {
		return KernPair{}, fmt.Errorf("malformed KPX line: %q", rest)
	}
	adj, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return KernPair{}, fmt.Errorf("malformed KPX adjustment: %q", rest)
	}
	return KernPair{First: parts[0], Second: parts[1], Adjustment: adj}, nil
}
