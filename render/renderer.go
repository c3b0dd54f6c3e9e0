/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package render drives a page's content stream through the graphics/text
// state machine and surfaces every state mutation as an event on a user
// supplied Callback, instead of rasterizing or accumulating marks itself.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/glyphstream/pdfcore/common"
	"github.com/glyphstream/pdfcore/contentstream"
	"github.com/glyphstream/pdfcore/core"
	"github.com/glyphstream/pdfcore/internal/transform"
	"github.com/glyphstream/pdfcore/model"
)

// glyphTextRatio converts glyph-space metrics (1000 units/em) to unscaled
// text-space units.
const glyphTextRatio = 1.0 / 1000.0

// Event identifies a lifecycle or drawing notification delivered to a
// Callback while a page's content stream is interpreted.
type Event string

// Event values. Delivery order is described on RenderPage and RenderDocument.
const (
	EventPagesStart    Event = "render pages start"
	EventPagesEnd      Event = "render pages end"
	EventPageStart     Event = "page start"
	EventPageEnd       Event = "page end"
	EventPageException Event = "page exception"
	EventChangeFont    Event = "change font"
	EventGlyphDraw     Event = "glyph draw"
	EventSpaceDraw     Event = "space draw"
)

// RenderMode is the text rendering mode (Tr), selecting whether glyph
// outlines are notionally filled, stroked, clipped, or some combination;
// this core tracks it for state completeness without rasterizing.
type RenderMode int

// Text rendering modes (9.3.6, Table 106).
const (
	RenderModeFill RenderMode = iota
	RenderModeStroke
	RenderModeFillStroke
	RenderModeInvisible
	RenderModeFillClip
	RenderModeStrokeClip
	RenderModeFillStrokeClip
	RenderModeClip
)

// TextState is the nested text portion of a graphics state (9.3, Table 104).
type TextState struct {
	Tc    float64 // Character spacing.
	Tw    float64 // Word spacing.
	Th    float64 // Horizontal scaling, percent; 100 is unscaled.
	Tl    float64 // Leading.
	Tfs   float64 // Font size.
	Tmode RenderMode
	Trise float64
	Tf    *model.PdfFont
	Tm    transform.Matrix // Text matrix.
	Tlm   transform.Matrix // Text line matrix.
}

// State is the read-only snapshot of the interpreter handed to a Callback at
// the moment of each event. It is only valid for the duration of the call
// that receives it; callbacks that need to retain state should copy fields
// out of it.
type State struct {
	Graphics contentstream.GraphicsState
	Text     TextState
}

// Callback receives lifecycle and drawing events as a page is interpreted.
// Its return value is consulted only for EventPageException: true re-raises
// the error that triggered the exception instead of skipping to the next
// page (when driven via RenderDocument) or returning nil (via RenderPage).
//
// Event argument shapes:
//   EventPagesStart, EventPagesEnd: no args.
//   EventPageStart, EventPageEnd:   no args.
//   EventPageException:             args[0] is the error.
//   EventChangeFont:                args[0] is the *model.PdfFont now in effect.
//   EventGlyphDraw:                 args[0], args[1] are x, y float64; args[2] is the glyph rune.
//   EventSpaceDraw:                 args[0] is the raw TJ numeric adjustment, float64.
type Callback func(state *State, event Event, page *model.PdfPage, args ...interface{}) bool

// RenderPage interprets a single page's content streams, delivering
// EventPageStart, drawing events, and EventPageEnd (or EventPageException on
// failure) to callback. It does not emit EventPagesStart/EventPagesEnd; use
// RenderDocument for the multi-page lifecycle.
func RenderPage(page *model.PdfPage, callback Callback) error {
	run := &interpreter{callback: callback, fontCache: map[string]*model.PdfFont{}}
	err := run.renderOnePage(page)
	if err != nil && !callback(&run.state, EventPageException, page, err) {
		return nil
	}
	return err
}

// RenderDocument iterates every page of reader in document order, feeding
// each through the same state machine as RenderPage. A page whose content
// stream fails to interpret is reported via EventPageException; the run
// continues with the next page unless the callback returns true, in which
// case the error is returned immediately.
func RenderDocument(reader *model.PdfReader, callback Callback) error {
	run := &interpreter{callback: callback, fontCache: map[string]*model.PdfFont{}}

	callback(nil, EventPagesStart, nil)
	n, err := reader.GetNumPages()
	if err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return err
		}
		if err := run.renderOnePage(page); err != nil {
			if callback(&run.state, EventPageException, page, err) {
				return err
			}
		}
	}
	callback(nil, EventPagesEnd, nil)
	return nil
}

// interpreter holds the per-document state shared across the pages it
// renders: the font lookup cache and the current graphics/text state.
type interpreter struct {
	callback  Callback
	fontCache map[string]*model.PdfFont
	state     State
}

func (in *interpreter) renderOnePage(page *model.PdfPage) (err error) {
	in.state = State{
		Text: TextState{Th: 100, Tm: transform.IdentityMatrix(), Tlm: transform.IdentityMatrix()},
	}

	in.callback(&in.state, EventPageStart, page)
	defer func() {
		if err == nil {
			in.callback(&in.state, EventPageEnd, page)
		}
	}()

	contents, err := page.GetAllContentStreams()
	if err != nil {
		return err
	}
	resources := page.Resources
	if resources == nil {
		resources = model.NewPdfPageResources()
	}
	return in.renderContentStream(page, contents, resources)
}

func (in *interpreter) renderContentStream(page *model.PdfPage, contents string,
	resources *model.PdfPageResources) error {
	operations, err := contentstream.NewContentStreamParser(contents).Parse()
	if err != nil {
		return err
	}

	processor := contentstream.NewContentStreamProcessor(*operations)
	processor.AddHandler(contentstream.HandlerConditionEnumAllOperands, "",
		func(op *contentstream.ContentStreamOperation, gs contentstream.GraphicsState,
			res *model.PdfPageResources) error {
			in.state.Graphics = gs

			switch op.Operand {
			case "BT":
				in.state.Text.Tm = transform.IdentityMatrix()
				in.state.Text.Tlm = transform.IdentityMatrix()
			case "ET":
			case "Tc":
				v, err := floatParam(op)
				if err != nil {
					return err
				}
				in.state.Text.Tc = v
			case "Tw":
				v, err := floatParam(op)
				if err != nil {
					return err
				}
				in.state.Text.Tw = v
			case "Tz":
				v, err := floatParam(op)
				if err != nil {
					return err
				}
				in.state.Text.Th = v
			case "TL":
				v, err := floatParam(op)
				if err != nil {
					return err
				}
				in.state.Text.Tl = v
			case "Ts":
				v, err := floatParam(op)
				if err != nil {
					return err
				}
				in.state.Text.Trise = v
			case "Tr":
				val, ok := core.GetIntVal(op.Params[0])
				if !ok {
					return core.ErrTypeError
				}
				in.state.Text.Tmode = RenderMode(val)
			case "Tf":
				return in.procTf(op, page, res)
			case "Td":
				xy, err := xyParam(op)
				if err != nil {
					return err
				}
				in.moveLine(xy[0], xy[1])
			case "TD":
				xy, err := xyParam(op)
				if err != nil {
					return err
				}
				in.state.Text.Tl = -xy[1]
				in.moveLine(xy[0], xy[1])
			case "T*":
				in.moveLine(0, -in.state.Text.Tl)
			case "Tm":
				fv, err := core.GetNumbersAsFloat(op.Params)
				if err != nil {
					return err
				}
				if len(fv) != 6 {
					return core.ErrRangeError
				}
				m := transform.NewMatrix(fv[0], fv[1], fv[2], fv[3], fv[4], fv[5])
				in.state.Text.Tm = m
				in.state.Text.Tlm = m
			case "Tj":
				charcodes, ok := core.GetStringBytes(op.Params[0])
				if !ok {
					return core.ErrTypeError
				}
				return in.showText(page, charcodes)
			case "'":
				charcodes, ok := core.GetStringBytes(op.Params[0])
				if !ok {
					return core.ErrTypeError
				}
				in.moveLine(0, -in.state.Text.Tl)
				return in.showText(page, charcodes)
			case `"`:
				if len(op.Params) != 3 {
					return core.ErrRangeError
				}
				aw, err := core.GetNumberAsFloat(op.Params[0])
				if err != nil {
					return err
				}
				ac, err := core.GetNumberAsFloat(op.Params[1])
				if err != nil {
					return err
				}
				charcodes, ok := core.GetStringBytes(op.Params[2])
				if !ok {
					return core.ErrTypeError
				}
				in.state.Text.Tw = aw
				in.state.Text.Tc = ac
				in.moveLine(0, -in.state.Text.Tl)
				return in.showText(page, charcodes)
			case "TJ":
				array, ok := core.GetArray(op.Params[0])
				if !ok {
					return core.ErrTypeError
				}
				for _, elem := range array.Elements() {
					switch e := elem.(type) {
					case *core.PdfObjectString:
						if err := in.showText(page, e.Bytes()); err != nil {
							return err
						}
					case *core.PdfObjectFloat, *core.PdfObjectInteger:
						v, err := core.GetNumberAsFloat(e)
						if err != nil {
							return err
						}
						dx := -v * glyphTextRatio * in.state.Text.Tfs * (in.state.Text.Th / 100.0)
						in.state.Text.Tm.Concat(transform.TranslationMatrix(dx, 0))
						in.callback(&in.state, EventSpaceDraw, page, v)
					}
				}
			}
			return nil
		})

	return processor.Process(resources)
}

func (in *interpreter) moveLine(tx, ty float64) {
	in.state.Text.Tlm.Concat(transform.TranslationMatrix(tx, ty))
	in.state.Text.Tm = in.state.Text.Tlm
}

func (in *interpreter) procTf(op *contentstream.ContentStreamOperation, page *model.PdfPage,
	resources *model.PdfPageResources) error {
	if len(op.Params) != 2 {
		return core.ErrRangeError
	}
	name, ok := core.GetNameVal(op.Params[0])
	if !ok {
		return core.ErrTypeError
	}
	size, err := core.GetNumberAsFloat(op.Params[1])
	if err != nil {
		return err
	}

	font, ok := in.fontCache[name]
	if !ok {
		fObj, has := resources.GetFontByName(core.PdfObjectName(name))
		if !has {
			return fmt.Errorf("font not found: %s", name)
		}
		fontDict, ok := core.GetDict(fObj)
		if !ok {
			return core.ErrTypeError
		}
		font, err = model.NewPdfFontFromPdfObject(fontDict)
		if err != nil {
			return err
		}
		in.fontCache[name] = font
	}

	in.state.Text.Tf = font
	in.state.Text.Tfs = size
	in.callback(&in.state, EventChangeFont, page, font)
	return nil
}

// showText emits a glyph draw event for every character code in data that
// decodes to text, advancing the text matrix exactly as §9.4.3 of the
// content-stream specification describes. Space draw events come only from
// TJ numbers.
func (in *interpreter) showText(page *model.PdfPage, data []byte) error {
	font := in.state.Text.Tf
	if font == nil {
		return errors.New("no font selected for text showing operator")
	}

	charcodes := font.BytesToCharcodes(data)
	texts, _, _ := font.CharcodesToStrings(charcodes)

	ts := &in.state.Text
	th := ts.Th / 100.0

	for i, text := range texts {
		runes := []rune(text)
		code := charcodes[i]

		m, ok := font.GetCharMetrics(code)
		var width float64
		if ok {
			width = m.Wx * glyphTextRatio
		}

		wordSpace := 0.0
		if code == 32 {
			wordSpace = ts.Tw
		}

		trm := in.state.Graphics.CTM.Mult(ts.Tm).Mult(transform.NewMatrix(ts.Tfs*th, 0, 0, ts.Tfs, 0, ts.Trise))
		x, y := trm.Translation()

		if len(runes) > 0 {
			in.callback(&in.state, EventGlyphDraw, page, x, y, runes[0])
		}

		advance := (width*ts.Tfs + ts.Tc + wordSpace) * th
		ts.Tm.Concat(transform.TranslationMatrix(advance, 0))
	}
	return nil
}

func floatParam(op *contentstream.ContentStreamOperation) (float64, error) {
	if len(op.Params) != 1 {
		return 0, core.ErrRangeError
	}
	return core.GetNumberAsFloat(op.Params[0])
}

func xyParam(op *contentstream.ContentStreamOperation) ([]float64, error) {
	if len(op.Params) != 2 {
		return nil, core.ErrRangeError
	}
	return core.GetNumbersAsFloat(op.Params)
}

// TextExtractor is a default Callback collaborator that accumulates
// glyph/space events into words and lines, exactly as described for the text
// extraction heuristic: a space is inferred whenever an inter-glyph gap
// exceeds half the page's running average glyph advance.
type TextExtractor struct {
	lines      []string
	words      []string
	curWord    []rune
	lastX      float64
	lastY      float64
	haveLast   bool
	avgAdvance float64
	numAdvance int
}

// Callback returns a Callback bound to this extractor's accumulator state.
func (te *TextExtractor) Callback() Callback {
	return func(state *State, event Event, page *model.PdfPage, args ...interface{}) bool {
		switch event {
		case EventPageStart:
			te.words = nil
			te.curWord = nil
			te.haveLast = false
		case EventGlyphDraw:
			x := args[0].(float64)
			y := args[1].(float64)
			r := args[2].(rune)

			if te.haveLast {
				gap := math.Abs(x - te.lastX)
				threshold := te.avgAdvance / 2
				if te.numAdvance > 0 && gap > threshold && gap > 0 {
					te.flushWord()
				}
				advance := math.Abs(x - te.lastX)
				te.avgAdvance = (te.avgAdvance*float64(te.numAdvance) + advance) / float64(te.numAdvance+1)
				te.numAdvance++
			}
			te.curWord = append(te.curWord, r)
			te.lastX, te.lastY = x, y
			te.haveLast = true
		case EventSpaceDraw:
			te.flushWord()
		case EventPageEnd:
			te.flushWord()
			te.lines = append(te.lines, joinWords(te.words))
			common.Log.Trace("TextExtractor: page produced %d words", len(te.words))
		}
		return false
	}
}

func (te *TextExtractor) flushWord() {
	if len(te.curWord) == 0 {
		return
	}
	te.words = append(te.words, string(te.curWord))
	te.curWord = nil
}

// Text returns every accumulated line joined by "\n".
func (te *TextExtractor) Text() string {
	var out string
	for i, line := range te.lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}

func joinWords(words []string) string {
	var out string
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
