/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import "errors"

// Common errors that may occur while resolving, parsing or decoding a PDF file.
//
// ErrUnsupportedFilter and ErrStatePop are returned by stream decoding and content
// stream processing respectively. ErrNotAPdf, ErrUnknownObject, ErrMalformedToken,
// ErrUnsupportedEncoding, ErrMissingGlyph and ErrCMapMiss are declared but not
// returned by any function in this module; those failures are reported with
// errors built by errors.New or fmt.Errorf, and a lookup of an object number
// absent from the cross reference table yields a null object.
var (
	// ErrNotAPdf indicates the input does not start with a recognizable PDF header.
	ErrNotAPdf = errors.New("not a PDF file")

	// ErrUnknownObject indicates an indirect reference pointing at an object number
	// absent from the cross reference table.
	ErrUnknownObject = errors.New("unknown object")

	// ErrMalformedToken indicates the lexer encountered a byte sequence that does not
	// form a valid PDF token at the current position.
	ErrMalformedToken = errors.New("malformed PDF token")

	// ErrUnsupportedFilter indicates a stream's Filter entry named a filter this
	// package does not implement (anything other than FlateDecode or Raw).
	ErrUnsupportedFilter = errors.New("unsupported stream filter")

	// ErrUnsupportedEncoding indicates a font's Encoding entry could not be resolved
	// to a supported base encoding or CMap.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrMissingGlyph indicates a character code had no corresponding glyph name,
	// width, or outline in the font currently in effect.
	ErrMissingGlyph = errors.New("missing glyph")

	// ErrCMapMiss indicates a character code fell outside every codespace range
	// declared by a CMap.
	ErrCMapMiss = errors.New("character code outside CMap codespace")

	// ErrStatePop indicates a 'Q' operator was encountered with no matching 'q' on
	// the graphics state stack.
	ErrStatePop = errors.New("graphics state stack underflow")

	// ErrUnsupportedEncodingParameters indicates encoding/decoding was attempted
	// with unsupported parameters, e.g. an unsupported Predictor.
	ErrUnsupportedEncodingParameters = errors.New("unsupported encoding parameters")

	// ErrTypeError indicates a PdfObject was not of the type required by the caller.
	ErrTypeError = errors.New("type check error")

	// ErrRangeError indicates a value (array length, numeric index, stream offset)
	// fell outside its expected bounds.
	ErrRangeError = errors.New("range check error")

	// ErrNotANumber indicates a PdfObject expected to be numeric was not.
	ErrNotANumber = errors.New("not a number")

	// ErrNotSupported indicates a feature of the PDF format that this package does
	// not implement.
	ErrNotSupported = errors.New("feature not currently supported")
)
