/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

// Stream encoders supported by this package:
// - Raw (identity)
// - FlateDecode, with PNG (10-15) and TIFF (2) predictors
//
// Every other PDF filter name is recognized by NewEncoderFromStream only far
// enough to report ErrUnsupportedFilter; this package never attempts to
// decode LZW, DCT, RunLength, ASCIIHex, ASCII85, CCITTFax, JBIG2 or JPX data.

import (
	"bytes"
	"compress/zlib"
	"fmt"

	"github.com/glyphstream/pdfcore/common"
)

// Stream encoding filter names.
const (
	StreamEncodingFilterNameFlate = "FlateDecode"
	StreamEncodingFilterNameRaw   = "Raw"
)

// StreamEncoder represents the interface for all PDF stream encoders.
type StreamEncoder interface {
	GetFilterName() string
	MakeDecodeParams() PdfObject
	MakeStreamDict() *PdfObjectDictionary
	UpdateParams(params *PdfObjectDictionary)

	EncodeBytes(data []byte) ([]byte, error)
	DecodeBytes(encoded []byte) ([]byte, error)
	DecodeStream(streamObj *PdfObjectStream) ([]byte, error)
}

// FlateEncoder represents Flate encoding, optionally composed with a row predictor.
type FlateEncoder struct {
	Predictor        int
	BitsPerComponent int
	// For predictors.
	Columns int
	Colors  int
}

// NewFlateEncoder makes a new flate encoder with default parameters, predictor 1 (none) and bits per component 8.
func NewFlateEncoder() *FlateEncoder {
	encoder := &FlateEncoder{}

	encoder.Predictor = 1
	encoder.BitsPerComponent = 8
	encoder.Colors = 1
	encoder.Columns = 1

	return encoder
}

// SetPredictor sets the predictor function, given the number of columns per row.
func (enc *FlateEncoder) SetPredictor(columns int) {
	enc.Predictor = 11
	enc.Columns = columns
}

// GetFilterName returns the name of the encoding filter.
func (enc *FlateEncoder) GetFilterName() string {
	return StreamEncodingFilterNameFlate
}

// MakeDecodeParams makes a new instance of an encoding dictionary based on
// the current encoder settings.
func (enc *FlateEncoder) MakeDecodeParams() PdfObject {
	if enc.Predictor > 1 {
		decodeParams := MakeDict()
		decodeParams.Set("Predictor", MakeInteger(int64(enc.Predictor)))

		if enc.BitsPerComponent != 8 {
			decodeParams.Set("BitsPerComponent", MakeInteger(int64(enc.BitsPerComponent)))
		}
		if enc.Columns != 1 {
			decodeParams.Set("Columns", MakeInteger(int64(enc.Columns)))
		}
		if enc.Colors != 1 {
			decodeParams.Set("Colors", MakeInteger(int64(enc.Colors)))
		}
		return decodeParams
	}

	return nil
}

// MakeStreamDict makes a new instance of an encoding dictionary for a stream object.
func (enc *FlateEncoder) MakeStreamDict() *PdfObjectDictionary {
	dict := MakeDict()
	dict.Set("Filter", MakeName(enc.GetFilterName()))

	decodeParams := enc.MakeDecodeParams()
	if decodeParams != nil {
		dict.Set("DecodeParms", decodeParams)
	}

	return dict
}

// UpdateParams updates the parameter values of the encoder.
func (enc *FlateEncoder) UpdateParams(params *PdfObjectDictionary) {
	if predictor, err := GetNumberAsInt64(params.Get("Predictor")); err == nil {
		enc.Predictor = int(predictor)
	}
	if bpc, err := GetNumberAsInt64(params.Get("BitsPerComponent")); err == nil {
		enc.BitsPerComponent = int(bpc)
	}
	if columns, err := GetNumberAsInt64(params.Get("Width")); err == nil {
		enc.Columns = int(columns)
	}
	if colors, err := GetNumberAsInt64(params.Get("ColorComponents")); err == nil {
		enc.Colors = int(colors)
	}
}

// newFlateEncoderFromStream creates a new flate decoder from a stream object, getting all the encoding
// parameters from the DecodeParms stream object dictionary entry.
func newFlateEncoderFromStream(streamObj *PdfObjectStream, decodeParams *PdfObjectDictionary) (*FlateEncoder, error) {
	encoder := NewFlateEncoder()

	encDict := streamObj.PdfObjectDictionary
	if encDict == nil {
		return encoder, nil
	}

	if decodeParams == nil {
		obj := TraceToDirectObject(encDict.Get("DecodeParms"))
		switch t := obj.(type) {
		case *PdfObjectArray:
			arr := t
			if arr.Len() != 1 {
				common.Log.Debug("Error: DecodeParms array length != 1 (%d)", arr.Len())
				return nil, ErrRangeError
			}
			obj = TraceToDirectObject(arr.Get(0))
			if dp, isDict := obj.(*PdfObjectDictionary); isDict {
				decodeParams = dp
			}
		case *PdfObjectDictionary:
			decodeParams = t
		case *PdfObjectNull, nil:
			// No decode params set.
		default:
			common.Log.Debug("Error: DecodeParms not a dictionary (%T)", obj)
			return nil, fmt.Errorf("invalid DecodeParms")
		}
	}
	if decodeParams == nil {
		return encoder, nil
	}

	common.Log.Trace("decode params: %s", decodeParams.String())
	if obj := decodeParams.Get("Predictor"); obj == nil {
		common.Log.Debug("Error: Predictor missing from DecodeParms - Continue with default (1)")
	} else {
		predictor, ok := obj.(*PdfObjectInteger)
		if !ok {
			common.Log.Debug("Error: Predictor specified but not numeric (%T)", obj)
			return nil, fmt.Errorf("invalid Predictor")
		}
		encoder.Predictor = int(*predictor)
	}

	if obj := decodeParams.Get("BitsPerComponent"); obj != nil {
		bpc, ok := obj.(*PdfObjectInteger)
		if !ok {
			common.Log.Debug("ERROR: Invalid BitsPerComponent")
			return nil, fmt.Errorf("invalid BitsPerComponent")
		}
		encoder.BitsPerComponent = int(*bpc)
	}

	if encoder.Predictor > 1 {
		encoder.Columns = 1
		if obj := decodeParams.Get("Columns"); obj != nil {
			columns, ok := obj.(*PdfObjectInteger)
			if !ok {
				return nil, fmt.Errorf("predictor column invalid")
			}
			encoder.Columns = int(*columns)
		}

		encoder.Colors = 1
		if obj := decodeParams.Get("Colors"); obj != nil {
			colors, ok := obj.(*PdfObjectInteger)
			if !ok {
				return nil, fmt.Errorf("predictor colors not an integer")
			}
			encoder.Colors = int(*colors)
		}
	}

	return encoder, nil
}

// DecodeBytes decodes a slice of Flate encoded bytes and returns the result.
func (enc *FlateEncoder) DecodeBytes(encoded []byte) ([]byte, error) {
	common.Log.Trace("FlateDecode bytes")
	if len(encoded) == 0 {
		common.Log.Debug("ERROR: empty Flate encoded buffer. Returning empty byte slice.")
		return []byte{}, nil
	}

	bufReader := bytes.NewReader(encoded)
	r, err := zlib.NewReader(bufReader)
	if err != nil {
		common.Log.Debug("Decoding error %v", err)
		return nil, err
	}
	defer r.Close()

	var outBuf bytes.Buffer
	outBuf.ReadFrom(r)

	return outBuf.Bytes(), nil
}

// Prediction filters for PNG predictors.
const (
	pfNone  = 0 // No prediction (raw).
	pfSub   = 1 // Predicts same as left sample.
	pfUp    = 2 // Predicts same as sample above.
	pfAvg   = 3 // Predict based on left and above.
	pfPaeth = 4 // Paeth algorithm prediction.
)

// postDecodePredict applies the configured predictor to decoded `outData` to get the final output data.
func (enc *FlateEncoder) postDecodePredict(outData []byte) ([]byte, error) {
	if enc.Predictor <= 1 {
		return outData, nil
	}

	if enc.Predictor == 2 {
		// TIFF predictor: per-component horizontal differencing within a row.
		common.Log.Trace("Tiff encoding")

		rowLength := int(enc.Columns) * enc.Colors
		if rowLength < 1 {
			return []byte{}, nil
		}
		rows := len(outData) / rowLength
		if len(outData)%rowLength != 0 {
			common.Log.Debug("ERROR: TIFF encoding: Invalid row length...")
			return nil, fmt.Errorf("invalid row length (%d/%d)", len(outData), rowLength)
		}
		if rowLength%enc.Colors != 0 {
			return nil, fmt.Errorf("invalid row length (%d) for colors %d", rowLength, enc.Colors)
		}
		if rowLength > len(outData) {
			return nil, ErrRangeError
		}

		pOutBuffer := bytes.NewBuffer(nil)
		for i := 0; i < rows; i++ {
			rowData := outData[rowLength*i : rowLength*(i+1)]
			for j := enc.Colors; j < rowLength; j++ {
				rowData[j] += rowData[j-enc.Colors]
			}
			pOutBuffer.Write(rowData)
		}
		return pOutBuffer.Bytes(), nil
	}

	if enc.Predictor >= 10 && enc.Predictor <= 15 {
		common.Log.Trace("PNG Encoding")
		// Columns is the number of samples per row; each sample can carry multiple color
		// components, plus one leading byte per row for the predictor tag.
		rowLength := int(enc.Columns*enc.Colors + 1)
		rows := len(outData) / rowLength
		if len(outData)%rowLength != 0 {
			return nil, fmt.Errorf("invalid row length (%d/%d)", len(outData), rowLength)
		}
		if rowLength > len(outData) {
			return nil, ErrRangeError
		}

		pOutBuffer := bytes.NewBuffer(nil)
		prevRowData := make([]byte, rowLength)
		bytesPerPixel := enc.Colors // Assuming BPC = 8.

		for i := 0; i < rows; i++ {
			rowData := outData[rowLength*i : rowLength*(i+1)]

			switch fb := rowData[0]; fb {
			case pfNone:
			case pfSub:
				for j := 1 + bytesPerPixel; j < rowLength; j++ {
					rowData[j] += rowData[j-bytesPerPixel]
				}
			case pfUp:
				for j := 1; j < rowLength; j++ {
					rowData[j] += prevRowData[j]
				}
			case pfAvg:
				for j := 1; j < bytesPerPixel+1; j++ {
					rowData[j] += prevRowData[j] / 2
				}
				for j := bytesPerPixel + 1; j < rowLength; j++ {
					rowData[j] += byte((int(rowData[j-bytesPerPixel]) + int(prevRowData[j])) / 2)
				}
			case pfPaeth:
				for j := 1; j < rowLength; j++ {
					var a, b, c byte
					b = prevRowData[j]
					if j >= bytesPerPixel+1 {
						a = rowData[j-bytesPerPixel]
						c = prevRowData[j-bytesPerPixel]
					}
					rowData[j] += paeth(a, b, c)
				}
			default:
				common.Log.Debug("ERROR: Invalid filter byte (%d) @row %d", fb, i)
				return nil, fmt.Errorf("invalid filter byte (%d)", fb)
			}

			copy(prevRowData, rowData)
			pOutBuffer.Write(rowData[1:])
		}
		return pOutBuffer.Bytes(), nil
	}

	common.Log.Debug("ERROR: Unsupported predictor (%d)", enc.Predictor)
	return nil, ErrUnsupportedFilter
}

// DecodeStream decodes a FlateEncoded stream object and gives back decoded bytes.
func (enc *FlateEncoder) DecodeStream(streamObj *PdfObjectStream) ([]byte, error) {
	common.Log.Trace("FlateDecode stream")
	common.Log.Trace("Predictor: %d", enc.Predictor)
	if enc.BitsPerComponent != 8 {
		return nil, fmt.Errorf("invalid BitsPerComponent=%d (only 8 supported)", enc.BitsPerComponent)
	}

	outData, err := enc.DecodeBytes(streamObj.Stream)
	if err != nil {
		return nil, err
	}

	return enc.postDecodePredict(outData)
}

// EncodeBytes encodes a bytes array and returns the encoded value based on the encoder parameters.
func (enc *FlateEncoder) EncodeBytes(data []byte) ([]byte, error) {
	if enc.Predictor != 1 && enc.Predictor != 11 {
		common.Log.Debug("Encoding error: FlateEncoder Predictor = 1, 11 only supported")
		return nil, ErrUnsupportedEncodingParameters
	}

	if enc.Predictor == 11 {
		rowLength := int(enc.Columns)
		rows := len(data) / rowLength
		if len(data)%rowLength != 0 {
			return nil, fmt.Errorf("invalid row length")
		}

		pOutBuffer := bytes.NewBuffer(nil)
		tmpData := make([]byte, rowLength)

		for i := 0; i < rows; i++ {
			rowData := data[rowLength*i : rowLength*(i+1)]

			tmpData[0] = rowData[0]
			for j := 1; j < rowLength; j++ {
				tmpData[j] = byte(int(rowData[j]-rowData[j-1]) % 256)
			}

			pOutBuffer.WriteByte(1) // Sub method.
			pOutBuffer.Write(tmpData)
		}

		data = pOutBuffer.Bytes()
	}

	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	w.Write(data)
	w.Close()

	return b.Bytes(), nil
}

// RawEncoder implements Raw encoder/decoder (no encoding, pass through).
type RawEncoder struct{}

// NewRawEncoder returns a new instance of RawEncoder.
func NewRawEncoder() *RawEncoder {
	return &RawEncoder{}
}

// GetFilterName returns the name of the encoding filter.
func (enc *RawEncoder) GetFilterName() string {
	return StreamEncodingFilterNameRaw
}

// MakeDecodeParams makes a new instance of an encoding dictionary based on the current encoder settings.
func (enc *RawEncoder) MakeDecodeParams() PdfObject {
	return nil
}

// MakeStreamDict makes a new instance of an encoding dictionary for a stream object.
func (enc *RawEncoder) MakeStreamDict() *PdfObjectDictionary {
	return MakeDict()
}

// UpdateParams updates the parameter values of the encoder.
func (enc *RawEncoder) UpdateParams(params *PdfObjectDictionary) {}

// DecodeBytes returns the passed in slice of bytes.
// The purpose of the method is to satisfy the StreamEncoder interface.
func (enc *RawEncoder) DecodeBytes(encoded []byte) ([]byte, error) {
	return encoded, nil
}

// DecodeStream returns the passed in stream as a slice of bytes.
// The purpose of the method is to satisfy the StreamEncoder interface.
func (enc *RawEncoder) DecodeStream(streamObj *PdfObjectStream) ([]byte, error) {
	return streamObj.Stream, nil
}

// EncodeBytes returns the passed in slice of bytes.
// The purpose of the method is to satisfy the StreamEncoder interface.
func (enc *RawEncoder) EncodeBytes(data []byte) ([]byte, error) {
	return data, nil
}

// MultiEncoder supports serial encoding: several encoders composed and applied in order.
// Only Flate and Raw sub-encoders can occur in the chain; any other filter name encountered
// while building one from a stream's Filter array yields ErrUnsupportedFilter.
type MultiEncoder struct {
	// Encoders in the order that they are to be applied.
	encoders []StreamEncoder
}

// NewMultiEncoder returns a new instance of MultiEncoder.
func NewMultiEncoder() *MultiEncoder {
	encoder := MultiEncoder{}
	encoder.encoders = []StreamEncoder{}

	return &encoder
}

func newMultiEncoderFromStream(streamObj *PdfObjectStream) (*MultiEncoder, error) {
	mencoder := NewMultiEncoder()

	encDict := streamObj.PdfObjectDictionary
	if encDict == nil {
		// No encoding dictionary.
		return mencoder, nil
	}

	// Prepare the decode params array (one for each filter type).
	// Optional, not always present.
	var decodeParamsDict *PdfObjectDictionary
	var decodeParamsArray []PdfObject
	obj := encDict.Get("DecodeParms")
	if obj != nil {
		// If it is a dictionary, assume it applies to all.
		dict, isDict := obj.(*PdfObjectDictionary)
		if isDict {
			decodeParamsDict = dict
		}

		// If it is an array, assume there is one for each.
		arr, isArray := obj.(*PdfObjectArray)
		if isArray {
			for _, dictObj := range arr.Elements() {
				dictObj = TraceToDirectObject(dictObj)
				if dict, is := dictObj.(*PdfObjectDictionary); is {
					decodeParamsArray = append(decodeParamsArray, dict)
				} else {
					decodeParamsArray = append(decodeParamsArray, MakeDict())
				}
			}
		}
	}

	obj = encDict.Get("Filter")
	if obj == nil {
		return nil, fmt.Errorf("filter missing")
	}

	array, ok := obj.(*PdfObjectArray)
	if !ok {
		return nil, fmt.Errorf("multi filter can only be made from array")
	}

	for idx, obj := range array.Elements() {
		name, ok := obj.(*PdfObjectName)
		if !ok {
			return nil, fmt.Errorf("multi filter array element not a name")
		}

		var dp PdfObject

		// If decode params dict is set, use it. Otherwise take from array.
		if decodeParamsDict != nil {
			dp = decodeParamsDict
		} else {
			// Only get the dp if provided. Oftentimes there is no decode params dict
			// provided.
			if len(decodeParamsArray) > 0 {
				if idx >= len(decodeParamsArray) {
					return nil, fmt.Errorf("missing elements in decode params array")
				}
				dp = decodeParamsArray[idx]
			}
		}

		var dParams *PdfObjectDictionary
		if dict, is := dp.(*PdfObjectDictionary); is {
			dParams = dict
		}

		common.Log.Trace("Next name: %s, dp: %v, dParams: %v", *name, dp, dParams)
		switch *name {
		case StreamEncodingFilterNameFlate:
			encoder, err := newFlateEncoderFromStream(streamObj, dParams)
			if err != nil {
				return nil, err
			}
			mencoder.AddEncoder(encoder)
		case StreamEncodingFilterNameRaw:
			mencoder.AddEncoder(NewRawEncoder())
		default:
			common.Log.Debug("Unsupported filter in chain: %s", *name)
			return nil, ErrUnsupportedFilter
		}
	}

	return mencoder, nil
}

// GetFilterName returns the names of the underlying encoding filters,
// separated by spaces.
// Note: this is just a string, should not be used in a /Filter dictionary entry. Use
// GetFilterArray for that.
func (enc *MultiEncoder) GetFilterName() string {
	name := ""
	for idx, encoder := range enc.encoders {
		name += encoder.GetFilterName()
		if idx < len(enc.encoders)-1 {
			name += " "
		}
	}
	return name
}

// GetFilterArray returns the names of the underlying encoding filters in an array that
// can be used as a /Filter entry.
func (enc *MultiEncoder) GetFilterArray() *PdfObjectArray {
	names := make([]PdfObject, len(enc.encoders))
	for i, e := range enc.encoders {
		names[i] = MakeName(e.GetFilterName())
	}
	return MakeArray(names...)
}

// MakeDecodeParams makes a new instance of an encoding dictionary based on
// the current encoder settings.
func (enc *MultiEncoder) MakeDecodeParams() PdfObject {
	if len(enc.encoders) == 0 {
		return nil
	}

	if len(enc.encoders) == 1 {
		return enc.encoders[0].MakeDecodeParams()
	}

	array := MakeArray()
	for _, encoder := range enc.encoders {
		decodeParams := encoder.MakeDecodeParams()
		if decodeParams == nil {
			array.Append(MakeNull())
		} else {
			array.Append(decodeParams)
		}
	}

	return array
}

// AddEncoder adds the passed in encoder to the underlying encoder slice.
func (enc *MultiEncoder) AddEncoder(encoder StreamEncoder) {
	enc.encoders = append(enc.encoders, encoder)
}

// MakeStreamDict makes a new instance of an encoding dictionary for a stream object.
func (enc *MultiEncoder) MakeStreamDict() *PdfObjectDictionary {
	dict := MakeDict()
	dict.Set("Filter", enc.GetFilterArray())

	// Pass all values from children, except Filter and DecodeParms.
	for _, encoder := range enc.encoders {
		encDict := encoder.MakeStreamDict()
		for _, key := range encDict.Keys() {
			val := encDict.Get(key)
			if key != "Filter" && key != "DecodeParms" {
				dict.Set(key, val)
			}
		}
	}

	// Make the decode params array or dict.
	decodeParams := enc.MakeDecodeParams()
	if decodeParams != nil {
		dict.Set("DecodeParms", decodeParams)
	}

	return dict
}

// UpdateParams updates the parameter values of the encoder.
func (enc *MultiEncoder) UpdateParams(params *PdfObjectDictionary) {
	for _, encoder := range enc.encoders {
		encoder.UpdateParams(params)
	}
}

// DecodeBytes decodes a multi-encoded slice of bytes by passing it through the
// DecodeBytes method of the underlying encoders.
func (enc *MultiEncoder) DecodeBytes(encoded []byte) ([]byte, error) {
	decoded := encoded
	var err error
	// Apply in forward order.
	for _, encoder := range enc.encoders {
		common.Log.Trace("Multi Encoder Decode: Applying Filter: %v %T", encoder, encoder)

		decoded, err = encoder.DecodeBytes(decoded)
		if err != nil {
			return nil, err
		}
	}

	return decoded, nil
}

// DecodeStream decodes a multi-encoded stream by passing it through the
// DecodeBytes method of the underlying encoders.
func (enc *MultiEncoder) DecodeStream(streamObj *PdfObjectStream) ([]byte, error) {
	return enc.DecodeBytes(streamObj.Stream)
}

// EncodeBytes encodes the passed in slice of bytes by passing it through the
// EncodeBytes method of the underlying encoders.
func (enc *MultiEncoder) EncodeBytes(data []byte) ([]byte, error) {
	encoded := data
	var err error

	// Apply in inverse order.
	for i := len(enc.encoders) - 1; i >= 0; i-- {
		encoder := enc.encoders[i]
		encoded, err = encoder.EncodeBytes(encoded)
		if err != nil {
			return nil, err
		}
	}

	return encoded, nil
}
