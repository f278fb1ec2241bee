package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the byte-stable JSON form used for golden files.
//
// Differences from standard json.Marshal:
//  1. Keys appear in a fixed order (columns, name, rows) - the shape is
//     static, so no general key sorting is needed
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized at the serialization boundary
//  4. Money cells serialize at exactly two decimal places
//
// Two result sets with the same content always produce identical bytes.
func (rs *ResultSet) MarshalCanonical() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"columns":[`)

	for i, col := range rs.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		colBytes, err := canonicalString(col)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		buf.Write(colBytes)
	}

	buf.WriteString(`],"name":`)
	nameBytes, err := canonicalString(rs.Name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	buf.Write(nameBytes)

	buf.WriteString(`,"rows":[`)
	for i, row := range rs.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		for j, cell := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			cellBytes, err := canonicalValue(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", i, j, err)
			}
			buf.Write(cellBytes)
		}
		buf.WriteByte(']')
	}
	buf.WriteString(`]}`)

	return buf.Bytes(), nil
}

// canonicalValue serializes a single cell for canonical output.
func canonicalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Null:
		return []byte("null"), nil
	case Int:
		return val.MarshalJSON()
	case Money:
		return val.MarshalJSON()
	case Text:
		return canonicalString(string(val))
	default:
		return nil, fmt.Errorf("unknown cell type: %T", v)
	}
}

// canonicalString produces a JSON string with NFC normalization and
// without HTML escaping.
func canonicalString(s string) ([]byte, error) {
	// NFC normalize at the serialization boundary
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	return result, nil
}
