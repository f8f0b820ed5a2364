// Package jsontext parses JSON documents into jsonextract values using the
// go-json-experiment token decoder, which preserves object member order.
package jsontext

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/jsonextract"
	"github.com/go-json-experiment/json/jsontext"
)

// Compile-time interface verification.
var _ jsonextract.Parser = (*Parser)(nil)

// Parser parses a single JSON document per call.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads exactly one JSON value from text. Duplicate member names are
// allowed: the last value wins and the member keeps its first position.
// Lone surrogate escapes decode to U+FFFD. Trailing non-whitespace is
// rejected.
func (p *Parser) Parse(text string) (jsonextract.Value, error) {
	dec := jsontext.NewDecoder(strings.NewReader(text),
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)

	v, err := readValue(dec)
	if err != nil {
		return jsonextract.Value{}, parseError(err)
	}

	offset := dec.InputOffset()
	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		return jsonextract.Value{}, jsonextract.Errorf(jsonextract.EPARSE, "unexpected data after JSON value at offset %d", offset)
	}

	return v, nil
}

func readValue(dec *jsontext.Decoder) (jsonextract.Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return jsonextract.Value{}, err
	}

	switch tok.Kind() {
	case 'n':
		return jsonextract.NullValue(), nil
	case 't', 'f':
		return jsonextract.BoolValue(tok.Bool()), nil
	case '"':
		return jsonextract.StringValue(tok.String()), nil
	case '0':
		// Out-of-range literals become infinite rather than clamped.
		f, err := strconv.ParseFloat(tok.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return jsonextract.Value{}, err
		}
		return jsonextract.NumberValue(f), nil
	case '[':
		var elems []jsonextract.Value
		for dec.PeekKind() != ']' {
			e, err := readValue(dec)
			if err != nil {
				return jsonextract.Value{}, err
			}
			elems = append(elems, e)
		}
		if _, err := dec.ReadToken(); err != nil {
			return jsonextract.Value{}, err
		}
		return jsonextract.ArrayValue(elems...), nil
	case '{':
		var members []jsonextract.Member
		index := make(map[string]int)
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return jsonextract.Value{}, err
			}
			key := name.String()
			v, err := readValue(dec)
			if err != nil {
				return jsonextract.Value{}, err
			}
			if i, ok := index[key]; ok {
				members[i].Value = v
				continue
			}
			index[key] = len(members)
			members = append(members, jsonextract.Member{Key: key, Value: v})
		}
		if _, err := dec.ReadToken(); err != nil {
			return jsonextract.Value{}, err
		}
		return jsonextract.ObjectValue(members...), nil
	}

	return jsonextract.Value{}, fmt.Errorf("unexpected token %v", tok.Kind())
}

func parseError(err error) *jsonextract.Error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return jsonextract.Errorf(jsonextract.EPARSE, "unexpected end of JSON input")
	}
	return jsonextract.Errorf(jsonextract.EPARSE, "%s", strings.TrimPrefix(err.Error(), "jsontext: "))
}
