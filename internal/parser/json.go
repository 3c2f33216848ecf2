// Package parser provides JSON parsing that flattens string leaves into
// paragraph sections keyed by their path.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ragforge/doc-chunker/internal/document"
)

// parseJSON flattens a JSON document into sections, one per string leaf, in
// document order. Object values are addressed with dotted paths ("a.b"),
// array elements with bracketed indices ("a[0]"). Each section's content is
// "path: value"; for object values the heading is the full path, for array
// elements it is the array's own path. Numbers, booleans and nulls carry no
// prose and produce no sections; neither does a bare scalar document.
func parseJSON(text string) ([]document.Section, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	var sections []document.Section
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := walkJSON(dec, tok, "", &sections); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse json: trailing data after document")
	}

	return sections, nil
}

// walkJSON consumes the JSON value started by tok, appending a section for
// every string leaf it contains.
func walkJSON(dec *json.Decoder, tok json.Token, prefix string, sections *[]document.Section) error {
	delim, ok := tok.(json.Delim)
	if !ok {
		// A bare scalar document yields no sections.
		return nil
	}

	switch delim {
	case '{':
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)

			path := key
			if prefix != "" {
				path = prefix + "." + key
			}

			valTok, err := dec.Token()
			if err != nil {
				return err
			}
			if s, ok := valTok.(string); ok {
				*sections = append(*sections, document.Section{
					Content: path + ": " + s,
					Heading: path,
					Type:    document.SectionParagraph,
				})
				continue
			}
			if err := walkJSON(dec, valTok, path, sections); err != nil {
				return err
			}
		}
		_, err := dec.Token() // closing brace
		return err

	case '[':
		for i := 0; dec.More(); i++ {
			path := fmt.Sprintf("%s[%d]", prefix, i)

			valTok, err := dec.Token()
			if err != nil {
				return err
			}
			if s, ok := valTok.(string); ok {
				*sections = append(*sections, document.Section{
					Content: path + ": " + s,
					Heading: prefix,
					Type:    document.SectionParagraph,
				})
				continue
			}
			if err := walkJSON(dec, valTok, path, sections); err != nil {
				return err
			}
		}
		_, err := dec.Token() // closing bracket
		return err
	}

	return nil
}
