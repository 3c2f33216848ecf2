// Package parser provides byte decoding with an encoding fallback chain.
package parser

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
)

// DefaultEncodings returns the default decode chain: utf-8, then the Korean
// codepages, then latin-1 as the catch-all.
func DefaultEncodings() []string {
	return []string{"utf-8", "cp949", "euc-kr", "latin-1"}
}

// decode converts raw bytes to a string by trying each configured encoding
// in order. An encoding is rejected when the bytes are not valid for it;
// latin-1 accepts any byte sequence and therefore terminates the chain.
// When every encoding is rejected the bytes are decoded as utf-8 with
// invalid sequences replaced.
func (p *Parser) decode(data []byte) string {
	for _, name := range p.encodings {
		switch strings.ToLower(name) {
		case "utf-8", "utf8":
			if utf8.Valid(data) {
				return string(data)
			}
		case "cp949", "euc-kr", "euckr":
			// Both names resolve to the same decoder: the euc-kr
			// tables in x/text already cover the cp949 extensions.
			if out, err := korean.EUCKR.NewDecoder().Bytes(data); err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
				return string(out)
			}
		case "latin-1", "iso-8859-1":
			if out, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
				return string(out)
			}
		}
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
