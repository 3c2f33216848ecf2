// Package chunker provides token estimation for budget decisions.
package chunker

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the BPE encoding used for token counts. cl100k_base is the
// encoding of the embedding models this pipeline targets.
const encodingName = "cl100k_base"

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

// EstimateTokens returns an approximate token count for text.
//
// When the cl100k_base encoding can be loaded it is used directly. Otherwise
// the count falls back to runes/4, a reasonable approximation for English
// that undercounts CJK text. The load is attempted once per process and the
// outcome is reused for every call, so all counts within one run come from
// the same estimator.
func EstimateTokens(text string) int {
	tokenizerOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(encodingName)
		if err == nil {
			tokenizer = enc
		}
	})

	if tokenizer != nil {
		return len(tokenizer.Encode(text, nil, nil))
	}
	return utf8.RuneCountInString(text) / 4
}
