// Package chunker provides sentence splitting and greedy prose packing
// shared by the default and tabular strategies.
package chunker

import (
	"strings"
	"unicode"

	"github.com/ragforge/doc-chunker/internal/document"
)

// splitSentences splits text at terminal punctuation (. ! ?) followed by
// whitespace and an ASCII uppercase letter, or at the end of the text.
//
// This is a heuristic, not a full boundary algorithm: abbreviations such as
// "Dr." split early, and scripts without case distinction often do not split
// at all, leaving the whole text as one sentence. Whitespace at the split
// point is consumed; leading and trailing whitespace of each sentence is
// trimmed and empty results are dropped.
func splitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}

		// Scan the whitespace run after the punctuation.
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}

		atEnd := j == len(runes)
		uppercaseNext := j > i+1 && runes[j] >= 'A' && runes[j] <= 'Z'
		if atEnd || uppercaseNext {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = j
			i = j - 1
		}
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}

	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// overlapSentences selects the longest run of trailing sentences whose
// combined token estimate stays within the overlap budget. The walk is from
// the end; the first sentence that does not fit stops it. Order is
// preserved and the result is a copy.
func overlapSentences(sentences []string, overlapTokens int) []string {
	total := 0
	cut := len(sentences)

	for cut > 0 {
		t := EstimateTokens(sentences[cut-1])
		if total+t > overlapTokens {
			break
		}
		total += t
		cut--
	}

	if cut == len(sentences) {
		return nil
	}
	return append([]string(nil), sentences[cut:]...)
}

// packProse splits prose content into budgeted chunks. Content that fits the
// budget becomes a single chunk. Otherwise sentences are packed greedily;
// each flush seeds the next chunk with the overlap selection from the chunk
// just closed, and a sentence that alone exceeds the budget is split on word
// boundaries instead.
func packProse(content string, section document.Section, source string, cfg Config) []Chunk {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	if EstimateTokens(content) <= cfg.MaxTokens {
		return []Chunk{newChunk(content, section, source)}
	}

	var (
		chunks  []Chunk
		current []string
	)

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, newChunk(strings.Join(current, " "), section, source))
		}
	}

	for _, sentence := range splitSentences(content) {
		if EstimateTokens(sentence) > cfg.MaxTokens {
			flush()
			current = nil
			chunks = append(chunks, packWords(sentence, section, source, cfg)...)
			continue
		}

		if len(current) > 0 && EstimateTokens(strings.Join(current, " ")+" "+sentence) > cfg.MaxTokens {
			flush()

			// Seed the next chunk with overlap, shrunk from the front
			// until the seed plus the new sentence fits the budget.
			current = overlapSentences(current, cfg.OverlapTokens)
			for len(current) > 0 && EstimateTokens(strings.Join(current, " ")+" "+sentence) > cfg.MaxTokens {
				current = current[1:]
			}
		}
		current = append(current, sentence)
	}

	flush()
	return chunks
}

// packWords splits one oversized sentence on whitespace into budgeted
// chunks. The overlap between consecutive chunks is counted in words: half
// the overlap budget, capped at the words present.
func packWords(sentence string, section document.Section, source string, cfg Config) []Chunk {
	var (
		chunks  []Chunk
		current []string
	)

	for _, word := range strings.Fields(sentence) {
		if len(current) > 0 && EstimateTokens(strings.Join(current, " ")+" "+word) > cfg.MaxTokens {
			chunks = append(chunks, newChunk(strings.Join(current, " "), section, source))

			carry := cfg.OverlapTokens / 2
			if carry > len(current) {
				carry = len(current)
			}
			current = append([]string(nil), current[len(current)-carry:]...)
			for len(current) > 0 && EstimateTokens(strings.Join(current, " ")+" "+word) > cfg.MaxTokens {
				current = current[1:]
			}
		}
		current = append(current, word)
	}

	if len(current) > 0 {
		chunks = append(chunks, newChunk(strings.Join(current, " "), section, source))
	}

	return chunks
}
