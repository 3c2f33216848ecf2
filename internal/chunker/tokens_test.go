package chunker

import (
	"strings"
	"testing"
)

func TestEstimateTokens_Empty(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("Expected 0 tokens for empty text, got %d", got)
	}
}

func TestEstimateTokens_NonZeroForText(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog near the river."
	if got := EstimateTokens(text); got < 5 {
		t.Errorf("Expected at least 5 tokens for a full sentence, got %d", got)
	}
}

func TestEstimateTokens_GrowsWithLength(t *testing.T) {
	sentence := "Every document eventually turns into chunks of bounded size. "
	short := EstimateTokens(sentence)
	long := EstimateTokens(strings.Repeat(sentence, 20))

	if long <= short {
		t.Errorf("Expected 20x repeated text to estimate more tokens: short=%d long=%d", short, long)
	}
}

func TestEstimateTokens_CountsKorean(t *testing.T) {
	text := "한국어 텍스트 분할 테스트 문장입니다 그리고 조금 더 길게 씁니다"
	if got := EstimateTokens(text); got < 1 {
		t.Errorf("Expected a positive estimate for Korean text, got %d", got)
	}
}
