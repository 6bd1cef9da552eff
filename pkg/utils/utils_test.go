package utils

import (
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{"short text single chunk", "hello", 10, 2, 1},
		{"exact size single chunk", "abcdefghij", 10, 2, 1},
		{"splits with overlap", "abcdefghijklmnop", 10, 2, 2},
		{"overlap larger than chunk falls back", "abcdefghijklmnop", 5, 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if len(chunks) != tt.wantChunks {
				t.Errorf("SplitText returned %d chunks, want %d: %v", len(chunks), tt.wantChunks, chunks)
			}
		})
	}
}

func TestSplitTextHangulSafe(t *testing.T) {
	text := "정기예금은 목돈을 한 번에 맡기고 만기에 원금과 이자를 받는 상품입니다"
	for _, chunk := range SplitText(text, 10, 3) {
		for _, r := range chunk {
			if r == '�' {
				t.Fatalf("chunk %q contains a broken rune", chunk)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 10); got != "abcdef" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Errorf("Truncate long = %q, want abc...", got)
	}
}

func TestKoreanWon(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0원 (0)"},
		{1_500_000, "1,500,000원 (150만)"},
		{5_000_000, "5,000,000원 (500만)"},
		{100_000_000, "100,000,000원 (1억)"},
		{123, "123원 (123)"},
	}

	for _, tt := range tests {
		if got := KoreanWon(tt.amount); got != tt.want {
			t.Errorf("KoreanWon(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFirstSentences(t *testing.T) {
	text := "첫 문장입니다. 둘째 문장입니다. 셋째 문장입니다."
	if got := FirstSentences(text, 2); got != "첫 문장입니다. 둘째 문장입니다." {
		t.Errorf("FirstSentences = %q", got)
	}
	if got := FirstSentences("no terminator here", 2); got != "no terminator here" {
		t.Errorf("FirstSentences without enders = %q", got)
	}
	if got := FirstSentences(text, 0); got != "" {
		t.Errorf("FirstSentences max 0 = %q, want empty", got)
	}
}
