package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/temirov/cattree/internal/tokenizer"
)

// wordCounter is a deterministic Counter stand-in that counts whitespace-separated words.
type wordCounter struct{}

func (wordCounter) Name() string { return "word" }

func (wordCounter) CountString(input string) (int, error) {
	return len(strings.Fields(input)), nil
}

func TestCountBytes(t *testing.T) {
	testCases := []struct {
		name            string
		content         []byte
		expectedTokens  int
		expectedCounted bool
	}{
		{name: "empty content", content: nil, expectedTokens: 0, expectedCounted: true},
		{name: "plain text", content: []byte("one two three"), expectedTokens: 3, expectedCounted: true},
		{name: "binary content skipped", content: []byte{0x00, 0x01}, expectedTokens: 0, expectedCounted: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			countResult, countError := tokenizer.CountBytes(wordCounter{}, testCase.content)
			if countError != nil {
				t.Fatalf("unexpected count error: %v", countError)
			}
			if countResult.Counted != testCase.expectedCounted {
				t.Fatalf("expected counted %v, got %v", testCase.expectedCounted, countResult.Counted)
			}
			if countResult.Tokens != testCase.expectedTokens {
				t.Fatalf("expected %d tokens, got %d", testCase.expectedTokens, countResult.Tokens)
			}
		})
	}
}

func TestCountBytesRejectsNilCounter(t *testing.T) {
	if _, countError := tokenizer.CountBytes(nil, []byte("text")); countError == nil {
		t.Fatal("expected an error for a nil counter")
	}
}
