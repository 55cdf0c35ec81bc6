package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

// tiktokenCounter adapts a tiktoken BPE encoding to the Counter interface
// used by the render token annotations.
type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// Name returns the model or encoding name the counter was resolved to.
func (counter tiktokenCounter) Name() string {
	return counter.name
}

// CountString returns the number of BPE tokens the encoding produces for input.
func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
