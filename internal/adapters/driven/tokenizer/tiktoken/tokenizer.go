// Package tiktoken provides a tokenizer adapter backed by the
// tiktoken-go BPE implementation.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/docsift/docsift/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultEncoding is the subword encoding shared by ingestion and
// query paths. cl100k_base is the encoding of the OpenAI embedding
// models this repository defaults to.
const DefaultEncoding = "cl100k_base"

// Tokenizer counts tokens using a fixed tiktoken encoding.
type Tokenizer struct {
	encoding string
	codec    *tiktoken.Tiktoken
}

// New creates a tokenizer for the named encoding. An empty name
// selects DefaultEncoding.
func New(encoding string) (*Tokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	codec, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tiktoken: load encoding %q: %w", encoding, err)
	}
	return &Tokenizer{encoding: encoding, codec: codec}, nil
}

// Count returns the number of tokens text encodes to.
func (t *Tokenizer) Count(text string) int {
	return len(t.codec.Encode(text, nil, nil))
}

// Tail decodes the last n tokens of text back into a string. Text
// with n tokens or fewer comes back unchanged.
func (t *Tokenizer) Tail(text string, n int) string {
	if n <= 0 {
		return ""
	}
	tokens := t.codec.Encode(text, nil, nil)
	if len(tokens) <= n {
		return text
	}
	return t.codec.Decode(tokens[len(tokens)-n:])
}

// Encoding returns the encoding name.
func (t *Tokenizer) Encoding() string {
	return t.encoding
}
