package driven

// Tokenizer counts tokens under one fixed subword encoding.
// Chunk size limits and overlap spans are expressed in these tokens,
// so one instance is shared between ingestion and query paths.
//
// The encoding is not strictly concatenative: token counts of joined
// strings must be computed on the joined text, never summed from the
// parts.
type Tokenizer interface {
	// Count returns the number of tokens text encodes to.
	Count(text string) int

	// Tail returns the text decoded from the last n tokens of text,
	// or text unchanged if it has n tokens or fewer. Used to seed
	// chunk overlap.
	Tail(text string, n int) string

	// Encoding returns the name of the subword encoding.
	Encoding() string
}
