package chunking

import (
	"regexp"
	"strings"
)

var (
	horizontalWS   = regexp.MustCompile(`[ \t]+`)
	paragraphBreak = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*)+`)
)

// Normalize collapses runs of horizontal whitespace to one space,
// collapses two or more newlines to exactly one paragraph break,
// converts remaining single newlines to spaces, and trims the result.
// It is pure and idempotent: Normalize(Normalize(t)) == Normalize(t).
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalWS.ReplaceAllString(text, " ")
	text = paragraphBreak.ReplaceAllString(text, "\n\n")

	// Single newlines inside a paragraph become spaces. Splitting on
	// the paragraph marker keeps the marker itself untouched.
	paragraphs := strings.Split(text, "\n\n")
	kept := paragraphs[:0]
	for _, p := range paragraphs {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

// SplitSentences splits normalized text on punctuation followed by
// whitespace. The punctuation stays with its sentence. Text without a
// matching boundary comes back as a single sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			j := i + 1
			for j < len(text) && isSpace(text[j]) {
				j++
			}
			if j == i+1 {
				continue // punctuation not followed by whitespace
			}
			sentences = append(sentences, text[start:i+1])
			start = j
			i = j - 1
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t'
}
