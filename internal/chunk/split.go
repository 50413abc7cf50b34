// Package chunk splits assessment text into bounded segments and delivers
// them in order to the invoking channel.
package chunk

import (
	"unicode/utf8"

	"healthbot/internal/domain"
)

// DefaultLimit is the per-message character ceiling of the destination
// channel.
const DefaultLimit = 4000

// Split breaks text into ordered chunks of at most limit bytes. Cuts prefer
// the last line boundary in the window (when it lands past the halfway
// point) and never fall inside a multi-byte UTF-8 sequence. Concatenating
// the chunks in order reproduces text exactly.
func Split(text string, limit int) []domain.MessageChunk {
	if limit < 1 {
		limit = 1
	}

	var parts []string
	rest := text
	for len(rest) > limit {
		cut := limit
		if idx := lastNewline(rest[:limit]); idx > limit/2 {
			cut = idx + 1
		} else {
			for cut > 0 && !utf8.RuneStart(rest[cut]) {
				cut--
			}
			if cut == 0 {
				// a single rune wider than the limit; emit it whole
				_, cut = utf8.DecodeRuneInString(rest)
			}
		}
		parts = append(parts, rest[:cut])
		rest = rest[cut:]
	}
	parts = append(parts, rest)

	chunks := make([]domain.MessageChunk, len(parts))
	for i, p := range parts {
		chunks[i] = domain.MessageChunk{Text: p, Index: i + 1, Total: len(parts)}
	}
	return chunks
}

func lastNewline(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			return i
		}
	}
	return -1
}
