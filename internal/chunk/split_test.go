package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"

	"healthbot/internal/domain"
)

func concat(chunks []domain.MessageChunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

func TestSplit_Short(t *testing.T) {
	chunks := Split("short message", 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Index != 1 || chunks[0].Total != 1 {
		t.Errorf("bad ordinals: %+v", chunks[0])
	}
}

func TestSplit_Empty(t *testing.T) {
	chunks := Split("", 100)
	if len(chunks) != 1 || chunks[0].Text != "" {
		t.Errorf("expected a single empty chunk, got %v", chunks)
	}
}

func TestSplit_ExactThreeChunks(t *testing.T) {
	doc := strings.Repeat("a", 10000)
	chunks := Split(doc, 4000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0].Text) != 4000 || len(chunks[1].Text) != 4000 || len(chunks[2].Text) != 2000 {
		t.Errorf("unexpected sizes: %d %d %d",
			len(chunks[0].Text), len(chunks[1].Text), len(chunks[2].Text))
	}
	if concat(chunks) != doc {
		t.Error("concatenation does not reproduce the document")
	}
}

func TestSplit_ConcatReproducesInput(t *testing.T) {
	docs := []string{
		"",
		"one line",
		strings.Repeat("line of text\n", 500),
		strings.Repeat("🏗️ assessment über café — ", 300),
		strings.Repeat("x", 9999) + "\n" + strings.Repeat("y", 41),
	}
	for _, limit := range []int{1, 3, 17, 100, 4000} {
		for i, doc := range docs {
			chunks := Split(doc, limit)
			if concat(chunks) != doc {
				t.Errorf("doc %d limit %d: concat mismatch", i, limit)
			}
			for _, c := range chunks {
				if c.Total != len(chunks) {
					t.Errorf("doc %d limit %d: chunk %d has total %d, want %d",
						i, limit, c.Index, c.Total, len(chunks))
				}
			}
		}
	}
}

func TestSplit_RespectsLimit(t *testing.T) {
	doc := strings.Repeat("some words here\n", 400)
	for _, limit := range []int{50, 100, 4000} {
		for i, c := range Split(doc, limit) {
			if len(c.Text) > limit {
				t.Errorf("limit %d: chunk %d has %d bytes", limit, i, len(c.Text))
			}
		}
	}
}

func TestSplit_NeverInsideRune(t *testing.T) {
	doc := strings.Repeat("héllo wörld 🎯 ", 200)
	for _, limit := range []int{5, 10, 33, 100} {
		for i, c := range Split(doc, limit) {
			if !utf8.ValidString(c.Text) {
				t.Errorf("limit %d: chunk %d splits a multi-byte rune", limit, i)
			}
		}
	}
}

func TestSplit_PrefersLineBoundary(t *testing.T) {
	doc := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)
	chunks := Split(doc, 100)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, "\n") {
		t.Errorf("first chunk should end at the line boundary, got %q tail", chunks[0].Text[len(chunks[0].Text)-5:])
	}
}

func TestSplit_OversizedRune(t *testing.T) {
	// a 4-byte rune with limit 1 cannot satisfy both constraints; rune
	// integrity wins
	chunks := Split("🎯", 1)
	if concat(chunks) != "🎯" {
		t.Error("concat mismatch")
	}
	for _, c := range chunks {
		if !utf8.ValidString(c.Text) {
			t.Error("rune was split")
		}
	}
}
