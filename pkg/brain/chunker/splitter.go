package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators is ordered from most- to least-preferred boundary. The
// empty string means a hard cut at the rune boundary.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Splitter splits text into overlapping chunks bounded by a rune budget,
// preferring paragraph, line, sentence and word boundaries over mid-token cuts.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

func New(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap, separators: DefaultSeparators}
}

// Split returns the ordered chunk list for text. Consecutive chunks repeat up
// to the configured overlap of trailing runes; removing those seeds and
// concatenating reconstructs the input exactly. Empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	pieces := s.split(text, s.separators)

	var chunks []string
	var cur []rune
	seed := 0 // leading runes of cur carried over from the previous chunk
	for _, p := range pieces {
		pr := []rune(p)
		if len(cur) > 0 && len(cur)+len(pr) > s.chunkSize {
			if len(cur) > seed {
				chunks = append(chunks, string(cur))
				tail := s.overlap
				if tail > len(cur) {
					tail = len(cur)
				}
				if tail+len(pr) > s.chunkSize {
					tail = s.chunkSize - len(pr)
				}
				if tail < 0 {
					tail = 0
				}
				cur = append([]rune(nil), cur[len(cur)-tail:]...)
				seed = len(cur)
			} else {
				// pure overlap with no room left for the next piece
				cur = cur[:0]
				seed = 0
			}
		}
		cur = append(cur, pr...)
	}
	if len(cur) > seed {
		chunks = append(chunks, string(cur))
	}
	return chunks
}

// split cuts text into pieces no larger than the budget. Pieces concatenate
// back to the input; separators stay attached to the piece they terminate.
func (s *Splitter) split(text string, seps []string) []string {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		return []string{text}
	}

	sep := ""
	var rest []string
	for i, sp := range seps {
		if sp == "" {
			break
		}
		if strings.Contains(text, sp) {
			sep = sp
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		return hardCut(text, s.chunkSize)
	}

	var out []string
	for _, part := range strings.SplitAfter(text, sep) {
		if part == "" {
			continue
		}
		if utf8.RuneCountInString(part) > s.chunkSize {
			out = append(out, s.split(part, rest)...)
		} else {
			out = append(out, part)
		}
	}
	return out
}

func hardCut(text string, size int) []string {
	r := []rune(text)
	var out []string
	for i := 0; i < len(r); i += size {
		end := i + size
		if end > len(r) {
			end = len(r)
		}
		out = append(out, string(r[i:end]))
	}
	return out
}
