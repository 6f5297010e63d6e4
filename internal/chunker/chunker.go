// Package chunker splits extracted document text into overlapping
// fixed-size windows for embedding.
package chunker

import (
	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Split cuts text into windows of size code points, each starting
// size-overlap after the previous one. Text shorter than size yields a
// single chunk equal to the whole text. size must be strictly greater
// than overlap, otherwise the window would never advance.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, appErr.ErrInvalid
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	total := len(runes)
	step := size - overlap

	chunks := make([]string, 0, total/step+1)
	for start := 0; start < total; start += step {
		end := start + size
		if end > total {
			end = total
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == total {
			break
		}
	}
	return chunks, nil
}
