package grouping

import "fmt"

// Chunking flattens all groups and re-splits the elements into consecutive
// groups of at most Size, the final group holding the remainder.
type Chunking[T any] struct {
	Size int
}

// NewChunking returns a chunking heuristic with the given maximum group size.
func NewChunking[T any](size int) *Chunking[T] {
	return &Chunking[T]{Size: size}
}

func (c *Chunking[T]) Distribute(dist Distribution[T]) (Distribution[T], error) {
	if c.Size < 1 {
		return nil, fmt.Errorf("chunking: invalid chunk size %d", c.Size)
	}

	flat := Flatten(dist)
	out := make(Distribution[T], 0, (len(flat)+c.Size-1)/c.Size)
	for start := 0; start < len(flat); start += c.Size {
		end := min(start+c.Size, len(flat))
		out = append(out, Group[T](flat[start:end:end]))
	}
	return out, nil
}
