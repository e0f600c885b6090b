package vectorizer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Vector represents a text embedding.
// The dimensionality depends on the model (1536 for text-embedding-3-small).
type Vector []float64

// Literal renders v in the pgvector text format, e.g. "[0.1,0.2]".
func (v Vector) Literal() string {
	var b strings.Builder
	b.Grow(len(v) * 12)
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// Provider defines the interface for embedding backends.
type Provider interface {
	Vectorize(ctx context.Context, text string) (Vector, error)
	Dimensions() int
}

// Vectorizer normalizes input text and delegates embedding to a Provider.
type Vectorizer struct {
	provider Provider
}

// New creates a Vectorizer backed by provider.
func New(provider Provider) (*Vectorizer, error) {
	if provider == nil {
		return nil, ErrProviderNotSet
	}
	return &Vectorizer{provider: provider}, nil
}

// ToVector converts a single text into an embedding.
// Returns ErrEmptyText if the input contains only whitespace.
func (v *Vectorizer) ToVector(ctx context.Context, text string) (Vector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	vector, err := v.provider.Vectorize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVectorizationFailed, err)
	}
	if dims := v.provider.Dimensions(); dims > 0 && len(vector) != dims {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidDimensions, len(vector), dims)
	}

	return vector, nil
}

// Dimensions returns the vector size of the underlying model.
func (v *Vectorizer) Dimensions() int {
	return v.provider.Dimensions()
}
