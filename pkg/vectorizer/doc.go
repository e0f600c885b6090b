// Package vectorizer turns profile text into embeddings.
//
// The only backend is OpenAIProvider, which calls the /embeddings endpoint
// with a single input per request. Vectorizer trims input, rejects empty
// text and checks that the returned vector matches the model's size.
//
//	v, err := vectorizer.NewFromConfig(cfg)
//	if err != nil {
//		return err
//	}
//	vec, err := v.ToVector(ctx, "Alice. Hiking, chess")
//
// Vector.Literal renders an embedding in the pgvector text format so it can
// be bound to a `$1::vector` parameter.
package vectorizer
