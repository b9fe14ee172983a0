// Package embedding defines the boundary to the external embedding
// capability: a provider that turns text into fixed-length dense vectors.
//
// The engine never assumes a specific provider. Callers supply any
// implementation of [Embedder]; a ready-made [Client] speaks the
// OpenAI-compatible REST shape (POST /embeddings) that local servers such
// as Ollama and llama.cpp also expose.
//
// # Lazy initialization
//
// Constructing a provider may be expensive (credential lookup, connection
// setup). [Lazy] wraps a constructor so the underlying Embedder is built at
// most once per process, on first use, safely under concurrent callers:
//
//	lazy := embedding.NewLazy(func() (embedding.Embedder, error) {
//	    return embedding.NewClient(embedding.ClientConfig{BaseURL: url}), nil
//	})
//
// Every component that needs embeddings receives the Embedder by injection;
// there is no package-level mutable state.
//
// # Errors
//
// Provider failures surface as [ErrServiceUnavailable]. The package never
// retries internally; retry policy belongs to the caller.
package embedding
