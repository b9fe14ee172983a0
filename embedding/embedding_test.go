package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

func TestLazy_BuildsOnce(t *testing.T) {
	var builds atomic.Int32

	lazy := NewLazy(func() (Embedder, error) {
		builds.Add(1)
		return EmbedderFunc(func(_ context.Context, _ string) ([]float32, error) {
			return []float32{1, 0}, nil
		}), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lazy.Embed(context.Background(), "hello"); err != nil {
				t.Errorf("Embed failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := builds.Load(); got != 1 {
		t.Fatalf("constructor ran %d times, want 1", got)
	}
}

func TestLazy_ConstructorErrorIsSticky(t *testing.T) {
	var builds atomic.Int32
	wantErr := errors.New("boom")

	lazy := NewLazy(func() (Embedder, error) {
		builds.Add(1)
		return nil, wantErr
	})

	for i := 0; i < 3; i++ {
		_, err := lazy.Embed(context.Background(), "x")
		if !errors.Is(err, wantErr) {
			t.Fatalf("err = %v, want %v", err, wantErr)
		}
	}

	if got := builds.Load(); got != 1 {
		t.Fatalf("constructor ran %d times, want 1", got)
	}
}

func TestLazy_NilConstructor(t *testing.T) {
	lazy := NewLazy(nil)
	_, err := lazy.Embed(context.Background(), "x")
	if !errors.Is(err, ErrNilConstructor) {
		t.Fatalf("err = %v, want ErrNilConstructor", err)
	}
}

func TestClient_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %s, want /embeddings", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header = %q", got)
		}

		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Input) != 1 || req.Input[0] != "hello" {
			t.Errorf("input = %v", req.Input)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2}, "index": 0},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "secret"})
	vec, err := client.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 2 || vec[0] != 0.1 || vec[1] != 0.2 {
		t.Fatalf("vec = %v", vec)
	}
}

func TestClient_EmbedBatch_OrderedByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Respond out of order; the client must restore input order.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{2}, "index": 1},
				{"embedding": []float32{1}, "index": 0},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	vectors, err := client.EmbedBatch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if vectors[0][0] != 1 || vectors[1][0] != 2 {
		t.Fatalf("vectors = %v, want input order restored", vectors)
	}
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	_, err := client.Embed(context.Background(), "hello")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("err = %v, want ErrServiceUnavailable", err)
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := client.Embed(context.Background(), "hello")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("err = %v, want ErrServiceUnavailable", err)
	}
}
