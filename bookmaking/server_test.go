package bookmaking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleRequest_Initialize(t *testing.T) {
	ts := newToolset(t, Config{
		Embedder:   stubEmbedder{},
		ServerInfo: ServerInfo{Name: "bookforge-test", Version: "1.2.3"},
	})

	resp := ts.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	info := result["serverInfo"].(map[string]any)
	if info["name"] != "bookforge-test" {
		t.Errorf("server name = %v, want bookforge-test", info["name"])
	}
	if info["version"] != "1.2.3" {
		t.Errorf("server version = %v, want 1.2.3", info["version"])
	}
	if result["protocolVersion"] == "" {
		t.Error("protocolVersion should be set")
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	ts := newToolset(t, Config{Embedder: stubEmbedder{}})

	resp := ts.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0",
		ID:      2,
		Method:  "tools/list",
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	tools := result["tools"].([]map[string]any)
	if len(tools) != 14 {
		t.Fatalf("got %d tools, want 14", len(tools))
	}

	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		names[tool["name"].(string)] = true
		if tool["description"] == "" {
			t.Errorf("tool %v has no description", tool["name"])
		}
		if tool["inputSchema"] == nil {
			t.Errorf("tool %v has no input schema", tool["name"])
		}
	}
	for _, want := range []string{OpSearchArchive, OpCreateAnchor, OpRefineByAnchors, OpComposeChapter} {
		if !names[want] {
			t.Errorf("tool %s missing from list", want)
		}
	}
}

func TestHandleRequest_ToolsCall(t *testing.T) {
	emb := stubEmbedder{vecs: map[string][]float32{
		"a dark and stormy night": {0.1, 0.2, 0.3},
	}}
	ts := newToolset(t, Config{Embedder: emb})

	params, _ := json.Marshal(map[string]any{
		"name": OpCreateAnchor,
		"arguments": map[string]any{
			"name": "gothic",
			"text": "a dark and stormy night",
		},
	})

	resp := ts.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0",
		ID:      3,
		Method:  "tools/call",
		Params:  params,
	})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
}

func TestHandleRequest_ToolsCall_UnknownToolIsEnvelope(t *testing.T) {
	ts := newToolset(t, Config{Embedder: stubEmbedder{}})

	params, _ := json.Marshal(map[string]any{
		"name":      "summon_dragon",
		"arguments": map[string]any{},
	})

	resp := ts.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0",
		ID:      4,
		Method:  "tools/call",
		Params:  params,
	})

	// Unknown tools are reported in the result envelope, not as a
	// JSON-RPC error.
	if resp.Error != nil {
		t.Fatalf("expected envelope result, got JSON-RPC error: %v", resp.Error)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	ts := newToolset(t, Config{Embedder: stubEmbedder{}})

	resp := ts.HandleRequest(context.Background(), MCPRequest{
		JSONRPC: "2.0",
		ID:      5,
		Method:  "resources/list",
	})

	if resp.Error == nil {
		t.Fatal("expected error for unsupported method")
	}
	if resp.Error.Code != ErrCodeMethodNotFound {
		t.Errorf("code = %d, want %d", resp.Error.Code, ErrCodeMethodNotFound)
	}
}

func TestServeHTTP(t *testing.T) {
	ts := newToolset(t, Config{Embedder: stubEmbedder{}})
	handler := ServeHTTP(ts)

	body, _ := json.Marshal(MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp MCPResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
}

func TestServeHTTP_MethodNotAllowed(t *testing.T) {
	ts := newToolset(t, Config{Embedder: stubEmbedder{}})
	handler := ServeHTTP(ts)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != 405 {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestServeHTTP_InvalidJSON(t *testing.T) {
	ts := newToolset(t, Config{Embedder: stubEmbedder{}})
	handler := ServeHTTP(ts)

	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var resp MCPResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeParseError {
		t.Errorf("expected parse error, got %v", resp.Error)
	}
}

func TestServeSSE(t *testing.T) {
	ts := newToolset(t, Config{Embedder: stubEmbedder{}})
	handler := ServeSSE(ts)

	body, _ := json.Marshal(MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	req := httptest.NewRequest("POST", "/", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q, want text/event-stream", ct)
	}
	out := w.Body.String()
	if !strings.HasPrefix(out, "event: message\n") {
		t.Errorf("body = %q, want SSE message event", out)
	}
	if !strings.Contains(out, "serverInfo") {
		t.Errorf("body = %q, want initialize result in data", out)
	}
}
