package bookmaking

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrValidation       = errors.New("invalid arguments")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrNoEmbedder       = errors.New("no embedder configured")
	ErrNoStore          = errors.New("no content store configured")
)

// Standard JSON-RPC 2.0 error codes.
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
)
