package repository

import "context"

// Persisted state lives under three well-known keys, each holding one JSON
// document. The layout is shared with earlier deployments and must not change.
const (
	KeyUsers       = "users"
	KeyTasks       = "tasks"
	KeyCurrentUser = "currentUser"
)

// KV is the durable key-value store both collection services write through.
// Get reports ok=false when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
