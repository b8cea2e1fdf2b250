package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational lifecycle events. It is not a
// request log; handlers never write to it.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
