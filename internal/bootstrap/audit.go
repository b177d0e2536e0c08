package bootstrap

import "context"

// AuditLog is a single operational event worth keeping apart from regular logs
// (shutdown, recognition recompute, rubric edits).
type AuditLog struct {
	Action  string
	ActorID string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
