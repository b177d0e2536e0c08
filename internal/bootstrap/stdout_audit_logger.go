package bootstrap

import (
	"context"
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"

	"go.uber.org/zap"
)

type StdoutAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &StdoutAuditLogger{logger: l, now: time.Now}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	meta := contextutil.ExtractMetadata(ctx)
	actorID := entry.ActorID
	if actorID == "" {
		actorID = meta.ActorID
	}
	l.logger.Info("audit event",
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("actor_id", actorID),
		zap.String("actor_role", meta.ActorRole),
		zap.String("request_id", meta.RequestID),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
