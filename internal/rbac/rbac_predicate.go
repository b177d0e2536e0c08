package rbac

import (
	"context"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/contextutil"
)

// Actor is the authenticated caller as supplied by the auth middleware.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanManageStaff reports whether actor may act on a staff member whose
// supervisor is supervisorID. It only looks at already-loaded data.
func CanManageStaff(actor Actor, supervisorID string) bool {
	if actor.ID == "" {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.Role == RoleSupervisor && supervisorID != "" && actor.ID == supervisorID
}

// CanEvaluate reports whether actor may submit an evaluation for staffID.
// Nobody evaluates themselves.
func CanEvaluate(actor Actor, staffID, supervisorID string) bool {
	if actor.ID == "" || actor.ID == staffID {
		return false
	}
	return CanManageStaff(actor, supervisorID)
}

// CanViewEvaluation allows the subject, the evaluator, the subject's
// supervisor and admins.
func CanViewEvaluation(actor Actor, staffID, evaluatorID, supervisorID string) bool {
	if actor.ID == "" {
		return false
	}
	switch actor.ID {
	case staffID, evaluatorID:
		return true
	}
	return CanManageStaff(actor, supervisorID)
}

// ActorFromContext reads the actor the auth middleware stored on ctx.
func ActorFromContext(ctx context.Context) Actor {
	return Actor{ID: contextutil.GetActorID(ctx), Role: contextutil.GetActorRole(ctx)}
}
