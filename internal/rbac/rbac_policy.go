package rbac

import "github.com/tnoeldner/Housing-Leadership-Reports/internal/rbac/infra"

// Roles carried in the JWT "role" claim.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleStaff      = "staff"
)

// Resources and actions guarded by RBACAuthorize.
const (
	ResourceRubric      = "rubric"
	ResourceStaff       = "staff"
	ResourceEvaluation  = "evaluation"
	ResourceRecognition = "recognition"

	ActionRead      = "read"
	ActionCreate    = "create"
	ActionManage    = "manage"
	ActionRecompute = "recompute"
)

// DefaultPolicies is the in-code permission table. It is never read from the
// database so authorization cannot recurse into the tables it protects.
func DefaultPolicies() []infra.Policy {
	return []infra.Policy{
		{Role: RoleStaff, Resource: ResourceRubric, Action: ActionRead},
		{Role: RoleStaff, Resource: ResourceEvaluation, Action: ActionRead},
		{Role: RoleStaff, Resource: ResourceRecognition, Action: ActionRead},

		{Role: RoleSupervisor, Resource: ResourceStaff, Action: ActionRead},
		{Role: RoleSupervisor, Resource: ResourceStaff, Action: ActionManage},
		{Role: RoleSupervisor, Resource: ResourceEvaluation, Action: ActionCreate},

		{Role: RoleAdmin, Resource: ResourceRubric, Action: ActionManage},
		{Role: RoleAdmin, Resource: ResourceRecognition, Action: ActionRecompute},
	}
}

// DefaultInheritance makes admin a supervisor and supervisor a staff member.
func DefaultInheritance() []infra.Inheritance {
	return []infra.Inheritance{
		{Role: RoleSupervisor, Parent: RoleStaff},
		{Role: RoleAdmin, Parent: RoleSupervisor},
	}
}
