package infra

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// ModelText is a role-hierarchy RBAC model: subjects are roles, not users.
const ModelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Policy is a single role -> resource/action grant.
type Policy struct {
	Role     string
	Resource string
	Action   string
}

// Inheritance states that Role receives every grant of Parent.
type Inheritance struct {
	Role   string
	Parent string
}

// NewEnforcer builds an enforcer from ModelText and loads the given policies.
func NewEnforcer(policies []Policy, inheritance []Inheritance) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(ModelText)
	if err != nil {
		return nil, fmt.Errorf("rbac: model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac: enforcer: %w", err)
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			return nil, fmt.Errorf("rbac: policy %s %s:%s: %w", p.Role, p.Resource, p.Action, err)
		}
	}
	for _, in := range inheritance {
		if _, err := e.AddGroupingPolicy(in.Role, in.Parent); err != nil {
			return nil, fmt.Errorf("rbac: inherit %s <- %s: %w", in.Role, in.Parent, err)
		}
	}
	return e, nil
}
