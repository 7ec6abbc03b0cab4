package services

import (
	"fmt"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

// PolicyServiceImpl answers route guard questions and edits the role matrix.
// A *casbin.Enforcer satisfies domain.CasbinEnforcer directly.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a policy service over enforcer
func NewPolicyService(enforcer domain.CasbinEnforcer) *PolicyServiceImpl {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy grants role the action patterns on the resource pattern
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	return p.update("add", role, resource, action, p.enforcer.AddPolicy)
}

// RemovePolicy revokes a previously granted rule
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	return p.update("remove", role, resource, action, p.enforcer.RemovePolicy)
}

func (p *PolicyServiceImpl) update(op, role, resource, action string, apply func(...interface{}) (bool, error)) error {
	if role == "" || resource == "" || action == "" {
		return domain.NewValidationError("policy", "role, resource and action are required")
	}
	changed, err := apply(role, resource, action)
	if err != nil {
		return fmt.Errorf("failed to %s policy: %w", op, err)
	}
	if !changed {
		return nil
	}
	if err := p.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save policies: %w", err)
	}
	return nil
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// CheckAnyPermission grants access when at least one role is allowed
func (p *PolicyServiceImpl) CheckAnyPermission(roles []string, resource, action string) (bool, error) {
	for _, role := range roles {
		ok, err := p.enforcer.Enforce(role, resource, action)
		if err != nil {
			return false, fmt.Errorf("failed to enforce policy for %s: %w", role, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() ([][]string, error) {
	return p.enforcer.GetPolicy()
}
