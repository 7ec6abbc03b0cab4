package mocks

import "github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	AddPolicyFunc          func(role, resource, action string) error
	RemovePolicyFunc       func(role, resource, action string) error
	CheckPermissionFunc    func(role, resource, action string) (bool, error)
	CheckAnyPermissionFunc func(roles []string, resource, action string) (bool, error)
	GetPoliciesFunc        func() ([][]string, error)
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// AddPolicy adds a new authorization policy
func (m *MockPolicyService) AddPolicy(role, resource, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(role, resource, action)
	}
	return nil
}

// RemovePolicy removes an authorization policy
func (m *MockPolicyService) RemovePolicy(role, resource, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(role, resource, action)
	}
	return nil
}

// CheckPermission checks if a role has permission for a resource and action
func (m *MockPolicyService) CheckPermission(role, resource, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(role, resource, action)
	}
	// Default behavior: admins may do anything
	return role == string(domain.RoleAdmin), nil
}

// CheckAnyPermission checks whether one of the roles is allowed
func (m *MockPolicyService) CheckAnyPermission(roles []string, resource, action string) (bool, error) {
	if m.CheckAnyPermissionFunc != nil {
		return m.CheckAnyPermissionFunc(roles, resource, action)
	}
	for _, r := range roles {
		ok, err := m.CheckPermission(r, resource, action)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// GetPolicies returns all current policies
func (m *MockPolicyService) GetPolicies() ([][]string, error) {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return [][]string{
		{"ROLE_ADMIN", "/api/v1/adminping", "^GET$"},
		{"ROLE_USER", "/api/v1/user/me", "^GET$"},
	}, nil
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
