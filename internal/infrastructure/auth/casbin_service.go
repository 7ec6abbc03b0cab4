package auth

import (
	"fmt"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// DefaultModel matches a role against route patterns (keyMatch2) and methods (regexMatch)
const DefaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// DefaultPolicies is the role matrix installed on startup
var DefaultPolicies = [][]string{
	{string(domain.RoleUser), "/api/v1/user/me", "^GET$"},
	{string(domain.RoleUser), "/api/v1/auth/logout", "^POST$"},
	{string(domain.RoleAdmin), "/api/v1/adminping", "^GET$"},
	{string(domain.RoleAdmin), "/api/v1/auth/register/coordinator", "^POST$"},
	{string(domain.RoleAdmin), "/api/v1/auth/register/admin", "^POST$"},
	{string(domain.RoleAdmin), "/api/v1/user/coordinator/id/:userId", "^(PATCH|DELETE)$"},
	{string(domain.RoleAdmin), "/api/v1/user/coordinator/email/:email", "^(PATCH|DELETE)$"},
	{string(domain.RoleAdmin), "/api/v1/admin/policies", "^(GET|POST|DELETE)$"},
	{string(domain.RoleCoordinator), "/api/v1/coordinatorping", "^GET$"},
}

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer persisted through the gorm adapter.
// An empty modelPath selects DefaultModel.
func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}

	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load casbin policy: %w", err)
	}
	return &CasbinService{E}, nil
}

func loadModel(modelPath string) (model.Model, error) {
	if modelPath == "" {
		m, err := model.NewModelFromString(DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("failed to parse casbin model: %w", err)
		}
		return m, nil
	}
	m, err := model.NewModelFromFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read casbin model %s: %w", modelPath, err)
	}
	return m, nil
}

// SeedPolicies installs policies that are not present yet and returns how many were added
func (s *CasbinService) SeedPolicies(policies [][]string) (int, error) {
	added := 0
	for _, p := range policies {
		ok, err := s.E.AddPolicy(p[0], p[1], p[2])
		if err != nil {
			return added, fmt.Errorf("failed to add policy %v: %w", p, err)
		}
		if ok {
			added++
		}
	}
	return added, nil
}
