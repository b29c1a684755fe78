package permission

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// rbacModel grants resource/action pairs directly to role subjects.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

const rolePrefix = "role:"

var _ access.Resolver = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer persists policies in the casbin_rule table of db.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}
	return NewEnforcerWithAdapter(adapter, log)
}

func NewEnforcerWithAdapter(adapter persist.Adapter, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func roleSubject(roleID uint) string {
	return rolePrefix + strconv.FormatUint(uint64(roleID), 10)
}

func parseRoleSubject(sub string) (uint, bool) {
	if !strings.HasPrefix(sub, rolePrefix) {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(sub, rolePrefix), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (e *Enforcer) Capabilities(_ context.Context, roleID uint) (access.CapabilitySet, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	sub := roleSubject(roleID)
	granted := make([]access.Capability, 0, len(access.AllCapabilities))
	for _, c := range access.AllCapabilities {
		p := c.Permission()
		allowed, err := e.enforcer.Enforce(sub, p.Resource, p.Action)
		if err != nil {
			e.logger.Errorw("permission check failed", "error", err, "role_id", roleID, "capability", c)
			return access.CapabilitySet{}, fmt.Errorf("permission check failed: %w", err)
		}
		if allowed {
			granted = append(granted, c)
		}
	}
	return access.NewCapabilitySet(granted...), nil
}

func (e *Enforcer) RolesWith(_ context.Context, c access.Capability) ([]uint, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p := c.Permission()
	rules, err := e.enforcer.GetFilteredPolicy(1, p.Resource, p.Action)
	if err != nil {
		return nil, fmt.Errorf("failed to get policies: %w", err)
	}

	ids := make([]uint, 0, len(rules))
	for _, rule := range rules {
		if id, ok := parseRoleSubject(rule[0]); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Grant adds capabilities to a role. Existing grants are kept.
func (e *Enforcer) Grant(roleID uint, caps ...access.Capability) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub := roleSubject(roleID)
	for _, c := range caps {
		if !c.IsValid() {
			return fmt.Errorf("unknown capability %q", c)
		}
		p := c.Permission()
		if _, err := e.enforcer.AddPolicy(sub, p.Resource, p.Action); err != nil {
			e.logger.Errorw("failed to add policy", "error", err, "role_id", roleID, "capability", c)
			return fmt.Errorf("failed to add policy: %w", err)
		}
	}
	return nil
}

// RemoveRole drops every grant of a role.
func (e *Enforcer) RemoveRole(roleID uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemoveFilteredPolicy(0, roleSubject(roleID)); err != nil {
		return fmt.Errorf("failed to remove role policies: %w", err)
	}
	return nil
}

// SeedDefaults grants the built-in role capabilities.
func (e *Enforcer) SeedDefaults() error {
	roleIDs := make([]uint, 0, len(access.DefaultRoleCapabilities))
	for id := range access.DefaultRoleCapabilities {
		roleIDs = append(roleIDs, id)
	}
	sort.Slice(roleIDs, func(i, j int) bool { return roleIDs[i] < roleIDs[j] })

	for _, id := range roleIDs {
		if err := e.Grant(id, access.DefaultRoleCapabilities[id]...); err != nil {
			return err
		}
	}

	e.logger.Infow("default role permissions seeded", "roles", len(roleIDs))
	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Infow("policy reloaded successfully")
	return nil
}
