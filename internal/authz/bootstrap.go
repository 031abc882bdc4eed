package authz

import (
	"fmt"

	"github.com/ronoos/storefront/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
// customer 不持有后厨资源；baker 可见后厨全部接口
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCustomer,
		},
		{
			Role: constants.RoleBaker,
			Policies: []Policy{
				{Object: "/baker/analytics", Action: "GET"},
				{Object: "/baker/orders", Action: "GET"},
				{Object: "/baker/orders/:id", Action: "GET"},
				{Object: "/baker/orders/:id/status", Action: "PATCH"},
				{Object: "/baker/orders/:id/payment-status", Action: "PATCH"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
