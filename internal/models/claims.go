package models

import "github.com/golang-jwt/jwt/v5"

const RoleAdmin = "admin"

// Application permissions
const (
	PermissionTiersRead  = "tiers:read"
	PermissionTiersWrite = "tiers:write"
)

type AdminClaims struct {
	jwt.RegisteredClaims
	AdminID      uint     `json:"admin_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *AdminClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{PermissionTiersRead, PermissionTiersWrite}
	default:
		return []string{}
	}
}
