package auth

// The authorization evaluator is a pure decision function over the resolved
// principal and the per-route requirement sets. Each route declares which
// role slugs and which permission slugs grant access; either set may be
// empty, which skips that check entirely.

type DenyReason string

const (
	DenyNoRoleAssigned       DenyReason = "no_role_assigned"
	DenyInsufficientRole     DenyReason = "insufficient_role"
	DenyNoPermissionAssigned DenyReason = "no_permission_assigned"
	DenyMissingPermission    DenyReason = "missing_permission"
)

func (r DenyReason) Message() string {
	switch r {
	case DenyNoRoleAssigned:
		return "Forbidden: no roles assigned"
	case DenyInsufficientRole:
		return "Forbidden: insufficient role"
	case DenyNoPermissionAssigned:
		return "Forbidden: no permissions assigned"
	case DenyMissingPermission:
		return "Forbidden: missing permission"
	}
	return "Forbidden"
}

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Authorize decides whether the principal satisfies the route requirements.
// A request passes when the principal holds at least one of requiredRoles
// (if non-empty) and at least one of requiredPermissions (if non-empty).
// Admin principals bypass both checks unconditionally.
func Authorize(p *Principal, requiredRoles, requiredPermissions []string) Decision {
	if p == nil {
		if len(requiredRoles) > 0 {
			return Deny(DenyNoRoleAssigned)
		}
		if len(requiredPermissions) > 0 {
			return Deny(DenyNoPermissionAssigned)
		}
		return Allow()
	}

	if p.IsAdmin {
		return Allow()
	}

	if len(requiredRoles) > 0 {
		if len(p.Roles) == 0 {
			return Deny(DenyNoRoleAssigned)
		}
		if !p.HasAnyRole(requiredRoles) {
			return Deny(DenyInsufficientRole)
		}
	}

	if len(requiredPermissions) > 0 {
		if len(p.Permissions) == 0 {
			return Deny(DenyNoPermissionAssigned)
		}
		if !p.HasAnyPermission(requiredPermissions) {
			return Deny(DenyMissingPermission)
		}
	}

	return Allow()
}
