package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/commerce-management/internal"
)

// RBACAuthorization turns evaluator decisions into route middleware. One
// instance guards the whole route table; requirement sets are declared per
// route at registration time.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

// RequireAccess allows the request when the principal holds at least one of
// roles (when non-empty) and at least one of permissions (when non-empty).
func (ra *RBACAuthorization) RequireAccess(roles, permissions []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				ra.logger.Warn("authorization check failed: principal not found in context")
				writeAuthError(w, internal.ErrUnauthenticated)
				return
			}

			decision := Authorize(principal, roles, permissions)
			if !decision.Allowed {
				ra.logger.WarnContext(r.Context(), "access denied",
					"principal_id", principal.ID,
					"is_admin", principal.IsAdmin,
					"required_roles", roles,
					"required_permissions", permissions,
					"reason", decision.Reason)
				writeAuthError(w, forbiddenError(decision.Reason))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return ra.RequireAccess(roles, nil)
}

func (ra *RBACAuthorization) RequirePermissions(permissions ...string) func(http.Handler) http.Handler {
	return ra.RequireAccess(nil, permissions)
}

// RequireAdmin admits only the administrative identity class. This is not a
// role check: graph members never pass it regardless of their roles.
func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				writeAuthError(w, internal.ErrUnauthenticated)
				return
			}

			if !principal.IsAdmin {
				ra.logger.WarnContext(r.Context(), "access denied: admin identity required",
					"principal_id", principal.ID)
				writeAuthError(w, internal.NewForbiddenError("Forbidden: admin access required", internal.ErrCodeInsufficientRole))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func forbiddenError(reason DenyReason) *internal.AppError {
	code := internal.ErrCodeMissingPermission
	switch reason {
	case DenyNoRoleAssigned:
		code = internal.ErrCodeNoRoleAssigned
	case DenyInsufficientRole:
		code = internal.ErrCodeInsufficientRole
	case DenyNoPermissionAssigned:
		code = internal.ErrCodeNoPermissionAssigned
	case DenyMissingPermission:
		code = internal.ErrCodeMissingPermission
	}
	return internal.NewForbiddenError(reason.Message(), code)
}

func writeAuthError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
