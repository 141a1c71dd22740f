package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carenotes/internal/domain"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// RequireRole ensures the staff principal has one of the allowed roles.
// With no roles given, any authenticated staff member passes.
func RequireRole(allowed ...domain.StaffRole) fiber.Handler {
	allowedSet := make(map[domain.StaffRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Staff == nil {
			return apperrors.NewUnauthorized("staff required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Staff.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireManager shortcuts the common MANAGER/ADMIN guard.
func RequireManager() fiber.Handler {
	return RequireRole(domain.StaffRoleManager, domain.StaffRoleAdmin)
}
