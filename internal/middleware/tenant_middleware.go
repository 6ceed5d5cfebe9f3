package middleware

import (
	"log"

	"go-hpp-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

const tenantKey = "tenant"

// WithTenant resolves the demo workspace (user + business) once per request
// and stashes it in locals, so handlers never bootstrap users themselves.
func WithTenant(tenants service.TenantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenant, err := tenants.Resolve(c.UserContext())
		if err != nil {
			log.Printf("tenant resolve failed: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "Failed to resolve workspace"})
		}
		c.Locals(tenantKey, tenant)
		return c.Next()
	}
}

// TenantFromCtx returns the tenant stored by WithTenant, or nil outside it.
func TenantFromCtx(c *fiber.Ctx) *service.Tenant {
	tenant, _ := c.Locals(tenantKey).(*service.Tenant)
	return tenant
}
