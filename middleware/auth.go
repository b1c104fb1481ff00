package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"university-enrollment-report/utils"
)

// AuthRequired validates the Bearer token and stores the principal in the
// request locals: user_id, role_name and (for scoped users) university_id.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(401).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			return c.Status(401).JSON(fiber.Map{"error": "authorization header must be a Bearer token"})
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role_name", claims.RoleName)
		if claims.UniversityID != nil {
			c.Locals("university_id", *claims.UniversityID)
		}

		return c.Next()
	}
}

// RoleAllowed gates a route to the given roles.
func RoleAllowed(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role_name").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "insufficient role"})
	}
}
