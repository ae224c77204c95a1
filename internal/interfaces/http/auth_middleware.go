package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aupet/petshop-api/internal/application/dto"
	"github.com/aupet/petshop-api/pkg/jwt"
)

// Locals keys para UserID e CompanyID no Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
)

// AuthMiddleware valida o Bearer Token JWT e extrai UserID e CompanyID para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, companyID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		return c.Next()
	}
}

// GetUserID devolve o UserID do contexto (após o middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCompanyID devolve o CompanyID do contexto (após o middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
