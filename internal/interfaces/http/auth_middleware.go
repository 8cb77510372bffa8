package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jcastellanos/inventario-stock/internal/application/dto"
	"github.com/jcastellanos/inventario-stock/internal/domain/entity"
	"github.com/jcastellanos/inventario-stock/pkg/jwt"
)

// Locals keys para la identidad del usuario en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUsername  = "username"
	LocalGroups    = "groups"
	LocalSuperuser = "is_superuser"
)

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
// Sin token válido la petición muere aquí: ningún handler llega a ejecutarse.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUsername, id.Username)
		c.Locals(LocalGroups, id.Groups)
		c.Locals(LocalSuperuser, id.IsSuperuser)
		return c.Next()
	}
}

// RequireGroups autoriza la petición si el usuario autenticado pertenece a al
// menos uno de los grupos requeridos o es superusuario. Debe usarse DESPUÉS
// de AuthMiddleware. La denegación corta antes de cualquier efecto del
// handler.
func RequireGroups(groups ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		if IsSuperuser(c) || entity.MemberOfAny(GetGroups(c), groups) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetUsername devuelve el username del contexto.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetGroups devuelve los grupos del usuario del contexto.
func GetGroups(c *fiber.Ctx) []string {
	g, _ := c.Locals(LocalGroups).([]string)
	return g
}

// IsSuperuser indica si el usuario del contexto es superusuario.
func IsSuperuser(c *fiber.Ctx) bool {
	b, _ := c.Locals(LocalSuperuser).(bool)
	return b
}
