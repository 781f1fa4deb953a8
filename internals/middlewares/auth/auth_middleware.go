package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"classcheck_backend/internals/configs"
	userModel "classcheck_backend/internals/features/users/users/model"
)

const localsUserKey = "current_user"

// AuthMiddleware valida o bearer token e carrega o usuário no contexto da
// requisição. Nada de estado global: quem precisa do usuário lê via CurrentUser.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": err.Error()})
		}

		if configs.JWTSecret == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "JWT_SECRET não configurado"})
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("método de assinatura inesperado")
			}
			return []byte(configs.JWTSecret), nil
		}); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Token inválido"})
		}

		email, _ := claims["sub"].(string)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Token inválido"})
		}

		var user userModel.UserModel
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Usuário não encontrado"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Erro interno"})
		}
		if !user.Ativo {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Conta desativada"})
		}

		c.Locals(localsUserKey, &user)
		return c.Next()
	}
}

// CurrentUser devolve o usuário autenticado carregado pelo middleware.
func CurrentUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	u, ok := c.Locals(localsUserKey).(*userModel.UserModel)
	if !ok || u == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Não autenticado")
	}
	return u, nil
}

// RequireAdmin corta a requisição quando o usuário não é admin.
func RequireAdmin(c *fiber.Ctx) (*userModel.UserModel, error) {
	u, err := CurrentUser(c)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Apenas administradores podem realizar esta ação")
	}
	return u, nil
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get("Authorization")
	if h == "" {
		return "", errors.New("Token não informado")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("Cabeçalho Authorization malformado")
	}
	return strings.TrimSpace(parts[1]), nil
}
