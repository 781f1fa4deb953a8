package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JsonOK devolve o payload puro com status 200, como o frontend espera
// (listas e entidades sem envelope).
func JsonOK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonCreated devolve o payload puro com status 201.
func JsonCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// JsonMessage devolve {"message": ...} para ações sem corpo de entidade.
func JsonMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

// JsonError devolve {"detail": ...}. O operador vê essa string na tela,
// então a mensagem precisa ser legível em português.
func JsonError(c *fiber.Ctx, code int, detail string) error {
	return c.Status(code).JSON(fiber.Map{"detail": detail})
}

// FromFiberError converte um erro (normalmente *fiber.Error vindo de uma
// Transaction) na resposta JSON padrão. Qualquer outro erro vira 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// ValidationError formata erros do validator.v10 campo a campo.
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Dados inválidos")
	}

	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": "Erro de validação",
		"errors": errorsMap,
	})
}
