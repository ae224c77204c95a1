package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aupet/petshop-api/internal/application/dto"
	"github.com/aupet/petshop-api/internal/domain"
)

// domainError mapeia os erros sentinela do domínio para status + código HTTP.
// Validação e not-found bloqueiam a ação; conflito e estoque insuficiente pedem
// refetch-e-retry do chamador; integridade exige reconciliação manual.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "quantidade inválida"})
	case errors.Is(err, domain.ErrNoOperation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_OPERATION", Message: "selecione alterar saldo e/ou alterar mínimo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produto não encontrado"})
	case errors.Is(err, domain.ErrEstoqueInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "estoque insuficiente"})
	case errors.Is(err, domain.ErrConflito):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "estoque alterado por outra operação, tente novamente"})
	case errors.Is(err, domain.ErrIntegridade):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INTEGRITY", Message: "produto travado por divergência de saldo; reconcilie com um ajuste"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
