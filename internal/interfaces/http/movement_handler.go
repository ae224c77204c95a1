package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aupet/petshop-api/internal/application/dto"
	"github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

// MovementHandler trata o registro e a listagem de movimentações (protegido).
type MovementHandler struct {
	register  *estoque.RegisterMovementUseCase
	movements *estoque.MovementQueryUseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(register *estoque.RegisterMovementUseCase, movements *estoque.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{register: register, movements: movements}
}

// Register godoc
// @Summary      Registrar movimentação de estoque
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "tipo, produto_id, quantidade (ENTRADA/SAIDA) ou toggles de AJUSTE"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	input := estoque.MovementInput{
		CompanyID:  companyID,
		UserID:     userID,
		ProductID:  in.ProdutoID,
		Tipo:       in.Tipo,
		Motivo:     in.Motivo,
		Documento:  in.Documento,
		Observacao: in.Observacao,
	}
	if in.Tipo == entity.MovementTypeAjuste {
		adj, err := estoque.NormalizeAdjustment(in.AlterarSaldo, in.NovoSaldo, in.AlterarMinimo, in.NovoMinimo)
		if err != nil {
			return domainError(c, err)
		}
		input.Adjustment = adj
	} else {
		if in.Quantidade != nil {
			input.Quantity = *in.Quantidade
		}
		input.UnitCost = in.CustoUnitario
	}

	res, err := h.register.Register(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{
		Product:  dto.ToProdutoDTO(res.Product),
		Movement: dto.ToMovementDTO(res.Movement),
	})
}

// List godoc
// @Summary      Listar movimentações (ordem cronológica)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        produto_id  query  string  false  "Filtrar por produto (UUID)"
// @Param        tipo        query  string  false  "ENTRADA | SAIDA | AJUSTE"
// @Param        q           query  string  false  "Busca por nome/SKU/documento"
// @Param        from        query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to          query  string  false  "Data final (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()

	f := repository.MovementFilter{
		CompanyID: companyID,
		ProductID: c.Query("produto_id"),
		Tipo:      c.Query("tipo"),
		Text:      c.Query("q"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (YYYY-MM-DD)"})
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (YYYY-MM-DD)"})
		}
		// inclusivo até o fim do dia
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}

	list, err := h.movements.List(c.Context(), f)
	if err != nil {
		return domainError(c, err)
	}

	items := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementWithProductDTO(m))
	}
	// count é o tamanho da página devolvida, não o total do livro.
	return c.JSON(fiber.Map{
		"count":     len(items),
		"limit":     f.Limit,
		"offset":    f.Offset,
		"movements": items,
	})
}
