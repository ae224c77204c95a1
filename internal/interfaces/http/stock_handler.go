package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aupet/petshop-api/internal/application/dto"
	"github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/pkg/logger"
)

var errInvalidDays = errors.New("days deve estar entre 1 e 365")

// ReportGenerator gera o PDF da posição de estoque.
type ReportGenerator interface {
	Generate(ctx context.Context, generatedAt time.Time, items []*estoque.PositionItem) ([]byte, error)
}

// StockHandler trata posição de estoque, relatório PDF e auditoria.
type StockHandler struct {
	position *estoque.PositionUseCase
	audit    *estoque.AuditUseCase
	report   ReportGenerator
	log      *logger.Logger
}

// NewStockHandler constrói o handler.
func NewStockHandler(position *estoque.PositionUseCase, audit *estoque.AuditUseCase, report ReportGenerator, log *logger.Logger) *StockHandler {
	return &StockHandler{position: position, audit: audit, report: report, log: log}
}

// Position godoc
// @Summary      Posição de Estoque classificada
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        filter  query  string  false  "all | below-min | out-of-stock | expire-soon"
// @Param        days    query  int     false  "Janela de validade em dias (padrão: preferência da empresa)"
// @Param        q       query  string  false  "Busca por nome ou SKU"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Position(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	q, err := positionQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	items, err := h.position.List(c.Context(), companyID, q)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.PositionItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToPositionItemDTO(it))
	}
	return c.JSON(fiber.Map{
		"total":    len(out),
		"products": out,
	})
}

// Report godoc
// @Summary      Relatório PDF da Posição de Estoque
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        filter  query  string  false  "all | below-min | out-of-stock | expire-soon"
// @Param        days    query  int     false  "Janela de validade em dias"
// @Param        q       query  string  false  "Busca por nome ou SKU"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	q, err := positionQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	items, err := h.position.List(c.Context(), companyID, q)
	if err != nil {
		return domainError(c, err)
	}
	generatedAt := time.Now()
	pdfBytes, err := h.report.Generate(c.Context(), generatedAt, items)
	if err != nil {
		h.log.Error().Err(err).Str("company_id", companyID).Msg("falha ao gerar relatório de posição")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "falha ao gerar relatório"})
	}

	filename := "posicao-estoque-" + generatedAt.Format("20060102-1504") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Audit godoc
// @Summary      Auditar consistência saldo x livro de movimentações
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        produto_id  query  string  false  "Auditar apenas um produto (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/audit [post]
func (h *StockHandler) Audit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}

	var reports []*estoque.AuditReport
	if productID := c.Query("produto_id"); productID != "" {
		report, err := h.audit.VerifyProduct(c.Context(), companyID, productID)
		if err != nil {
			return domainError(c, err)
		}
		reports = append(reports, report)
	} else {
		var err error
		reports, err = h.audit.VerifyAll(c.Context(), companyID)
		if err != nil {
			return domainError(c, err)
		}
	}

	inconsistent := 0
	out := make([]dto.AuditReportDTO, 0, len(reports))
	for _, r := range reports {
		if !r.Consistent {
			inconsistent++
			h.log.Warn().
				Str("company_id", companyID).
				Str("produto_id", r.ProductID).
				Str("sku", r.SKU).
				Str("saldo_materializado", r.Cached.String()).
				Str("saldo_replay", r.Replayed.String()).
				Msg("saldo divergente do livro; produto travado")
		}
		out = append(out, dto.ToAuditReportDTO(r))
	}
	return c.JSON(fiber.Map{
		"total":        len(out),
		"inconsistent": inconsistent,
		"reports":      out,
	})
}

// positionQuery extrai filter/days/q da query string.
func positionQuery(c *fiber.Ctx) (estoque.PositionQuery, error) {
	q := estoque.PositionQuery{
		Filter: c.Query("filter", estoque.FilterAll),
		Q:      c.Query("q"),
	}
	if v := c.Query("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 1 || days > 365 {
			return q, errInvalidDays
		}
		q.Days = days
	}
	return q, nil
}
