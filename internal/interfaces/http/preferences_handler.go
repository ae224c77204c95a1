package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aupet/petshop-api/internal/application/dto"
	"github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/internal/domain/entity"
)

// PreferencesHandler trata leitura e gravação das preferências de estoque.
type PreferencesHandler struct {
	prefs *estoque.PreferencesUseCase
}

// NewPreferencesHandler constrói o handler.
func NewPreferencesHandler(prefs *estoque.PreferencesUseCase) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

// Get godoc
// @Summary      Preferências de estoque da empresa
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PreferencesDTO
// @Router       /api/stock/preferences [get]
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	prefs, err := h.prefs.Get(c.Context(), companyID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.PreferencesDTO{
		ConsiderarValidade:  prefs.ConsiderarValidade,
		EstoqueMinimoPadrao: prefs.EstoqueMinimoPadrao,
		ValidadeAlertaDias:  prefs.ValidadeAlertaDias,
	})
}

// Update godoc
// @Summary      Atualizar preferências de estoque
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreferencesDTO  true  "Preferências"
// @Success      200   {object}  dto.PreferencesDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/preferences [put]
func (h *PreferencesHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PreferencesDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if in.ValidadeAlertaDias == 0 {
		in.ValidadeAlertaDias = entity.DefaultPreferencias(companyID).ValidadeAlertaDias
	}

	saved, err := h.prefs.Update(c.Context(), &entity.PreferenciasEstoque{
		CompanyID:           companyID,
		ConsiderarValidade:  in.ConsiderarValidade,
		EstoqueMinimoPadrao: in.EstoqueMinimoPadrao,
		ValidadeAlertaDias:  in.ValidadeAlertaDias,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.PreferencesDTO{
		ConsiderarValidade:  saved.ConsiderarValidade,
		EstoqueMinimoPadrao: saved.EstoqueMinimoPadrao,
		ValidadeAlertaDias:  saved.ValidadeAlertaDias,
	})
}
