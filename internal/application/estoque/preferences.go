package estoque

import (
	"context"
	"time"

	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

// PreferencesUseCase lê e grava as preferências de estoque da empresa.
type PreferencesUseCase struct {
	prefsRepo repository.PreferencesRepository
}

// NewPreferencesUseCase constrói o caso de uso.
func NewPreferencesUseCase(prefsRepo repository.PreferencesRepository) *PreferencesUseCase {
	return &PreferencesUseCase{prefsRepo: prefsRepo}
}

// Get retorna as preferências da empresa, com os padrões quando nunca salvas.
func (uc *PreferencesUseCase) Get(ctx context.Context, companyID string) (*entity.PreferenciasEstoque, error) {
	prefs, err := uc.prefsRepo.Get(companyID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = entity.DefaultPreferencias(companyID)
	}
	return prefs, nil
}

// Update valida e grava as preferências.
func (uc *PreferencesUseCase) Update(ctx context.Context, prefs *entity.PreferenciasEstoque) (*entity.PreferenciasEstoque, error) {
	if prefs.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if prefs.EstoqueMinimoPadrao.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if prefs.ValidadeAlertaDias < 1 || prefs.ValidadeAlertaDias > 365 {
		return nil, domain.ErrInvalidInput
	}
	prefs.UpdatedAt = time.Now()
	if err := uc.prefsRepo.Upsert(prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
