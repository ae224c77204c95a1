package repository

import "github.com/aupet/petshop-api/internal/domain/entity"

// PreferencesRepository porta das preferências de estoque por empresa.
type PreferencesRepository interface {
	// Get retorna nil (sem erro) quando a empresa nunca salvou preferências.
	Get(companyID string) (*entity.PreferenciasEstoque, error)
	Upsert(p *entity.PreferenciasEstoque) error
}
