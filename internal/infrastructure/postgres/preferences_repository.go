package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

var _ repository.PreferencesRepository = (*PreferencesRepo)(nil)

// PreferencesRepo preferências de estoque por empresa sobre PostgreSQL.
type PreferencesRepo struct {
	q Querier
}

// NewPreferencesRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPreferencesRepository(q Querier) *PreferencesRepo {
	return &PreferencesRepo{q: q}
}

// Get obtém as preferências da empresa; nil quando nunca salvas.
func (r *PreferencesRepo) Get(companyID string) (*entity.PreferenciasEstoque, error) {
	query := `
		SELECT company_id, considerar_validade, estoque_minimo_padrao, validade_alerta_dias, updated_at
		FROM stock_preferences WHERE company_id = $1`
	var p entity.PreferenciasEstoque
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&p.CompanyID, &p.ConsiderarValidade, &p.EstoqueMinimoPadrao, &p.ValidadeAlertaDias, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock preferences: %w", err)
	}
	return &p, nil
}

// Upsert insere ou atualiza as preferências da empresa.
func (r *PreferencesRepo) Upsert(p *entity.PreferenciasEstoque) error {
	query := `
		INSERT INTO stock_preferences (company_id, considerar_validade, estoque_minimo_padrao, validade_alerta_dias, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (company_id)
		DO UPDATE SET considerar_validade = EXCLUDED.considerar_validade,
		              estoque_minimo_padrao = EXCLUDED.estoque_minimo_padrao,
		              validade_alerta_dias = EXCLUDED.validade_alerta_dias,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		p.CompanyID, p.ConsiderarValidade, p.EstoqueMinimoPadrao, p.ValidadeAlertaDias,
	)
	if err != nil {
		return fmt.Errorf("upsert stock preferences: %w", err)
	}
	return nil
}
