package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/estoque"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação do livro de movimentações sobre PostgreSQL
// (usável com pool ou tx). A tabela é append-only; seq é um BIGSERIAL que dá a
// ordem total de replay.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create insere o lançamento e preenche m.Seq com a ordem atribuída pelo banco.
func (r *StockMovementRepo) Create(m *entity.MovimentoEstoque) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, company_id, product_id, tipo, quantity, unit_cost, motivo, documento, observacao, new_min_stock, resulting_balance, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING seq`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		m.ID, m.CompanyID, m.ProductID, m.Tipo, m.Quantity, m.UnitCost,
		m.Motivo, m.Documento, m.Observacao, m.NewMinStock, m.ResultingBalance,
		m.CreatedAt, createdBy,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List retorna a página do livro em ordem cronológica (seq ascendente), com os
// filtros opcionais do MovementFilter. Text casa sem caixa nem acento com
// nome/SKU do produto e com o documento do lançamento: o termo é normalizado
// com Fold aqui e as colunas passam por unaccent (extensão habilitada na
// migração 002) antes do ILIKE.
func (r *StockMovementRepo) List(f repository.MovementFilter) ([]*entity.MovimentoComProduto, error) {
	query := `
		SELECT m.id, m.seq, m.company_id, m.product_id, m.tipo, m.quantity, m.unit_cost, m.motivo, m.documento, m.observacao, m.new_min_stock, m.resulting_balance, m.created_at, m.created_by, p.name, p.sku
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.company_id = $1`
	args := []any{f.CompanyID}
	pos := 2
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.Tipo != "" {
		query += fmt.Sprintf(" AND m.tipo = $%d", pos)
		args = append(args, f.Tipo)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	if f.Text != "" {
		query += fmt.Sprintf(" AND (unaccent(p.name) ILIKE $%d OR unaccent(p.sku) ILIKE $%d OR unaccent(m.documento) ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+estoque.Fold(f.Text)+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.seq ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovimentoComProduto
	for rows.Next() {
		var m entity.MovimentoComProduto
		var createdBy *string
		if err := rows.Scan(
			&m.ID, &m.Seq, &m.CompanyID, &m.ProductID, &m.Tipo, &m.Quantity,
			&m.UnitCost, &m.Motivo, &m.Documento, &m.Observacao, &m.NewMinStock,
			&m.ResultingBalance, &m.CreatedAt, &createdBy, &m.ProductName, &m.ProductSKU,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumDeltas soma os deltas assinados do produto, para replay de saldo.
func (r *StockMovementRepo) SumDeltas(productID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum deltas: %w", err)
	}
	return sum, nil
}
