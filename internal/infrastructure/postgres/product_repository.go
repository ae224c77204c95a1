package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação de ProductRepository sobre PostgreSQL (usável com
// pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, sku, name, unit, active, current_stock, baseline, min_stock, expiry_date, integrity_locked, created_at, updated_at`

// Create persiste um novo produto com saldo e baseline informados.
func (r *ProductRepo) Create(p *entity.Produto) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.SKU, p.Name, p.Unit, p.Active,
		p.CurrentStock, p.Baseline, p.MinStock, p.ExpiryDate,
		p.IntegrityLocked, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID. Retorna nil quando não existe.
func (r *ProductRepo) GetByID(id string) (*entity.Produto, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetForUpdate obtém o produto bloqueando a linha (SELECT FOR UPDATE). Deve ser
// chamado dentro de uma transação; é o que serializa escritores do mesmo produto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Produto, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// ListActive lista os produtos ativos da empresa, ordenados por nome.
func (r *ProductRepo) ListActive(companyID string) ([]*entity.Produto, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND active ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Produto
	for rows.Next() {
		p, err := r.scanOne(rows, "scan product")
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ApplyStock grava o saldo pós-movimento e, quando presentes, o novo mínimo e a
// liberação da trava de integridade. Só o livro chama, na transação que também
// insere o lançamento.
func (r *ProductRepo) ApplyStock(id string, balance decimal.Decimal, newMin *decimal.Decimal, clearIntegrityLock bool) error {
	query := `
		UPDATE products
		SET current_stock = $2,
		    min_stock = COALESCE($3, min_stock),
		    integrity_locked = CASE WHEN $4 THEN false ELSE integrity_locked END,
		    updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, balance, newMin, clearIntegrityLock)
	if err != nil {
		return fmt.Errorf("apply stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetIntegrityLock liga/desliga a trava de integridade do produto.
func (r *ProductRepo) SetIntegrityLock(id string, locked bool) error {
	query := `UPDATE products SET integrity_locked = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, locked)
	if err != nil {
		return fmt.Errorf("set integrity lock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Produto, error) {
	var p entity.Produto
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Unit, &p.Active,
		&p.CurrentStock, &p.Baseline, &p.MinStock, &p.ExpiryDate,
		&p.IntegrityLocked, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
