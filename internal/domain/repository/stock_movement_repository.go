package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain/entity"
)

// MovementFilter filtros da listagem de movimentações.
type MovementFilter struct {
	CompanyID string
	ProductID string
	Tipo      string
	Text      string // casa com nome/SKU do produto e documento, sem caixa
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository porta de persistência do livro de movimentações.
// O livro é append-only: não há update nem delete de lançamentos.
type StockMovementRepository interface {
	// Create insere o lançamento e preenche m.Seq com a ordem atribuída.
	Create(m *entity.MovimentoEstoque) error
	// List retorna a página em ordem cronológica (Seq ascendente).
	List(f MovementFilter) ([]*entity.MovimentoComProduto, error)
	// SumDeltas soma os deltas do produto, para replay de saldo na auditoria.
	SumDeltas(productID string) (decimal.Decimal, error)
}
