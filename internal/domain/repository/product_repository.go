package repository

import (
	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain/entity"
)

// ProductRepository porta de persistência do produto. O cadastro em si é do
// catálogo; este serviço lê produtos e escreve apenas os campos de estoque
// (saldo materializado, mínimo, trava de integridade).
type ProductRepository interface {
	Create(p *entity.Produto) error
	GetByID(id string) (*entity.Produto, error)
	// GetForUpdate obtém o produto bloqueando a linha (SELECT FOR UPDATE).
	// Só faz sentido dentro de uma transação.
	GetForUpdate(id string) (*entity.Produto, error)
	ListActive(companyID string) ([]*entity.Produto, error)
	// ApplyStock grava o saldo pós-movimento e, quando presentes, o novo mínimo
	// e a liberação da trava de integridade. Chamado somente pelo livro, na mesma
	// transação que insere o lançamento.
	ApplyStock(id string, balance decimal.Decimal, newMin *decimal.Decimal, clearIntegrityLock bool) error
	SetIntegrityLock(id string, locked bool) error
}
