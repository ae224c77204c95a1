package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um item do catálogo com o saldo de estoque materializado.
// Cadastro (SKU, nome, unidade, validade) pertence ao catálogo; CurrentStock é
// escrito exclusivamente pelo livro de movimentações, e Baseline é o saldo que
// o produto tinha na adoção do livro (0 para produtos criados depois).
type Produto struct {
	ID              string
	CompanyID       string
	SKU             string // único por empresa
	Name            string
	Unit            string // UN, KG, L...
	Active          bool
	CurrentStock    decimal.Decimal
	Baseline        decimal.Decimal
	MinStock        *decimal.Decimal // nil = usa o padrão da empresa
	ExpiryDate      *time.Time
	IntegrityLocked bool // travado pela auditoria até reconciliação manual
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
