package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque.
const (
	MovementTypeEntrada = "ENTRADA"
	MovementTypeSaida   = "SAIDA"
	MovementTypeAjuste  = "AJUSTE"
)

// MovimentoEstoque é um lançamento imutável do livro de movimentações.
// Quantity é o delta assinado aplicado ao saldo (negativo em SAIDA; em AJUSTE,
// novo saldo menos saldo corrente — gravado mesmo quando zero). ResultingBalance
// é o retrato do saldo logo após o lançamento, para auditoria e detecção de drift.
type MovimentoEstoque struct {
	ID               string
	Seq              int64 // ordem total de replay, atribuída pelo storage
	CompanyID        string
	ProductID        string
	Tipo             string
	Quantity         decimal.Decimal
	UnitCost         *decimal.Decimal // somente ENTRADA
	Motivo           string           // somente SAIDA: VENDA, PERDA, CONSUMO, OUTRO
	Documento        string           // NF, pedido, etc.
	Observacao       string
	NewMinStock      *decimal.Decimal // AJUSTE que alterou o mínimo
	ResultingBalance decimal.Decimal
	CreatedAt        time.Time
	CreatedBy        string // UserID
}

// MovimentoComProduto acrescenta dados do produto para a tela de movimentações.
type MovimentoComProduto struct {
	MovimentoEstoque
	ProductName string
	ProductSKU  string
}
