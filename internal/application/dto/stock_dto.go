package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/internal/domain/entity"
)

// RegisterMovementRequest body de POST /api/stock/movements. Quantidade e custo
// valem para ENTRADA/SAIDA; os toggles alterar_saldo/alterar_minimo, para AJUSTE.
type RegisterMovementRequest struct {
	Tipo          string           `json:"tipo" validate:"required,oneof=ENTRADA SAIDA AJUSTE"`
	ProdutoID     string           `json:"produto_id" validate:"required,uuid"`
	Quantidade    *decimal.Decimal `json:"quantidade,omitempty"`
	CustoUnitario *decimal.Decimal `json:"custo_unitario,omitempty"`
	Motivo        string           `json:"motivo,omitempty"`
	Documento     string           `json:"documento,omitempty" validate:"max=60"`
	Observacao    string           `json:"observacao,omitempty" validate:"max=500"`
	AlterarSaldo  bool             `json:"alterar_saldo,omitempty"`
	NovoSaldo     *decimal.Decimal `json:"novo_saldo,omitempty"`
	AlterarMinimo bool             `json:"alterar_minimo,omitempty"`
	NovoMinimo    *decimal.Decimal `json:"novo_minimo,omitempty"`
}

// ProdutoDTO projeção do produto na API.
type ProdutoDTO struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"`
	Nome          string           `json:"nome"`
	Unidade       string           `json:"unidade"`
	Ativo         bool             `json:"ativo"`
	EstoqueAtual  decimal.Decimal  `json:"estoque_atual"`
	EstoqueMinimo *decimal.Decimal `json:"estoque_minimo,omitempty"`
	Validade      *string          `json:"validade,omitempty"` // YYYY-MM-DD
}

// MovementDTO lançamento do livro na API. Quantidade é o delta assinado.
type MovementDTO struct {
	ID              string           `json:"id"`
	Seq             int64            `json:"seq"`
	ProdutoID       string           `json:"produto_id"`
	ProdutoNome     string           `json:"produto_nome,omitempty"`
	ProdutoSKU      string           `json:"produto_sku,omitempty"`
	Tipo            string           `json:"tipo"`
	Quantidade      decimal.Decimal  `json:"quantidade"`
	CustoUnitario   *decimal.Decimal `json:"custo_unitario,omitempty"`
	Motivo          string           `json:"motivo,omitempty"`
	Documento       string           `json:"documento,omitempty"`
	Observacao      string           `json:"observacao,omitempty"`
	NovoMinimo      *decimal.Decimal `json:"novo_minimo,omitempty"`
	SaldoResultante decimal.Decimal  `json:"saldo_resultante"`
	CriadoEm        time.Time        `json:"criado_em"`
}

// RegisterMovementResponse resultado do comando: produto afetado + lançamento.
type RegisterMovementResponse struct {
	Product  ProdutoDTO  `json:"product"`
	Movement MovementDTO `json:"movement"`
}

// PositionItemDTO linha da Posição de Estoque.
type PositionItemDTO struct {
	ProdutoDTO
	MinimoEfetivo decimal.Decimal `json:"minimo_efetivo"`
	Situacao      string          `json:"situacao"`
	VenceEmBreve  bool            `json:"vence_em_breve"`
}

// PreferencesDTO preferências de estoque da empresa.
type PreferencesDTO struct {
	ConsiderarValidade  bool            `json:"considerar_validade"`
	EstoqueMinimoPadrao decimal.Decimal `json:"estoque_minimo_padrao"`
	ValidadeAlertaDias  int             `json:"validade_alerta_dias" validate:"omitempty,min=1,max=365"`
}

// AuditReportDTO resultado da auditoria de um produto.
type AuditReportDTO struct {
	ProdutoID          string          `json:"produto_id"`
	SKU                string          `json:"sku"`
	SaldoMaterializado decimal.Decimal `json:"saldo_materializado"`
	SaldoReplay        decimal.Decimal `json:"saldo_replay"`
	Consistente        bool            `json:"consistente"`
}

// ToProdutoDTO converte a entidade para a projeção da API.
func ToProdutoDTO(p *entity.Produto) ProdutoDTO {
	d := ProdutoDTO{
		ID:            p.ID,
		SKU:           p.SKU,
		Nome:          p.Name,
		Unidade:       p.Unit,
		Ativo:         p.Active,
		EstoqueAtual:  p.CurrentStock,
		EstoqueMinimo: p.MinStock,
	}
	if p.ExpiryDate != nil {
		v := p.ExpiryDate.Format("2006-01-02")
		d.Validade = &v
	}
	return d
}

// ToMovementDTO converte o lançamento para a projeção da API.
func ToMovementDTO(m *entity.MovimentoEstoque) MovementDTO {
	return MovementDTO{
		ID:              m.ID,
		Seq:             m.Seq,
		ProdutoID:       m.ProductID,
		Tipo:            m.Tipo,
		Quantidade:      m.Quantity,
		CustoUnitario:   m.UnitCost,
		Motivo:          m.Motivo,
		Documento:       m.Documento,
		Observacao:      m.Observacao,
		NovoMinimo:      m.NewMinStock,
		SaldoResultante: m.ResultingBalance,
		CriadoEm:        m.CreatedAt,
	}
}

// ToMovementWithProductDTO idem, com nome/SKU do produto para a listagem.
func ToMovementWithProductDTO(m *entity.MovimentoComProduto) MovementDTO {
	d := ToMovementDTO(&m.MovimentoEstoque)
	d.ProdutoNome = m.ProductName
	d.ProdutoSKU = m.ProductSKU
	return d
}

// ToPositionItemDTO converte a linha classificada da posição.
func ToPositionItemDTO(it *estoque.PositionItem) PositionItemDTO {
	return PositionItemDTO{
		ProdutoDTO:    ToProdutoDTO(it.Produto),
		MinimoEfetivo: it.EffectiveMin,
		Situacao:      it.Situacao,
		VenceEmBreve:  it.ExpiringSoon,
	}
}

// ToAuditReportDTO converte o relatório de auditoria.
func ToAuditReportDTO(r *estoque.AuditReport) AuditReportDTO {
	return AuditReportDTO{
		ProdutoID:          r.ProductID,
		SKU:                r.SKU,
		SaldoMaterializado: r.Cached,
		SaldoReplay:        r.Replayed,
		Consistente:        r.Consistent,
	}
}
