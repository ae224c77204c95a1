package estoque

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain/entity"
)

// Situações exibidas na Posição de Estoque.
const (
	SituacaoRuptura      = "RUPTURA"
	SituacaoAbaixoMinimo = "ABAIXO_MINIMO"
	SituacaoNormal       = "NORMAL"
)

// EffectiveMinStock mínimo efetivo: mínimo do produto, senão o padrão da empresa, senão 0.
func EffectiveMinStock(p *entity.Produto, prefs *entity.PreferenciasEstoque) decimal.Decimal {
	if p.MinStock != nil {
		return *p.MinStock
	}
	if prefs != nil {
		return prefs.EstoqueMinimoPadrao
	}
	return decimal.Zero
}

// Classify classifica a saúde do estoque: RUPTURA quando saldo <= 0,
// ABAIXO_MINIMO quando 0 < saldo < mínimo efetivo. Saldo igual ao mínimo é NORMAL.
func Classify(current, effectiveMin decimal.Decimal) string {
	switch {
	case current.LessThanOrEqual(decimal.Zero):
		return SituacaoRuptura
	case current.LessThan(effectiveMin):
		return SituacaoAbaixoMinimo
	default:
		return SituacaoNormal
	}
}

// ClassifyProduto atalho sobre Classify usando o mínimo efetivo do produto.
func ClassifyProduto(p *entity.Produto, prefs *entity.PreferenciasEstoque) string {
	return Classify(p.CurrentStock, EffectiveMinStock(p, prefs))
}

// ExpiringSoon indica se o produto entra na janela de alerta de validade:
// controle de validade habilitado nas preferências, validade definida e
// 0 < dias até vencer <= janela. Produto já vencido fica fora do alerta.
// lookaheadDays <= 0 usa a janela das preferências.
func ExpiringSoon(p *entity.Produto, prefs *entity.PreferenciasEstoque, now time.Time, lookaheadDays int) bool {
	if prefs == nil || !prefs.ConsiderarValidade || p.ExpiryDate == nil {
		return false
	}
	if lookaheadDays <= 0 {
		lookaheadDays = prefs.ValidadeAlertaDias
	}
	days := DaysUntil(*p.ExpiryDate, now)
	return days > 0 && days <= lookaheadDays
}

// DaysUntil dias de calendário entre now e a data alvo (granularidade de dia).
func DaysUntil(target, now time.Time) int {
	ty, tm, td := target.Date()
	ny, nm, nd := now.Date()
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(n) / (24 * time.Hour))
}
