package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PreferenciasEstoque configuração de estoque por empresa (tenant).
type PreferenciasEstoque struct {
	CompanyID           string
	ConsiderarValidade  bool
	EstoqueMinimoPadrao decimal.Decimal // aplicado quando o produto não tem mínimo próprio
	ValidadeAlertaDias  int             // janela do alerta "vence em breve"
	UpdatedAt           time.Time
}

// DefaultPreferencias valores usados quando a empresa nunca salvou preferências.
func DefaultPreferencias(companyID string) *PreferenciasEstoque {
	return &PreferenciasEstoque{
		CompanyID:           companyID,
		ConsiderarValidade:  false,
		EstoqueMinimoPadrao: decimal.Zero,
		ValidadeAlertaDias:  30,
	}
}
