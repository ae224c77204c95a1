package estoque

import (
	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain"
)

// Adjustment payload normalizado de um AJUSTE: alvo absoluto de saldo e/ou novo
// mínimo. Os dois juntos ainda geram um único lançamento no livro.
type Adjustment struct {
	AlterarSaldo  bool
	NovoSaldo     decimal.Decimal
	AlterarMinimo bool
	NovoMinimo    decimal.Decimal
}

// Validate exige ao menos uma operação e valores não negativos.
func (a *Adjustment) Validate() error {
	if !a.AlterarSaldo && !a.AlterarMinimo {
		return domain.ErrNoOperation
	}
	if a.AlterarSaldo && a.NovoSaldo.IsNegative() {
		return domain.ErrInvalidQuantity
	}
	if a.AlterarMinimo && a.NovoMinimo.IsNegative() {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// NormalizeAdjustment converte os toggles independentes da UI ("alterar saldo",
// "alterar mínimo") no payload único consumido pelo livro. Toggle ligado sem o
// valor correspondente é entrada inválida.
func NormalizeAdjustment(alterarSaldo bool, novoSaldo *decimal.Decimal, alterarMinimo bool, novoMinimo *decimal.Decimal) (*Adjustment, error) {
	if !alterarSaldo && !alterarMinimo {
		return nil, domain.ErrNoOperation
	}
	adj := &Adjustment{AlterarSaldo: alterarSaldo, AlterarMinimo: alterarMinimo}
	if alterarSaldo {
		if novoSaldo == nil {
			return nil, domain.ErrInvalidInput
		}
		adj.NovoSaldo = *novoSaldo
	}
	if alterarMinimo {
		if novoMinimo == nil {
			return nil, domain.ErrInvalidInput
		}
		adj.NovoMinimo = *novoMinimo
	}
	if err := adj.Validate(); err != nil {
		return nil, err
	}
	return adj, nil
}
