package estoque

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/estoque"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

// RegisterMovementUseCase grava movimentações de estoque (ENTRADA, SAIDA,
// AJUSTE) de forma transacional: bloqueio de linha do produto (SELECT FOR
// UPDATE), saldo materializado e lançamento imutável escritos na mesma
// transação. Toda mutação de saldo passa por aqui — é o escritor único.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase constrói o caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementInput comando de movimentação já normalizado.
// ENTRADA/SAIDA usam Quantity (> 0); AJUSTE usa Adjustment (ver reconciler).
type MovementInput struct {
	CompanyID  string
	UserID     string
	ProductID  string
	Tipo       string
	Quantity   decimal.Decimal
	UnitCost   *decimal.Decimal // ENTRADA
	Motivo     string           // SAIDA
	Documento  string
	Observacao string
	Adjustment *Adjustment // AJUSTE
}

// Result resultado do comando: produto atualizado + lançamento gravado.
// Evita o refetch da lista inteira após cada mutação.
type Result struct {
	Product  *entity.Produto
	Movement *entity.MovimentoEstoque
}

// Register valida o comando, inicia a transação, bloqueia a linha do produto,
// calcula o delta assinado e grava exatamente um lançamento com o saldo
// resultante. Falhas de validação e produto inexistente são rejeitadas antes de
// qualquer escrita.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, in MovementInput) (*Result, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Tipo {
	case entity.MovementTypeEntrada, entity.MovementTypeSaida:
		if !in.Quantity.IsPositive() {
			return nil, domain.ErrInvalidQuantity
		}
		if in.Tipo == entity.MovementTypeEntrada && in.UnitCost != nil && in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidQuantity
		}
	case entity.MovementTypeAjuste:
		if in.Adjustment == nil {
			return nil, domain.ErrNoOperation
		}
		if err := in.Adjustment.Validate(); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	var res *Result
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.CompanyID != in.CompanyID || !product.Active {
			return domain.ErrNotFound
		}

		// Produto travado pela auditoria só aceita o AJUSTE de saldo que o
		// reconcilia manualmente.
		reconciles := in.Tipo == entity.MovementTypeAjuste && in.Adjustment.AlterarSaldo
		if product.IntegrityLocked && !reconciles {
			return domain.ErrIntegridade
		}

		now := time.Now()
		mov := &entity.MovimentoEstoque{
			ID:         uuid.New().String(),
			CompanyID:  in.CompanyID,
			ProductID:  product.ID,
			Tipo:       in.Tipo,
			Documento:  in.Documento,
			Observacao: in.Observacao,
			CreatedAt:  now,
			CreatedBy:  in.UserID,
		}

		switch in.Tipo {
		case entity.MovementTypeEntrada:
			mov.Quantity = in.Quantity
			mov.UnitCost = in.UnitCost
		case entity.MovementTypeSaida:
			if product.CurrentStock.LessThan(in.Quantity) {
				return domain.ErrEstoqueInsuficiente
			}
			mov.Quantity = in.Quantity.Neg()
			mov.Motivo = estoque.NormalizeMotivo(in.Motivo)
		case entity.MovementTypeAjuste:
			if in.Adjustment.AlterarSaldo {
				mov.Quantity = in.Adjustment.NovoSaldo.Sub(product.CurrentStock)
			} else {
				mov.Quantity = decimal.Zero
			}
			if in.Adjustment.AlterarMinimo {
				nm := in.Adjustment.NovoMinimo
				mov.NewMinStock = &nm
			}
		}

		newBalance := product.CurrentStock.Add(mov.Quantity)
		mov.ResultingBalance = newBalance

		clearLock := product.IntegrityLocked && reconciles
		if err := productRepo.ApplyStock(product.ID, newBalance, mov.NewMinStock, clearLock); err != nil {
			return err
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}

		product.CurrentStock = newBalance
		if mov.NewMinStock != nil {
			v := *mov.NewMinStock
			product.MinStock = &v
		}
		if clearLock {
			product.IntegrityLocked = false
		}
		product.UpdatedAt = now
		res = &Result{Product: product, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
