package estoque

import (
	"context"

	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

// Limites de página da listagem de movimentações.
const (
	defaultMovementPage = 50
	maxMovementPage     = 200
)

// MovementQueryUseCase consulta o livro de movimentações (lado de leitura;
// roda em paralelo com escritas e observa apenas estado commitado).
type MovementQueryUseCase struct {
	movementRepo repository.StockMovementRepository
}

// NewMovementQueryUseCase constrói o caso de uso.
func NewMovementQueryUseCase(movementRepo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo}
}

// List retorna uma página do livro em ordem cronológica (Seq ascendente),
// com filtros opcionais de produto, tipo, período e texto.
func (uc *MovementQueryUseCase) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovimentoComProduto, error) {
	switch f.Tipo {
	case "", entity.MovementTypeEntrada, entity.MovementTypeSaida, entity.MovementTypeAjuste:
	default:
		return nil, domain.ErrInvalidInput
	}
	if f.Limit <= 0 {
		f.Limit = defaultMovementPage
	}
	if f.Limit > maxMovementPage {
		f.Limit = maxMovementPage
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.movementRepo.List(f)
}
