package estoque

import (
	"context"

	"github.com/aupet/petshop-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação de BD, com repositórios atados a
// essa transação. É o que garante que a atualização do saldo materializado e a
// gravação do lançamento entrem (ou não) juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
