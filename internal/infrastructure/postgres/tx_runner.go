package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

var _ estoque.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback. Falhas de serialização e deadlock viram domain.ErrConflito;
// reapresentar a operação é responsabilidade do chamador.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewStockMovementRepository(tx)); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflito
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflito
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
