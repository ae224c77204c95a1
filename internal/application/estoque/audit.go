package estoque

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

// AuditReport resultado da verificação de consistência de um produto.
type AuditReport struct {
	ProductID  string
	SKU        string
	Cached     decimal.Decimal // saldo materializado no produto
	Replayed   decimal.Decimal // baseline + soma dos deltas do livro
	Consistent bool
}

// AuditUseCase confere o saldo materializado contra o replay do livro. Sob a
// disciplina de escritor único a divergência nunca deveria ocorrer; quando
// ocorre, o produto é travado para novas movimentações até um AJUSTE de saldo
// reconciliar manualmente. Nada é corrigido em silêncio.
type AuditUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewAuditUseCase constrói o caso de uso.
func NewAuditUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *AuditUseCase {
	return &AuditUseCase{txRunner: txRunner, productRepo: productRepo}
}

// VerifyProduct reexecuta o livro do produto dentro de uma transação (com a
// linha bloqueada, para não disputar com um lançamento em andamento) e compara
// com o saldo materializado. Em drift, liga a trava de integridade.
func (uc *AuditUseCase) VerifyProduct(ctx context.Context, companyID, productID string) (*AuditReport, error) {
	var report *AuditReport
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		p, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if p == nil || p.CompanyID != companyID {
			return domain.ErrNotFound
		}
		sum, err := movementRepo.SumDeltas(p.ID)
		if err != nil {
			return err
		}
		replayed := p.Baseline.Add(sum)
		report = &AuditReport{
			ProductID:  p.ID,
			SKU:        p.SKU,
			Cached:     p.CurrentStock,
			Replayed:   replayed,
			Consistent: p.CurrentStock.Equal(replayed),
		}
		if !report.Consistent && !p.IntegrityLocked {
			return productRepo.SetIntegrityLock(p.ID, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// VerifyAll audita todos os produtos ativos da empresa, um por transação para
// não segurar bloqueios do catálogo inteiro de uma vez.
func (uc *AuditUseCase) VerifyAll(ctx context.Context, companyID string) ([]*AuditReport, error) {
	products, err := uc.productRepo.ListActive(companyID)
	if err != nil {
		return nil, err
	}
	reports := make([]*AuditReport, 0, len(products))
	for _, p := range products {
		report, err := uc.VerifyProduct(ctx, companyID, p.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
