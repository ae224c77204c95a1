package estoque

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/estoque"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

// Filtros da Posição de Estoque.
const (
	FilterAll        = "all"
	FilterBelowMin   = "below-min"
	FilterOutOfStock = "out-of-stock"
	FilterExpireSoon = "expire-soon"
)

// PositionQuery parâmetros da consulta de posição.
type PositionQuery struct {
	Filter string
	Days   int    // janela de validade; 0 usa a preferência da empresa
	Q      string // busca por nome/SKU, sem caixa nem acento
}

// PositionItem linha classificada da posição de estoque.
type PositionItem struct {
	Produto      *entity.Produto
	EffectiveMin decimal.Decimal
	Situacao     string
	ExpiringSoon bool
}

// PositionUseCase monta a Posição de Estoque: classificação e alerta de
// validade recalculados por consulta (aceitável para o catálogo de uma loja).
type PositionUseCase struct {
	productRepo repository.ProductRepository
	prefsRepo   repository.PreferencesRepository
	now         func() time.Time
}

// NewPositionUseCase constrói o caso de uso.
func NewPositionUseCase(productRepo repository.ProductRepository, prefsRepo repository.PreferencesRepository) *PositionUseCase {
	return &PositionUseCase{productRepo: productRepo, prefsRepo: prefsRepo, now: time.Now}
}

// List devolve os produtos ativos da empresa classificados e filtrados,
// ordenados por nome.
func (uc *PositionUseCase) List(ctx context.Context, companyID string, q PositionQuery) ([]*PositionItem, error) {
	switch q.Filter {
	case "", FilterAll, FilterBelowMin, FilterOutOfStock, FilterExpireSoon:
	default:
		return nil, domain.ErrInvalidInput
	}

	prefs, err := uc.prefsRepo.Get(companyID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = entity.DefaultPreferencias(companyID)
	}
	products, err := uc.productRepo.ListActive(companyID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	items := make([]*PositionItem, 0, len(products))
	for _, p := range products {
		if q.Q != "" && !estoque.MatchesFold(p.Name, q.Q) && !estoque.MatchesFold(p.SKU, q.Q) {
			continue
		}
		min := estoque.EffectiveMinStock(p, prefs)
		item := &PositionItem{
			Produto:      p,
			EffectiveMin: min,
			Situacao:     estoque.Classify(p.CurrentStock, min),
			ExpiringSoon: estoque.ExpiringSoon(p, prefs, now, q.Days),
		}
		switch q.Filter {
		case FilterBelowMin:
			if item.Situacao != estoque.SituacaoAbaixoMinimo {
				continue
			}
		case FilterOutOfStock:
			if item.Situacao != estoque.SituacaoRuptura {
				continue
			}
		case FilterExpireSoon:
			if !item.ExpiringSoon {
				continue
			}
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return estoque.Fold(items[i].Produto.Name) < estoque.Fold(items[j].Produto.Name)
	})
	return items, nil
}
