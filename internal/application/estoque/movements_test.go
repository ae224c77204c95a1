package estoque_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/internal/domain"
	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/domain/repository"
)

func movementsHarness(t *testing.T) (*harness, *estoque.MovementQueryUseCase) {
	t.Helper()
	h := newHarness()
	return h, estoque.NewMovementQueryUseCase(&memMovementRepo{store: h.store})
}

func TestMovements_OrdemCronologica(t *testing.T) {
	h, uc := movementsHarness(t)
	ctx := context.Background()
	p := h.seedProduct(t, "50", "")

	_, err := h.register.Register(ctx, h.entrada(p.ID, "10"))
	require.NoError(t, err)
	_, err = h.register.Register(ctx, h.saida(p.ID, "5", "VENDA"))
	require.NoError(t, err)
	_, err = h.register.Register(ctx, h.ajusteSaldo(p.ID, "40"))
	require.NoError(t, err)

	list, err := uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID})
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Seq estritamente crescente, na ordem em que os commits aconteceram.
	assert.Equal(t, entity.MovementTypeEntrada, list[0].Tipo)
	assert.Equal(t, entity.MovementTypeSaida, list[1].Tipo)
	assert.Equal(t, entity.MovementTypeAjuste, list[2].Tipo)
	assert.Less(t, list[0].Seq, list[1].Seq)
	assert.Less(t, list[1].Seq, list[2].Seq)

	// Cada lançamento carrega o retrato do saldo resultante.
	assert.True(t, list[0].ResultingBalance.Equal(dec("60")))
	assert.True(t, list[1].ResultingBalance.Equal(dec("55")))
	assert.True(t, list[2].ResultingBalance.Equal(dec("40")))

	// Dados do produto acompanham a linha.
	assert.Equal(t, p.SKU, list[0].ProductSKU)
	assert.NotEmpty(t, list[0].ProductName)
}

func TestMovements_FiltroPorTipo(t *testing.T) {
	h, uc := movementsHarness(t)
	ctx := context.Background()
	p := h.seedProduct(t, "50", "")

	_, err := h.register.Register(ctx, h.entrada(p.ID, "10"))
	require.NoError(t, err)
	_, err = h.register.Register(ctx, h.saida(p.ID, "5", "VENDA"))
	require.NoError(t, err)

	list, err := uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Tipo: entity.MovementTypeSaida})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementTypeSaida, list[0].Tipo)

	_, err = uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Tipo: "TRANSFERENCIA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovements_FiltroPorProdutoETexto(t *testing.T) {
	h, uc := movementsHarness(t)
	ctx := context.Background()
	racao := h.seedNamed(t, "Ração Premium", "RAC-1", "50", "")
	areia := h.seedNamed(t, "Areia Sanitária", "ARE-1", "50", "")

	in := h.entrada(racao.ID, "10")
	in.Documento = "NF-000123"
	_, err := h.register.Register(ctx, in)
	require.NoError(t, err)
	_, err = h.register.Register(ctx, h.entrada(areia.ID, "5"))
	require.NoError(t, err)

	list, err := uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, ProductID: racao.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, racao.ID, list[0].ProductID)

	// Texto casa com documento e com SKU do produto.
	list, err = uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Text: "nf-000123"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Text: "are-1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, areia.ID, list[0].ProductID)
}

func TestMovements_BuscaSemAcento(t *testing.T) {
	h, uc := movementsHarness(t)
	ctx := context.Background()
	racao := h.seedNamed(t, "Ração Premium Cães", "RAC-1", "50", "")

	in := h.entrada(racao.ID, "10")
	in.Documento = "NF-promoção-07"
	_, err := h.register.Register(ctx, in)
	require.NoError(t, err)

	// Nome, SKU e documento casam ignorando caixa e acentuação.
	for _, q := range []string{"racao", "RAÇÃO", "caes", "promocao"} {
		list, err := uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Text: q})
		require.NoError(t, err)
		assert.Len(t, list, 1, "busca %q", q)
	}

	list, err := uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Text: "areia"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMovements_Paginacao(t *testing.T) {
	h, uc := movementsHarness(t)
	ctx := context.Background()
	p := h.seedProduct(t, "1000", "")

	for i := 0; i < 5; i++ {
		_, err := h.register.Register(ctx, h.saida(p.ID, "1", "CONSUMO"))
		require.NoError(t, err)
	}

	page1, err := uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page2, err := uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, page1[1].Seq+1, page2[0].Seq)

	resto, err := uc.List(ctx, repository.MovementFilter{CompanyID: testCompanyID, Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, resto, 1)
}

func TestPreferences_GetDevolvePadraoQuandoNuncaSalvas(t *testing.T) {
	h := newHarness()
	uc := estoque.NewPreferencesUseCase(h.prefs)
	ctx := context.Background()

	prefs, err := uc.Get(ctx, testCompanyID)
	require.NoError(t, err)
	assert.False(t, prefs.ConsiderarValidade)
	assert.True(t, prefs.EstoqueMinimoPadrao.IsZero())
	assert.Equal(t, 30, prefs.ValidadeAlertaDias)
}

func TestPreferences_UpdateValida(t *testing.T) {
	h := newHarness()
	uc := estoque.NewPreferencesUseCase(h.prefs)
	ctx := context.Background()

	_, err := uc.Update(ctx, &entity.PreferenciasEstoque{
		CompanyID:           testCompanyID,
		EstoqueMinimoPadrao: dec("-1"),
		ValidadeAlertaDias:  30,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Update(ctx, &entity.PreferenciasEstoque{
		CompanyID:          testCompanyID,
		ValidadeAlertaDias: 400,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	saved, err := uc.Update(ctx, &entity.PreferenciasEstoque{
		CompanyID:           testCompanyID,
		ConsiderarValidade:  true,
		EstoqueMinimoPadrao: dec("3"),
		ValidadeAlertaDias:  15,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, saved.ValidadeAlertaDias)

	reread, err := uc.Get(ctx, testCompanyID)
	require.NoError(t, err)
	assert.True(t, reread.ConsiderarValidade)
	assert.True(t, reread.EstoqueMinimoPadrao.Equal(dec("3")))
}
