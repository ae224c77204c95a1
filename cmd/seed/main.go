// seed popula o banco com uma empresa de demonstração (pet shop), produtos,
// preferências e algumas movimentações de exemplo, e imprime um token JWT de
// desenvolvimento para testar a API.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/internal/domain/entity"
	"github.com/aupet/petshop-api/internal/infrastructure/postgres"
	"github.com/aupet/petshop-api/pkg/config"
	"github.com/aupet/petshop-api/pkg/jwt"
	"github.com/aupet/petshop-api/pkg/logger"
)

type seedProduct struct {
	sku      string
	name     string
	unit     string
	baseline string
	minStock string
	expiry   int // dias a partir de hoje; 0 = sem validade
}

var demoProducts = []seedProduct{
	{sku: "RAC-PRE-15", name: "Ração Premium Cães Adultos 15kg", unit: "un", baseline: "24", minStock: "5", expiry: 120},
	{sku: "RAC-GAT-10", name: "Ração Gatos Castrados 10kg", unit: "un", baseline: "12", minStock: "4", expiry: 90},
	{sku: "ARE-SAN-4", name: "Areia Sanitária 4kg", unit: "un", baseline: "30", minStock: "10"},
	{sku: "SHP-ANT-500", name: "Shampoo Antipulgas 500ml", unit: "un", baseline: "8", minStock: "3", expiry: 25},
	{sku: "PET-OSS-KG", name: "Osso Bovino Defumado", unit: "kg", baseline: "6.5", minStock: "2"},
	{sku: "COL-GDE", name: "Coleira Ajustável Grande", unit: "un", baseline: "0", minStock: "2"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	prefsRepo := postgres.NewPreferencesRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	registerUC := estoque.NewRegisterMovementUseCase(txRunner)

	companyID := uuid.NewString()
	userID := uuid.NewString()
	now := time.Now()

	if err := prefsRepo.Upsert(&entity.PreferenciasEstoque{
		CompanyID:           companyID,
		ConsiderarValidade:  true,
		EstoqueMinimoPadrao: decimal.NewFromInt(3),
		ValidadeAlertaDias:  30,
		UpdatedAt:           now,
	}); err != nil {
		log.Fatal().Err(err).Msg("gravar preferências")
	}

	products := make([]*entity.Produto, 0, len(demoProducts))
	for _, sp := range demoProducts {
		baseline := decimal.RequireFromString(sp.baseline)
		p := &entity.Produto{
			ID:           uuid.NewString(),
			CompanyID:    companyID,
			SKU:          sp.sku,
			Name:         sp.name,
			Unit:         sp.unit,
			Active:       true,
			CurrentStock: baseline,
			Baseline:     baseline,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if sp.minStock != "" {
			min := decimal.RequireFromString(sp.minStock)
			p.MinStock = &min
		}
		if sp.expiry > 0 {
			exp := now.AddDate(0, 0, sp.expiry)
			p.ExpiryDate = &exp
		}
		if err := productRepo.Create(p); err != nil {
			log.Fatal().Err(err).Str("sku", sp.sku).Msg("criar produto")
		}
		products = append(products, p)
		log.Info().Str("sku", p.SKU).Str("saldo", p.CurrentStock.String()).Msg("produto criado")
	}

	// Movimentações de exemplo via caso de uso, para passar pelas mesmas
	// validações e travas da API.
	custo := decimal.RequireFromString("112.90")
	samples := []estoque.MovementInput{
		{
			CompanyID: companyID, UserID: userID, ProductID: products[0].ID,
			Tipo: entity.MovementTypeEntrada, Quantity: decimal.NewFromInt(10),
			UnitCost: &custo, Documento: "NF-000123",
		},
		{
			CompanyID: companyID, UserID: userID, ProductID: products[0].ID,
			Tipo: entity.MovementTypeSaida, Quantity: decimal.NewFromInt(3),
			Motivo: "VENDA", Documento: "PDV-5501",
		},
		{
			CompanyID: companyID, UserID: userID, ProductID: products[3].ID,
			Tipo: entity.MovementTypeSaida, Quantity: decimal.NewFromInt(1),
			Motivo: "PERDA", Observacao: "frasco danificado no transporte",
		},
	}
	for _, in := range samples {
		res, err := registerUC.Register(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("tipo", in.Tipo).Msg("registrar movimentação")
		}
		log.Info().
			Str("tipo", res.Movement.Tipo).
			Str("sku", res.Product.SKU).
			Str("saldo", res.Product.CurrentStock.String()).
			Msg("movimentação registrada")
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "dev-secret"
	}
	token, err := jwt.Generate(secret, userID, companyID, cfg.JWT.Issuer, 24*60)
	if err != nil {
		log.Fatal().Err(err).Msg("gerar token de desenvolvimento")
	}

	fmt.Fprintf(os.Stdout, "\ncompany_id: %s\nuser_id:    %s\n\nToken de desenvolvimento (24h):\nAuthorization: Bearer %s\n", companyID, userID, token)
}
