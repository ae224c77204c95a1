// Package pdf gera o relatório "Posição de Estoque" em A4: cabeçalho com data
// de emissão, tabela de produtos classificados e rodapé com contagem por
// situação.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appestoque "github.com/aupet/petshop-api/internal/application/estoque"
	"github.com/aupet/petshop-api/internal/domain/estoque"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 93}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// PositionReportGenerator gera o PDF da posição de estoque com Maroto v2.
type PositionReportGenerator struct{}

// NewPositionReportGenerator constrói o gerador.
func NewPositionReportGenerator() *PositionReportGenerator { return &PositionReportGenerator{} }

// Generate gera o PDF e devolve seus bytes.
func (g *PositionReportGenerator) Generate(_ context.Context, generatedAt time.Time, items []*appestoque.PositionItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Posição de Estoque", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título e data/hora de emissão.
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("POSIÇÃO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Emitido em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de produtos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Produto", 4, align.Left),
		h("Saldo", 2, align.Right),
		h("Mínimo", 2, align.Right),
		h("Situação", 2, align.Center),
	)
}

// tableDetailRows: uma linha por produto; situação fora do normal em destaque.
func tableDetailRows(items []*appestoque.PositionItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		situacaoColor := colorGray
		if it.Situacao != estoque.SituacaoNormal {
			situacaoColor = colorAlert
		}
		name := it.Produto.Name
		if it.ExpiringSoon {
			name += " (vence em breve)"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Produto.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.Produto.CurrentStock.StringFixed(2)+" "+it.Produto.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.EffectiveMin.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.Situacao,
				props.Text{Size: 7, Align: align.Center, Top: 1, Color: situacaoColor},
			)),
		))
	}
	return result
}

// summaryRow: totais por situação.
func summaryRow(items []*appestoque.PositionItem) core.Row {
	var ruptura, abaixo int
	for _, it := range items {
		switch it.Situacao {
		case estoque.SituacaoRuptura:
			ruptura++
		case estoque.SituacaoAbaixoMinimo:
			abaixo++
		}
	}
	resumo := fmt.Sprintf("%d produtos  |  %d em ruptura  |  %d abaixo do mínimo",
		len(items), ruptura, abaixo)
	return row.New(10).Add(
		col.New(12).Add(
			text.New(resumo, props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
	)
}
