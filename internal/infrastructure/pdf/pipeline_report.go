// Package pdf genera el reporte del pipeline de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Empresa | Contacto | Estado | Valor | Dueño          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: # leads / valor total del pipeline                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CRM-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PipelineReportGenerator genera el PDF del pipeline usando Maroto v2.
type PipelineReportGenerator struct{}

// NewPipelineReportGenerator construye el generador.
func NewPipelineReportGenerator() *PipelineReportGenerator { return &PipelineReportGenerator{} }

// Generate genera el PDF del pipeline y devuelve sus bytes. Los leads llegan
// ya filtrados por la visibilidad del actor.
func (g *PipelineReportGenerator) Generate(leads []dto.LeadResponse, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de pipeline", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, l := range leads {
		m.AddRows(leadRow(l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(leads))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Pipeline de ventas", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	return row.New(7).Add(
		col.New(3).Add(text.New("Empresa", header)),
		col.New(3).Add(text.New("Contacto", header)),
		col.New(2).Add(text.New("Estado", header)),
		col.New(2).Add(text.New("Valor", header)),
		col.New(2).Add(text.New("Dueño", header)),
	)
}

func leadRow(l dto.LeadResponse) core.Row {
	cell := props.Text{Size: 8}
	value := "-"
	if l.Value != nil {
		value = l.Value.StringFixed(2)
	}
	owner := "-"
	if l.Owner != nil {
		owner = l.Owner.FullName
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(l.CompanyName, cell)),
		col.New(3).Add(text.New(l.ContactName, cell)),
		col.New(2).Add(text.New(l.Status, cell)),
		col.New(2).Add(text.New(value, cell)),
		col.New(2).Add(text.New(owner, cell)),
	)
}

func totalsRow(leads []dto.LeadResponse) core.Row {
	total := decimal.Zero
	for _, l := range leads {
		if l.Value != nil {
			total = total.Add(*l.Value)
		}
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 9}
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("%d leads", len(leads)), bold)),
		col.New(4).Add(text.New("Total: "+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
		})),
	)
}
