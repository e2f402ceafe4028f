package dto

import "github.com/shopspring/decimal"

// MonthTrendDTO punto del histórico de 6 meses. El bucket se determina por
// mes de creación del lead; Won cuenta los de ese bucket actualmente ganados
// (un lead ganado en otro mes se atribuye igualmente a su mes de creación).
type MonthTrendDTO struct {
	Month string `json:"month"` // etiqueta corta, ej: "Mar"
	Total int    `json:"total"`
	Won   int    `json:"won"`
}

// UserPerformanceDTO rollup por dueño. Solo usuarios con >= 1 lead propio.
type UserPerformanceDTO struct {
	Name     string          `json:"name"`
	Leads    int             `json:"leads"`
	Won      int             `json:"won"`
	WonValue decimal.Decimal `json:"wonValue"` // valor total de sus leads ganados
}

// StatusSliceDTO porción de la distribución por estado.
type StatusSliceDTO struct {
	Label      string          `json:"label"` // estado capitalizado, ej: "Qualified"
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// AnalyticsDTO respuesta de GET /api/analytics (solo admin/manager).
type AnalyticsDTO struct {
	ConversionRate     decimal.Decimal      `json:"conversionRate"` // 100 * won / total
	AvgDealSize        decimal.Decimal      `json:"avgDealSize"`    // media de value sobre ganados
	AvgTimeToClose     decimal.Decimal      `json:"avgTimeToClose"` // días, aproximado con updatedAt
	LeadTrend          []MonthTrendDTO      `json:"leadTrend"`
	PerformanceByUser  []UserPerformanceDTO `json:"performanceByUser"`
	StatusDistribution []StatusSliceDTO     `json:"statusDistribution"`
}
