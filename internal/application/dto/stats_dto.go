package dto

import "github.com/shopspring/decimal"

// DailyActivityDTO conteo de actividades de un día del período reciente.
// Los días sin actividad aparecen con Count 0.
type DailyActivityDTO struct {
	Date  string `json:"date"` // formato 2006-01-02
	Count int    `json:"count"`
}

// StatsDTO respuesta de GET /api/stats: el resumen del dashboard calculado
// sobre el snapshot de leads visible para el actor.
type StatsDTO struct {
	TotalLeads     int                `json:"totalLeads"`
	ActiveLeads    int                `json:"activeLeads"`    // estado fuera de {won, lost}
	ConvertedLeads int                `json:"convertedLeads"` // estado won
	TotalValue     decimal.Decimal    `json:"totalValue"`     // suma de value (null cuenta 0)
	LeadsByStatus  map[string]int     `json:"leadsByStatus"`
	LeadsBySource  map[string]int     `json:"leadsBySource"`
	RecentActivity []DailyActivityDTO `json:"recentActivity"` // 7 días en orden cronológico
}
