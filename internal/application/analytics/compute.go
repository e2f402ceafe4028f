// Package analytics calcula las vistas derivadas del dashboard y los
// reportes. Las funciones de cálculo son puras: reciben un snapshot ya
// filtrado por la visibilidad del actor y no tocan la base de datos.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/CRM-api/internal/application/dto"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

const (
	recentDays  = 7 // ventana de actividad reciente (incluye hoy)
	trendMonths = 6 // ventana del histórico de leads
)

var (
	hundred    = decimal.NewFromInt(100)
	hoursInDay = decimal.NewFromInt(24)
	titleCaser = cases.Title(language.English)
)

// ComputeStats construye el resumen del dashboard sobre el snapshot dado.
// recentActivity cubre los últimos 7 días calendario (hoy incluido, frontera
// de día local del servidor) en orden cronológico, con ceros explícitos.
func ComputeStats(leads []*entity.Lead, activities []*entity.Activity, now time.Time) *dto.StatsDTO {
	stats := &dto.StatsDTO{
		TotalLeads:    len(leads),
		TotalValue:    decimal.Zero,
		LeadsByStatus: make(map[string]int),
		LeadsBySource: make(map[string]int),
	}

	for _, l := range leads {
		if !entity.IsClosed(l.Status) {
			stats.ActiveLeads++
		}
		if l.Status == entity.StatusWon {
			stats.ConvertedLeads++
		}
		if l.Value.Valid {
			stats.TotalValue = stats.TotalValue.Add(l.Value.Decimal)
		}
		stats.LeadsByStatus[l.Status]++
		stats.LeadsBySource[l.Source]++
	}

	counts := make(map[string]int, recentDays)
	for _, a := range activities {
		counts[a.CreatedAt.Format("2006-01-02")]++
	}
	stats.RecentActivity = make([]dto.DailyActivityDTO, 0, recentDays)
	for i := recentDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		stats.RecentActivity = append(stats.RecentActivity, dto.DailyActivityDTO{
			Date:  day,
			Count: counts[day],
		})
	}
	return stats
}

// ComputeAnalytics construye las métricas de conversión y los rollups.
//
// Aproximaciones conocidas, conservadas por compatibilidad:
//   - avgTimeToClose usa updatedAt - createdAt; no existe un closedAt
//     dedicado, así que una edición posterior a ganar el lead corre la métrica.
//   - leadTrend agrupa por mes de creación: un lead creado en enero y ganado
//     en marzo cuenta como ganado del bucket de enero.
func ComputeAnalytics(leads []*entity.Lead, users []*entity.User, now time.Time) *dto.AnalyticsDTO {
	out := &dto.AnalyticsDTO{
		ConversionRate: decimal.Zero,
		AvgDealSize:    decimal.Zero,
		AvgTimeToClose: decimal.Zero,
	}

	var (
		wonCount  int
		wonValue  decimal.Decimal
		closeDays decimal.Decimal
	)
	for _, l := range leads {
		if l.Status != entity.StatusWon {
			continue
		}
		wonCount++
		if l.Value.Valid {
			wonValue = wonValue.Add(l.Value.Decimal)
		}
		hours := decimal.NewFromFloat(l.UpdatedAt.Sub(l.CreatedAt).Hours())
		closeDays = closeDays.Add(hours.Div(hoursInDay))
	}

	total := len(leads)
	if total > 0 {
		out.ConversionRate = decimal.NewFromInt(int64(wonCount)).Mul(hundred).
			Div(decimal.NewFromInt(int64(total))).Round(1)
	}
	if wonCount > 0 {
		wonN := decimal.NewFromInt(int64(wonCount))
		out.AvgDealSize = wonValue.Div(wonN).Round(2)
		out.AvgTimeToClose = closeDays.Div(wonN).Round(1)
	}

	out.LeadTrend = computeTrend(leads, now)
	out.PerformanceByUser = computePerformance(leads, users)
	out.StatusDistribution = computeDistribution(leads)
	return out
}

// computeTrend agrupa por mes de creación los últimos 6 meses calendario.
func computeTrend(leads []*entity.Lead, now time.Time) []dto.MonthTrendDTO {
	type bucket struct{ total, won int }
	buckets := make(map[string]*bucket, trendMonths)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	order := make([]time.Time, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		order = append(order, m)
		buckets[m.Format("2006-01")] = &bucket{}
	}

	for _, l := range leads {
		b, ok := buckets[l.CreatedAt.Format("2006-01")]
		if !ok {
			continue // fuera de la ventana
		}
		b.total++
		if l.Status == entity.StatusWon {
			b.won++
		}
	}

	trend := make([]dto.MonthTrendDTO, 0, trendMonths)
	for _, m := range order {
		b := buckets[m.Format("2006-01")]
		trend = append(trend, dto.MonthTrendDTO{
			Month: m.Format("Jan"),
			Total: b.total,
			Won:   b.won,
		})
	}
	return trend
}

// computePerformance agrega leads por dueño. Usuarios sin leads no aparecen.
// El orden sigue la lista de usuarios recibida (recientes primero).
func computePerformance(leads []*entity.Lead, users []*entity.User) []dto.UserPerformanceDTO {
	type rollup struct {
		leads, won int
		wonValue   decimal.Decimal
	}
	byOwner := make(map[int64]*rollup)
	for _, l := range leads {
		r, ok := byOwner[l.OwnerID]
		if !ok {
			r = &rollup{wonValue: decimal.Zero}
			byOwner[l.OwnerID] = r
		}
		r.leads++
		if l.Status == entity.StatusWon {
			r.won++
			if l.Value.Valid {
				r.wonValue = r.wonValue.Add(l.Value.Decimal)
			}
		}
	}

	out := make([]dto.UserPerformanceDTO, 0, len(byOwner))
	for _, u := range users {
		r, ok := byOwner[u.ID]
		if !ok {
			continue
		}
		out = append(out, dto.UserPerformanceDTO{
			Name:     u.FullName,
			Leads:    r.leads,
			Won:      r.won,
			WonValue: r.wonValue,
		})
	}
	return out
}

// computeDistribution arma la distribución por estado en el orden canónico
// del pipeline, solo con los estados presentes.
func computeDistribution(leads []*entity.Lead) []dto.StatusSliceDTO {
	counts := make(map[string]int)
	for _, l := range leads {
		counts[l.Status]++
	}
	total := len(leads)
	out := make([]dto.StatusSliceDTO, 0, len(counts))
	for _, status := range entity.LeadStatuses {
		n := counts[status]
		if n == 0 {
			continue
		}
		pct := decimal.NewFromInt(int64(n)).Mul(hundred).
			Div(decimal.NewFromInt(int64(total))).Round(1)
		out = append(out, dto.StatusSliceDTO{
			Label:      titleCaser.String(status),
			Count:      n,
			Percentage: pct,
		})
	}
	return out
}
