package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CRM-api/internal/application/analytics"
	"github.com/jhoicas/CRM-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// now fija el "hoy" de los cálculos: 15 de marzo, mediodía UTC.
var now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func lead(status, source string, ownerID int64, value string, createdAt, updatedAt time.Time) *entity.Lead {
	l := &entity.Lead{
		Status:    status,
		Source:    source,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if value != "" {
		l.Value = decimal.NullDecimal{Decimal: decimal.RequireFromString(value), Valid: true}
	}
	return l
}

func activityOn(day time.Time) *entity.Activity {
	return &entity.Activity{CreatedAt: day}
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeStats
// ──────────────────────────────────────────────────────────────────────────────

// Snapshot vacío: todos los totales en cero pero la serie de actividad
// reciente igual trae los 7 días, con ceros explícitos.
func TestComputeStats_SnapshotVacio(t *testing.T) {
	stats := analytics.ComputeStats(nil, nil, now)

	assert.Equal(t, 0, stats.TotalLeads)
	assert.Equal(t, 0, stats.ActiveLeads)
	assert.Equal(t, 0, stats.ConvertedLeads)
	assert.True(t, stats.TotalValue.IsZero())
	assert.Empty(t, stats.LeadsByStatus)
	assert.Empty(t, stats.LeadsBySource)

	require.Len(t, stats.RecentActivity, 7)
	assert.Equal(t, "2025-03-09", stats.RecentActivity[0].Date)
	assert.Equal(t, "2025-03-15", stats.RecentActivity[6].Date)
	for _, day := range stats.RecentActivity {
		assert.Equal(t, 0, day.Count)
	}
}

func TestComputeStats_TotalesYDesgloses(t *testing.T) {
	leads := []*entity.Lead{
		lead(entity.StatusNew, "website", 1, "1000", now, now),
		lead(entity.StatusNegotiation, "website", 1, "2500.50", now, now),
		lead(entity.StatusWon, "referral", 2, "5000", now, now),
		lead(entity.StatusLost, "cold_call", 2, "", now, now),
	}

	stats := analytics.ComputeStats(leads, nil, now)

	assert.Equal(t, 4, stats.TotalLeads)
	// won y lost quedan fuera de activos
	assert.Equal(t, 2, stats.ActiveLeads)
	assert.Equal(t, 1, stats.ConvertedLeads)
	// el value nulo cuenta como cero
	assert.Equal(t, "8500.5", stats.TotalValue.String())

	assert.Equal(t, map[string]int{"new": 1, "negotiation": 1, "won": 1, "lost": 1}, stats.LeadsByStatus)
	assert.Equal(t, map[string]int{"website": 2, "referral": 1, "cold_call": 1}, stats.LeadsBySource)
}

// La serie reciente cubre hoy y los 6 días anteriores; lo que cae fuera de la
// ventana no aparece por ningún lado.
func TestComputeStats_ActividadRecienteSieteDias(t *testing.T) {
	activities := []*entity.Activity{
		activityOn(now),                      // hoy
		activityOn(now),                      // hoy, segunda
		activityOn(now.AddDate(0, 0, -3)),    // hace 3 días
		activityOn(now.AddDate(0, 0, -6)),    // borde de la ventana
		activityOn(now.AddDate(0, 0, -7)),    // fuera de la ventana
		activityOn(now.AddDate(0, 0, -30)),   // muy vieja
	}

	stats := analytics.ComputeStats(nil, activities, now)

	require.Len(t, stats.RecentActivity, 7)
	byDate := make(map[string]int, 7)
	total := 0
	for _, d := range stats.RecentActivity {
		byDate[d.Date] = d.Count
		total += d.Count
	}
	assert.Equal(t, 2, byDate["2025-03-15"])
	assert.Equal(t, 1, byDate["2025-03-12"])
	assert.Equal(t, 1, byDate["2025-03-09"])
	assert.Equal(t, 4, total, "las actividades fuera de la ventana no deben contarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeAnalytics
// ──────────────────────────────────────────────────────────────────────────────

// Sin leads no hay divisiones: todas las tasas quedan en cero y el trend
// igual trae sus 6 meses vacíos.
func TestComputeAnalytics_SnapshotVacio(t *testing.T) {
	out := analytics.ComputeAnalytics(nil, nil, now)

	assert.True(t, out.ConversionRate.IsZero())
	assert.True(t, out.AvgDealSize.IsZero())
	assert.True(t, out.AvgTimeToClose.IsZero())
	assert.Empty(t, out.PerformanceByUser)
	assert.Empty(t, out.StatusDistribution)

	require.Len(t, out.LeadTrend, 6)
	assert.Equal(t, "Oct", out.LeadTrend[0].Month)
	assert.Equal(t, "Mar", out.LeadTrend[5].Month)
}

func TestComputeAnalytics_TasasDeConversion(t *testing.T) {
	created := now.Add(-48 * time.Hour)
	leads := []*entity.Lead{
		lead(entity.StatusWon, "website", 1, "1000", created, now),   // cerró en 2 días
		lead(entity.StatusWon, "website", 1, "3000", created, now),   // cerró en 2 días
		lead(entity.StatusNew, "website", 1, "9999", now, now),
		lead(entity.StatusLost, "referral", 2, "", now, now),
	}

	out := analytics.ComputeAnalytics(leads, nil, now)

	// 2 ganados de 4 => 50.0%
	assert.Equal(t, "50", out.ConversionRate.String())
	// media solo sobre los ganados: (1000+3000)/2
	assert.Equal(t, "2000", out.AvgDealSize.String())
	// updatedAt - createdAt = 48h = 2 días en ambos
	assert.Equal(t, "2", out.AvgTimeToClose.String())
}

// El trend agrupa por mes de creación: un lead ganado hoy pero creado hace
// dos meses suma al bucket de su mes de origen.
func TestComputeAnalytics_TrendPorMesDeCreacion(t *testing.T) {
	twoMonthsAgo := now.AddDate(0, -2, 0)
	leads := []*entity.Lead{
		lead(entity.StatusWon, "website", 1, "100", twoMonthsAgo, now),
		lead(entity.StatusNew, "website", 1, "", now, now),
		lead(entity.StatusNew, "website", 1, "", now.AddDate(0, -7, 0), now), // fuera de la ventana
	}

	out := analytics.ComputeAnalytics(leads, nil, now)

	require.Len(t, out.LeadTrend, 6)
	jan := out.LeadTrend[3] // Oct Nov Dic Ene Feb Mar
	assert.Equal(t, "Jan", jan.Month)
	assert.Equal(t, 1, jan.Total)
	assert.Equal(t, 1, jan.Won)

	mar := out.LeadTrend[5]
	assert.Equal(t, 1, mar.Total)
	assert.Equal(t, 0, mar.Won)
}

// El rollup por dueño omite usuarios sin leads y respeta el orden de la
// lista de usuarios recibida.
func TestComputeAnalytics_RendimientoPorUsuario(t *testing.T) {
	users := []*entity.User{
		{ID: 2, FullName: "Valeria Vendedora"},
		{ID: 1, FullName: "Gabriel Gerente"},
		{ID: 9, FullName: "Sin Leads"},
	}
	leads := []*entity.Lead{
		lead(entity.StatusWon, "website", 2, "5000", now, now),
		lead(entity.StatusWon, "website", 2, "", now, now), // ganado sin valor
		lead(entity.StatusNew, "website", 2, "700", now, now),
		lead(entity.StatusLost, "referral", 1, "123", now, now),
	}

	out := analytics.ComputeAnalytics(leads, users, now)

	require.Len(t, out.PerformanceByUser, 2)
	assert.Equal(t, "Valeria Vendedora", out.PerformanceByUser[0].Name)
	assert.Equal(t, 3, out.PerformanceByUser[0].Leads)
	assert.Equal(t, 2, out.PerformanceByUser[0].Won)
	assert.Equal(t, "5000", out.PerformanceByUser[0].WonValue.String())

	assert.Equal(t, "Gabriel Gerente", out.PerformanceByUser[1].Name)
	assert.Equal(t, 0, out.PerformanceByUser[1].Won)
}

// La distribución sale en el orden canónico del pipeline, con etiquetas
// capitalizadas y porcentajes a un decimal.
func TestComputeAnalytics_DistribucionPorEstado(t *testing.T) {
	leads := []*entity.Lead{
		lead(entity.StatusWon, "website", 1, "", now, now),
		lead(entity.StatusNew, "website", 1, "", now, now),
		lead(entity.StatusNew, "website", 1, "", now, now),
	}

	out := analytics.ComputeAnalytics(leads, nil, now)

	require.Len(t, out.StatusDistribution, 2)
	assert.Equal(t, "New", out.StatusDistribution[0].Label)
	assert.Equal(t, 2, out.StatusDistribution[0].Count)
	assert.Equal(t, "66.7", out.StatusDistribution[0].Percentage.String())

	assert.Equal(t, "Won", out.StatusDistribution[1].Label)
	assert.Equal(t, "33.3", out.StatusDistribution[1].Percentage.String())
}
