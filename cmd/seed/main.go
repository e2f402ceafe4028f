// seed carga datos de demostración: un usuario por rol y un puñado de leads
// con actividades, suficiente para recorrer el dashboard y el pipeline.
//
// Uso: go run ./cmd/seed
// Idempotencia básica: si el usuario admin ya existe, no hace nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/CRM-api/internal/domain/entity"
	"github.com/jhoicas/CRM-api/internal/infrastructure/postgres"
	"github.com/jhoicas/CRM-api/pkg/config"
)

const demoPassword = "demo1234"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fail("aplicar esquema: %v", err)
	}

	users := postgres.NewUserRepository(pool)
	leads := postgres.NewLeadRepository(pool)
	activities := postgres.NewActivityRepository(pool)

	if existing, _ := users.GetByUsername(ctx, "admin"); existing != nil {
		fmt.Println("los datos de demostración ya existen, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de password: %v", err)
	}

	demoUsers := []*entity.User{
		{Username: "admin", Email: "admin@crm.local", FullName: "Ana Administradora", Role: entity.RoleAdmin},
		{Username: "gerente", Email: "gerente@crm.local", FullName: "Gabriel Gerente", Role: entity.RoleManager},
		{Username: "vendedor1", Email: "vendedor1@crm.local", FullName: "Valeria Vendedora", Role: entity.RoleSalesExecutive},
		{Username: "vendedor2", Email: "vendedor2@crm.local", FullName: "Víctor Vendedor", Role: entity.RoleSalesExecutive},
	}
	for _, u := range demoUsers {
		u.PasswordHash = string(hash)
		if err := users.Create(ctx, u); err != nil {
			fail("crear usuario %s: %v", u.Username, err)
		}
	}
	manager := demoUsers[1]
	seller1, seller2 := demoUsers[2], demoUsers[3]

	demoLeads := []*entity.Lead{
		{CompanyName: "Acme Corp", ContactName: "Carlos Pérez", Email: "carlos@acme.test", Phone: "+57 300 111 2233",
			Status: entity.StatusNegotiation, Source: "website", Value: money("45000"), OwnerID: seller1.ID},
		{CompanyName: "Globex SAS", ContactName: "Marta Díaz", Email: "marta@globex.test",
			Status: entity.StatusQualified, Source: "referral", Value: money("12500.50"), OwnerID: seller1.ID},
		{CompanyName: "Initech", ContactName: "Pedro Gómez", Email: "pedro@initech.test",
			Status: entity.StatusWon, Source: "cold_call", Value: money("80000"), OwnerID: seller2.ID},
		{CompanyName: "Umbrella Ltda", ContactName: "Lucía Torres", Email: "lucia@umbrella.test",
			Status: entity.StatusLost, Source: "website", OwnerID: seller2.ID},
		{CompanyName: "Soylent Foods", ContactName: "Julián Ruiz", Email: "julian@soylent.test",
			Status: entity.StatusNew, Source: "other", OwnerID: manager.ID},
	}
	for _, l := range demoLeads {
		if err := leads.Create(ctx, l); err != nil {
			fail("crear lead %s: %v", l.CompanyName, err)
		}
	}

	demoActivities := []*entity.Activity{
		{LeadID: demoLeads[0].ID, UserID: seller1.ID, Type: entity.ActivityCall,
			Subject: "Llamada de descubrimiento", Notes: "Interesados en el plan anual."},
		{LeadID: demoLeads[0].ID, UserID: manager.ID, Type: entity.ActivityMeeting,
			Subject: "Demo del producto"},
		{LeadID: demoLeads[1].ID, UserID: seller1.ID, Type: entity.ActivityEmail,
			Subject: "Envío de propuesta"},
		{LeadID: demoLeads[2].ID, UserID: seller2.ID, Type: entity.ActivityNote,
			Subject: "Contrato firmado", Notes: "Cierre en " + time.Now().Format("2006-01-02") + "."},
	}
	for _, a := range demoActivities {
		if err := activities.Create(ctx, a); err != nil {
			fail("crear actividad %q: %v", a.Subject, err)
		}
	}

	fmt.Printf("listo: %d usuarios, %d leads, %d actividades (password de demo: %s)\n",
		len(demoUsers), len(demoLeads), len(demoActivities), demoPassword)
}

func money(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
