// app is the one-shot command line interface: recipe costing, schedule
// balances, AI roster drafts, and the APPCC daily summary.
//
// Usage:
//
//	app cost <recipe-code>
//	app menu [category]
//	app balance <employee-code> <from> <to>
//	app roster <week-start> [constraints]
//	app appcc <date>
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"gastrodesk/internal/adapters/cli"
	"gastrodesk/internal/ai"
	"gastrodesk/internal/app"
	"gastrodesk/internal/core"
	"gastrodesk/internal/db"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("Usage: app <cost|menu|balance|roster|appcc> ...")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	ingredientService := core.NewIngredientService(pool)
	settingsService := core.NewSettingsService(pool)
	recipeService := core.NewRecipeService(pool, ingredientService, settingsService)
	scheduleService := core.NewScheduleService(pool)
	appccService := core.NewAppccService(pool)
	reportingService := core.NewReportingService(pool)
	userService := core.NewUserService(pool)

	var agent ai.AgentService
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		agent = ai.NewAgent(apiKey)
	}

	svc := app.NewAppService(ingredientService, recipeService, scheduleService,
		appccService, reportingService, settingsService, userService, agent)

	cli.Run(ctx, svc, os.Args[1:])
}
