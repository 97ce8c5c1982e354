package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	webAdapter "gastrodesk/internal/adapters/web"
	"gastrodesk/internal/ai"
	"gastrodesk/internal/app"
	"gastrodesk/internal/core"
	"gastrodesk/internal/db"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
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
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; AI drafting disabled")
	} else {
		agent = ai.NewAgent(apiKey)
	}

	svc := app.NewAppService(ingredientService, recipeService, scheduleService,
		appccService, reportingService, settingsService, userService, agent)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
