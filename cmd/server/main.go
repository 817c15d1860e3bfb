// Package main is the entry point for the packing report HTTP service.
//
// @title           Packing Report API
// @version         1.0.0
// @description     Analyzes packing list workbooks and returns an analysis workbook
// @description     with a size summary, a lot breakdown and a production location breakdown.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/packing-report
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @tag.name        Analysis
// @tag.description Packing list analysis
//
// @tag.name        Size order
// @tag.description Canonical size order used by the summary
//
// @tag.name        History
// @tag.description Past analyses
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/packing-report/docs" // swagger docs

	"github.com/guttosm/packing-report/config"
	"github.com/guttosm/packing-report/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router, cleanup := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server)

	err := server.Run()
	cleanup()
	if err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
