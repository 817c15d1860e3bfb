// Package app wires configuration, storage, services and the HTTP router.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/config"
	"github.com/guttosm/packing-report/internal/http"
)

// InitializeApp creates and wires all application dependencies. The
// returned cleanup stops background workers and closes the database; call
// it after the server has shut down.
func InitializeApp(cfg config.Config) (*gin.Engine, func()) {
	InitializeLogger()

	db := InitializeDatabase(cfg.Database, DefaultSizeOrder(cfg.Report))
	services := InitializeServices(cfg, db)
	routerComponents := InitializeRouter(services, db, cfg)

	cleanup := func() {
		services.Close()
		db.Close()
	}
	return http.NewRouter(routerComponents.HealthHandler, routerComponents.Config), cleanup
}
