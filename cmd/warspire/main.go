package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valtyr/warspire/internal/api"
	"github.com/valtyr/warspire/internal/constants"
	"github.com/valtyr/warspire/internal/logging"
	"github.com/valtyr/warspire/internal/service"
)

func main() {
	srv := loadServerOrExit()

	// Catalog path may be provided via WARSPIRE_CONFIG; an empty path loads
	// the built-in default tables.
	catalog := loadCatalogOrExit(srv.CatalogPath)
	repo := createRepositoryOrExit(srv.DBPath)

	missions := service.NewMissionService(repo, catalog)
	handler := api.NewMissionHandler(missions)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.POST(constants.RouteBattles, handler.Battle)
		apiRoutes.POST(constants.RouteSpyIntel, handler.SpyIntel)
		apiRoutes.POST(constants.RouteSpyInfiltrate, handler.SpyInfiltrate)
		apiRoutes.POST(constants.RouteSpyAssassinate, handler.SpyAssassinate)

		apiRoutes.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		apiRoutes.GET(constants.RoutePlayerMissions, handler.ListMissionLogs)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)
	}

	router.GET(constants.RouteHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: srv.Address})
	if err := router.Run(srv.Address); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
