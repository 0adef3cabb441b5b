package main

import (
	"os"
	"time"

	"github.com/GiovanniPerreon/gacha-arena/internal/api"
	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/game"
	"github.com/GiovanniPerreon/gacha-arena/internal/logging"
	"github.com/GiovanniPerreon/gacha-arena/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Catalog configuration is required. Path may be provided via
	// ARENA_CONFIG or defaults to ./arena_config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via ARENA_DB. Default to a
	// `data/` directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = constants.DefaultDBPath
	}
	repo := createRepositoryOrExit(dbPath)

	catalog := game.NewCatalog(cfg.Units, cfg.StarRates)
	arena := service.NewArena(repo, catalog, cfg.SummonCost, time.Duration(cfg.BattleTimeoutSeconds)*time.Second)
	handler := api.NewArenaHandler(arena)

	startExpiryScanner(arena)

	router := gin.Default()

	router.GET(constants.RouteHome, api.Home)
	router.GET(constants.RouteStatus, api.Status)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)

		apiRoutes.GET(constants.RouteUnits, handler.ListUnits)
		apiRoutes.GET(constants.RouteUnitByName, handler.GetUnit)

		apiRoutes.GET(constants.RouteInventory, handler.GetInventory)
		apiRoutes.GET(constants.RouteInventories, handler.ListInventories)
		apiRoutes.GET(constants.RouteActiveUnit, handler.GetActiveUnit)
		apiRoutes.POST(constants.RouteActiveUnit, handler.SetActiveUnit)
		apiRoutes.POST(constants.RouteSummon, handler.Summon)

		apiRoutes.GET(constants.RouteWallet, handler.GetWallet)
		apiRoutes.POST(constants.RouteFarm, handler.Farm)
		apiRoutes.POST(constants.RouteGamble, handler.Gamble)
		apiRoutes.POST(constants.RouteSlots, handler.Slots)
		apiRoutes.GET(constants.RoutePrestige, handler.PrestigePreview)
		apiRoutes.POST(constants.RoutePrestige, handler.Prestige)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		apiRoutes.GET(constants.RouteBoss, handler.GetBoss)
		apiRoutes.POST(constants.RouteBattles, handler.StartBattle)
		apiRoutes.GET(constants.RouteBattleState, handler.GetBattleState)
		apiRoutes.POST(constants.RouteBattleAttack, handler.Attack)
		apiRoutes.POST(constants.RouteBattleSpell, handler.CastSpell)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
