package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/idl3o/tasern-3-sub001/internal/api"
	"github.com/idl3o/tasern-3-sub001/internal/config"
	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
	"github.com/idl3o/tasern-3-sub001/internal/service"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

func runServer(repo storage.Repository, cfg *config.LoadedConfig) {
	startTimeoutScanner(repo, cfg.ActionTimeout, uuid.NewString())

	battles := api.NewBattleHandler(repo, cfg)
	catalog := api.NewCatalogHandler(repo)
	auth := api.NewAuthHandler(repo)

	router := gin.Default()
	router.GET(constants.RouteHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})
	router.GET(constants.RouteVersion, api.Version)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.POST(constants.RouteAuthGuest, auth.GuestLogin)
		apiRoutes.GET(constants.RouteCards, catalog.GetCards)
		apiRoutes.GET(constants.RouteLeaderboard, catalog.Leaderboard)
		apiRoutes.GET(constants.RouteBattles, battles.ListOpenBattles)
		apiRoutes.GET(constants.RouteBattleWatch, battles.WatchBattle)
		apiRoutes.GET(constants.RouteBattleLog, battles.GetBattleLog)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, catalog.PlayerStats)
		protected.POST(constants.RouteBattles, battles.CreateBattle)
		protected.POST(constants.RouteBattlesJoin, battles.JoinBattle)
		protected.GET(constants.RouteBattleByCode, battles.GetBattle)
		protected.POST(constants.RouteBattleAction, battles.SubmitAction)
		protected.POST(constants.RouteBattleSurrend, battles.Surrender)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

// startTimeoutScanner claims battles whose action deadline passed and
// delegates handling to service.HandleTimedOutBattle.
func startTimeoutScanner(repo storage.Repository, actionTimeout time.Duration, workerID string) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			ids, err := repo.ClaimTimedOutBattleIDs(now, 20, 2*time.Minute, workerID)
			if err != nil {
				logging.Error("timeout scanner failed to list ids", err, nil)
				continue
			}
			// process each id sequentially (keeps DB safe under SQLite)
			for _, id := range ids {
				rec, err := repo.GetBattleByID(id)
				if err != nil || rec == nil {
					continue
				}
				if err := service.HandleTimedOutBattle(repo, rec, actionTimeout); err != nil {
					logging.Error("failed to resolve timed-out battle", err, logging.Fields{constants.LogFieldBattleCode: rec.JoinCode})
				}
			}
		}
	}()
}
