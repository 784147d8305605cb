package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

// CatalogHandler serves read-only reference data: the card catalog,
// leaderboard and per-player stats.
type CatalogHandler struct {
	repo storage.Repository
}

func NewCatalogHandler(repo storage.Repository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// GetCards returns the card catalog with config-supplied stats.
func (h *CatalogHandler) GetCards(c *gin.Context) {
	cards, err := h.repo.GetCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// Leaderboard returns the top players ordered by wins.
func (h *CatalogHandler) Leaderboard(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	profiles, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// PlayerStats returns the stats of one player by uuid; players look up their
// own uuid from the session.
func (h *CatalogHandler) PlayerStats(c *gin.Context) {
	playerUUID := c.Query("player_uuid")
	if playerUUID == "" {
		playerUUID, _ = playerIdentity(c)
	}
	if _, err := uuid.Parse(playerUUID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	profile, err := h.repo.GetStatsByUUID(playerUUID)
	if err != nil || profile == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, profile)
}
