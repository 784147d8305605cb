package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

const sessionTTL = 24 * time.Hour

type AuthHandler struct {
	repo storage.Repository
}

func NewAuthHandler(repo storage.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type guestLoginRequest struct {
	Name string `json:"name"`
}

// GuestLogin creates an anonymous player identity and issues a session
// token. Returning players keep their uuid by sending it back in the
// optional `player_uuid` field.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	var req struct {
		guestLoginRequest
		PlayerUUID string `json:"player_uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	name := req.Name
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNameRequired})
		return
	}
	if len(name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNameExceeds})
		return
	}

	playerUUID := req.PlayerUUID
	if playerUUID == "" {
		playerUUID = uuid.NewString()
	} else if _, err := uuid.Parse(playerUUID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	if err := h.repo.UpsertProfile(playerUUID, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	token, err := createSessionToken(playerUUID, name, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"player_uuid": playerUUID,
		"name":        name,
	})
}
