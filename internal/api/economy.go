package api

import (
	"net/http"

	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/service"

	"github.com/gin-gonic/gin"
)

// GetWallet returns the user's point balance and prestige level, creating
// the profile with the starting balance on first access.
func (h *ArenaHandler) GetWallet(c *gin.Context) {
	profile, err := h.arena.Wallet(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedWallet})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":    profile.UserID,
		"points":     profile.Points,
		"prestige":   profile.Prestige,
		"multiplier": profile.PointMultiplier(),
	})
}

type userRequest struct {
	UserID string `json:"user_id"`
}

// Farm grants a tiered random point gain.
func (h *ArenaHandler) Farm(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	gain, profile, err := h.arena.Farm(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gain": gain, "points": profile.Points})
}

type GambleRequest struct {
	UserID string `json:"user_id"`
	Amount int    `json:"amount"`
}

// Gamble wagers part of the user's balance. Losses feed the bank.
func (h *ArenaHandler) Gamble(c *gin.Context) {
	var req GambleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	won, profile, err := h.arena.Gamble(req.UserID, req.Amount)
	if err != nil {
		switch err {
		case service.ErrInvalidWager:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		case service.ErrNotEnoughPoints:
			c.JSON(http.StatusPaymentRequired, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPoints})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"won": won, "points": profile.Points})
}

// Slots spins the three-reel machine.
func (h *ArenaHandler) Slots(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	reels, payout, profile, err := h.arena.Slots(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reels": reels, "payout": payout, "points": profile.Points})
}

// PrestigePreview reports the cost of the user's next prestige level.
func (h *ArenaHandler) PrestigePreview(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	profile, err := h.arena.Wallet(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedWallet})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"prestige": profile.Prestige,
		"cost":     service.PrestigeCost(profile.Prestige),
		"points":   profile.Points,
	})
}

// Prestige buys the next prestige level: deducts the cost and wipes the
// unit inventory.
func (h *ArenaHandler) Prestige(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	profile, err := h.arena.Prestige(req.UserID)
	if err != nil {
		switch err {
		case service.ErrNotEnoughPoints:
			c.JSON(http.StatusPaymentRequired, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPoints})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: constants.MsgPrestigeUp,
		"prestige":               profile.Prestige,
		"points":                 profile.Points,
		"multiplier":             profile.PointMultiplier(),
	})
}

// ListLeaderboard returns the top profiles plus the bank total.
func (h *ArenaHandler) ListLeaderboard(c *gin.Context) {
	profiles, bank, err := h.arena.Leaderboard(10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLeaderboard})
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": profiles, "bank": bank})
}
