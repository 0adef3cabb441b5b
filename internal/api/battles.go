package api

import (
	"net/http"

	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/engine"
	"github.com/GiovanniPerreon/gacha-arena/internal/service"

	"github.com/gin-gonic/gin"
)

type StartBattleRequest struct {
	ChannelID  string `json:"channel_id"`
	UserID     string `json:"user_id"`
	OpponentID string `json:"opponent_id"`
	Boss       bool   `json:"boss"`
}

// StartBattle opens a battle in a channel: PvP against an opponent, or
// against the persistent boss when boss is set.
func (h *ArenaHandler) StartBattle(c *gin.Context) {
	var req StartBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ChannelID == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if !req.Boss && req.OpponentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	var (
		view *service.BattleView
		err  error
	)
	if req.Boss {
		view, err = h.arena.StartBossBattle(req.ChannelID, req.UserID)
	} else {
		view, err = h.arena.StartBattle(req.ChannelID, req.UserID, req.OpponentID)
	}
	if err != nil {
		switch err {
		case service.ErrBattleExists:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleExists})
		case service.ErrInventoryEmpty:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrInventoryEmpty})
		case service.ErrBossDefeated:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBossDefeated})
		case service.ErrBossBusy:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBossBusy})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBattleState returns a snapshot of the channel's battle, full log included.
func (h *ArenaHandler) GetBattleState(c *gin.Context) {
	channelID := c.Query("channel_id")
	if channelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	view, err := h.arena.BattleState(channelID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	c.JSON(http.StatusOK, view)
}

type BattleActionRequest struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	// SpellIndex selects which of the active unit's spells to cast.
	SpellIndex int `json:"spell_index"`
}

// Attack resolves one attack turn for the calling user.
func (h *ArenaHandler) Attack(c *gin.Context) {
	var req BattleActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ChannelID == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	view, err := h.arena.Attack(req.ChannelID, req.UserID)
	if err != nil {
		h.battleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CastSpell casts one of the active unit's spells. The turn does not advance.
func (h *ArenaHandler) CastSpell(c *gin.Context) {
	var req BattleActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ChannelID == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	view, err := h.arena.CastSpell(req.ChannelID, req.UserID, req.SpellIndex)
	if err != nil {
		h.battleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBoss returns the live boss, spawning one when none exists.
func (h *ArenaHandler) GetBoss(c *gin.Context) {
	boss, err := h.arena.EnsureBoss()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		return
	}
	c.JSON(http.StatusOK, boss)
}

func (h *ArenaHandler) battleError(c *gin.Context, err error) {
	switch err {
	case service.ErrBattleNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case service.ErrNotYourTurn:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
	case service.ErrBattleOver:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleOver})
	case engine.ErrSpellUnavailable:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
	}
}
