package api

import (
	"net/http"

	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/service"

	"github.com/gin-gonic/gin"
)

// ListUnits returns every catalog entry (the summon pool).
func (h *ArenaHandler) ListUnits(c *gin.Context) {
	c.JSON(http.StatusOK, h.arena.Catalog().Units())
}

// GetUnit returns a single catalog entry by name, case-insensitive.
func (h *ArenaHandler) GetUnit(c *gin.Context) {
	tpl, err := h.arena.UnitInfo(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrUnitNotFound})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

type SummonRequest struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

// Summon performs a single or ten pull for the given user.
func (h *ArenaHandler) Summon(c *gin.Context) {
	var req SummonRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	units, profile, err := h.arena.Summon(req.UserID, req.Count)
	if err != nil {
		switch err {
		case service.ErrInvalidSummonCount:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		case service.ErrNotEnoughPoints:
			c.JSON(http.StatusPaymentRequired, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPoints})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSummon})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units, "points": profile.Points})
}

// GetInventory lists every unit the user owns.
func (h *ArenaHandler) GetInventory(c *gin.Context) {
	units, err := h.arena.Inventory(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedInventory})
		return
	}
	c.JSON(http.StatusOK, units)
}

// ListInventories returns every inventory grouped by owner.
func (h *ArenaHandler) ListInventories(c *gin.Context) {
	all, err := h.arena.AllInventories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedInventory})
		return
	}
	c.JSON(http.StatusOK, all)
}

// GetActiveUnit reports which owned unit the user currently fights with.
func (h *ArenaHandler) GetActiveUnit(c *gin.Context) {
	unit, err := h.arena.ActiveUnit(c.Param("userID"))
	if err != nil {
		switch err {
		case service.ErrInventoryEmpty:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrInventoryEmpty})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedInventory})
		}
		return
	}
	c.JSON(http.StatusOK, unit)
}

type SetActiveUnitRequest struct {
	Name string `json:"name"`
}

// SetActiveUnit persists the user's fighting unit, chosen by name.
func (h *ArenaHandler) SetActiveUnit(c *gin.Context) {
	var req SetActiveUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	unit, err := h.arena.SetActiveUnit(c.Param("userID"), req.Name)
	if err != nil {
		switch err {
		case service.ErrUnitNotOwned:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrUnitNotOwned})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}
	c.JSON(http.StatusOK, unit)
}
