package api

import (
	"github.com/GiovanniPerreon/gacha-arena/internal/service"
)

// ArenaHandler groups all HTTP handlers over the arena service.
type ArenaHandler struct {
	arena *service.Arena
}

// NewArenaHandler creates a handler bound to the given arena service.
func NewArenaHandler(arena *service.Arena) *ArenaHandler {
	return &ArenaHandler{arena: arena}
}
