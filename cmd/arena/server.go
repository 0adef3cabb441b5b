package main

import (
	"time"

	"github.com/GiovanniPerreon/gacha-arena/internal/constants"
	"github.com/GiovanniPerreon/gacha-arena/internal/logging"
	"github.com/GiovanniPerreon/gacha-arena/internal/service"
)

// startExpiryScanner periodically drops in-memory battles that have seen
// no action within the arena's idle timeout. Abandoned channels free up
// for new battles; boss damage is already checkpointed per turn.
func startExpiryScanner(arena *service.Arena) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if removed := arena.ExpireIdleBattles(time.Now()); removed > 0 {
				logging.Info("expired idle battles", logging.Fields{constants.LogFieldCount: removed})
			}
		}
	}()
}
