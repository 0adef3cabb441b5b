package service

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GiovanniPerreon/gacha-arena/internal/engine"
	"github.com/GiovanniPerreon/gacha-arena/internal/game"
	"github.com/GiovanniPerreon/gacha-arena/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrBattleNotFound = errors.New("no active battle in this channel")
	ErrBattleExists   = errors.New("a battle is already in progress in this channel")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInventoryEmpty = errors.New("inventory is empty")
	ErrUnitNotOwned   = errors.New("unit not owned")
	ErrBossBusy       = errors.New("the boss is already engaged in another channel")
)

// DefaultBattleIdleTimeout is how long an in-memory battle may sit without
// an action before the background scanner drops it.
const DefaultBattleIdleTimeout = 120 * time.Second

// session is one live battle bound to a channel. Participant user IDs sit
// alongside the engine battle so turn authorization stays out of the
// engine. Boss sessions leave userIDs[1] empty and remember the boss row.
// lastAction is atomic so the expiry scanner never takes the session lock.
type session struct {
	ID         string
	ChannelID  string
	userIDs    [2]string
	bossFight  bool
	bossID     uint
	battle     *engine.Battle
	lastAction atomic.Int64
	mu         sync.Mutex
}

func (s *session) touch() { s.lastAction.Store(time.Now().UnixNano()) }

// Arena orchestrates battles, summons and the economy on top of the
// repository. Battles live in memory only; everything else is persisted.
type Arena struct {
	repo        storage.Repository
	catalog     *game.Catalog
	summonCost  int
	idleTimeout time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewArena wires the service. summonCost and idleTimeout fall back to the
// defaults when non-positive.
func NewArena(repo storage.Repository, catalog *game.Catalog, summonCost int, idleTimeout time.Duration) *Arena {
	if summonCost <= 0 {
		summonCost = game.DefaultSummonCost
	}
	if idleTimeout <= 0 {
		idleTimeout = DefaultBattleIdleTimeout
	}
	return &Arena{
		repo:        repo,
		catalog:     catalog,
		summonCost:  summonCost,
		idleTimeout: idleTimeout,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions:    make(map[string]*session),
	}
}

// Catalog exposes the loaded unit pool for read-only handlers.
func (a *Arena) Catalog() *game.Catalog { return a.catalog }

func (a *Arena) newSession(channelID string, userIDs [2]string, bossFight bool, b *engine.Battle) *session {
	s := &session{
		ID:        uuid.New().String(),
		ChannelID: channelID,
		userIDs:   userIDs,
		bossFight: bossFight,
		battle:    b,
	}
	s.touch()
	return s
}

func (a *Arena) lookupSession(channelID string) (*session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.sessions[channelID]
	return s, ok
}

// bossSessionActive reports whether any channel currently has the boss
// engaged. Only one channel may fight the boss at a time; otherwise each
// session's per-turn checkpoint would overwrite the others' damage.
func (a *Arena) bossSessionActive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, s := range a.sessions {
		if s.bossFight {
			return true
		}
	}
	return false
}

func (a *Arena) removeSession(channelID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, channelID)
}

// ExpireIdleBattles drops every session whose last action is older than
// the idle timeout, returning how many were removed.
func (a *Arena) ExpireIdleBattles(now time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	removed := 0
	for ch, s := range a.sessions {
		last := time.Unix(0, s.lastAction.Load())
		if now.Sub(last) > a.idleTimeout {
			delete(a.sessions, ch)
			removed++
		}
	}
	return removed
}

// IdleTimeout reports the configured battle expiry window.
func (a *Arena) IdleTimeout() time.Duration { return a.idleTimeout }

// randIntn draws from the shared RNG under its own lock so concurrent
// handlers never race on the source.
func (a *Arena) randIntn(n int) int {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.rng.Intn(n)
}

func (a *Arena) randFloat() float64 {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.rng.Float64()
}

func (a *Arena) rollUnit() game.UnitTemplate {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.catalog.Roll(a.rng)
}

func (a *Arena) randomUnit() game.UnitTemplate {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.catalog.Random(a.rng)
}
