package service

import (
	"math/rand"
	"sort"
	"time"

	"github.com/GiovanniPerreon/gacha-arena/internal/game"
)

type mockRepo struct {
	units      map[uint]*game.OwnedUnit
	nextUnitID uint
	profiles   map[string]*game.PlayerProfile
	bank       *game.Bank
	bosses     map[uint]*game.BossRecord
	nextBossID uint
	bossSaves  int

	// Injectable failures for the write paths that must only warn.
	saveBossErr   error
	updateUnitErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		units:    make(map[uint]*game.OwnedUnit),
		profiles: make(map[string]*game.PlayerProfile),
		bosses:   make(map[uint]*game.BossRecord),
	}
}

func (m *mockRepo) GetInventory(userID string) ([]game.OwnedUnit, error) {
	ids := make([]uint, 0, len(m.units))
	for id, u := range m.units {
		if u.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]game.OwnedUnit, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.units[id])
	}
	return out, nil
}

func (m *mockRepo) AddUnits(units []game.OwnedUnit) error {
	for i := range units {
		m.nextUnitID++
		units[i].ID = m.nextUnitID
		cp := units[i]
		m.units[cp.ID] = &cp
	}
	return nil
}

func (m *mockRepo) GetUnitByID(id uint) (*game.OwnedUnit, error) {
	u, ok := m.units[id]
	if !ok {
		return nil, ErrUnitNotOwned
	}
	cp := *u
	return &cp, nil
}

func (m *mockRepo) UpdateUnit(u *game.OwnedUnit) error {
	if m.updateUnitErr != nil {
		return m.updateUnitErr
	}
	cp := *u
	m.units[cp.ID] = &cp
	return nil
}

func (m *mockRepo) ClearInventory(userID string) error {
	for id, u := range m.units {
		if u.UserID == userID {
			delete(m.units, id)
		}
	}
	return nil
}

func (m *mockRepo) AllInventories() (map[string][]game.OwnedUnit, error) {
	out := make(map[string][]game.OwnedUnit)
	for _, u := range m.units {
		out[u.UserID] = append(out[u.UserID], *u)
	}
	return out, nil
}

func (m *mockRepo) GetProfile(userID string) (*game.PlayerProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	p := &game.PlayerProfile{UserID: userID, Points: game.StartingPoints}
	m.profiles[userID] = p
	cp := *p
	return &cp, nil
}

func (m *mockRepo) SaveProfile(p *game.PlayerProfile) error {
	cp := *p
	m.profiles[cp.UserID] = &cp
	return nil
}

func (m *mockRepo) GetTopProfiles(limit int) ([]game.PlayerProfile, error) {
	out := make([]game.PlayerProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prestige != out[j].Prestige {
			return out[i].Prestige > out[j].Prestige
		}
		return out[i].Points > out[j].Points
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) GetBank() (*game.Bank, error) {
	if m.bank == nil {
		m.bank = &game.Bank{}
	}
	cp := *m.bank
	return &cp, nil
}

func (m *mockRepo) SaveBank(b *game.Bank) error {
	cp := *b
	m.bank = &cp
	return nil
}

func (m *mockRepo) GetBoss() (*game.BossRecord, error) {
	var best *game.BossRecord
	for _, b := range m.bosses {
		if b.Defeated {
			continue
		}
		if best == nil || b.ID > best.ID {
			best = b
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (m *mockRepo) SaveBoss(b *game.BossRecord) error {
	if m.saveBossErr != nil {
		return m.saveBossErr
	}
	if b.ID == 0 {
		m.nextBossID++
		b.ID = m.nextBossID
	}
	cp := *b
	m.bosses[cp.ID] = &cp
	m.bossSaves++
	return nil
}

// newTestArena builds an Arena over the mock with a fixed RNG seed so
// catalog rolls inside a single test stay reproducible.
func newTestArena(repo *mockRepo, units ...game.UnitTemplate) *Arena {
	a := NewArena(repo, game.NewCatalog(units, nil), 50, time.Minute)
	a.rng = rand.New(rand.NewSource(1))
	return a
}
