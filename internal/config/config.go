package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/GiovanniPerreon/gacha-arena/internal/game"
)

type spellEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type unitEntry struct {
	Name      string       `json:"name"`
	Stars     int          `json:"stars"`
	HitPoints int          `json:"hit_points"`
	Attack    int          `json:"attack"`
	Defense   int          `json:"defense"`
	// Legacy free-text ability description. When ability_keys is absent the
	// loader derives the machine keys from this text.
	Ability     string       `json:"ability"`
	AbilityKeys []string     `json:"ability_keys"`
	Spells      []spellEntry `json:"spells"`
	Image       string       `json:"image"`
}

type rawConfig struct {
	UnitList  []unitEntry `json:"unit_list"`
	StarRates []struct {
		Stars   int     `json:"stars"`
		Percent float64 `json:"percent"`
	} `json:"star_rates"`
	SummonCost int `json:"summon_cost"`
	Server     *struct {
		Address string `json:"address"`
	} `json:"server"`
	BattleTimeoutSeconds int `json:"battle_timeout_seconds"`
}

// LoadedConfig contains the summon pool and the server settings.
type LoadedConfig struct {
	Units                []game.UnitTemplate
	StarRates            []game.StarRate
	SummonCost           int
	ServerAddress        string
	BattleTimeoutSeconds int
}

// LoadConfig reads the configuration file at path. It requires the key
// `unit_list` (snake_case); star rates and summon cost fall back to the
// built-in defaults when omitted.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.UnitList
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: unit_list is empty (provide 'unit_list' array)", path)
	}

	out := make([]game.UnitTemplate, 0, len(entries))
	for _, u := range entries {
		if u.Name == "" {
			return nil, fmt.Errorf("config file %s: unit entry missing 'name'", path)
		}
		if u.Stars < 1 || u.Stars > 6 {
			return nil, fmt.Errorf("config file %s: unit '%s' has invalid stars %d (expected 1..6)", path, u.Name, u.Stars)
		}
		abilities := make([]game.AbilityKind, 0, len(u.AbilityKeys))
		for _, k := range u.AbilityKeys {
			abilities = append(abilities, game.AbilityKind(k))
		}
		if len(abilities) == 0 && strings.TrimSpace(u.Ability) != "" {
			abilities = game.ParseLegacyAbility(u.Ability)
		}
		spells := make([]game.SpellDescriptor, 0, len(u.Spells))
		for _, s := range u.Spells {
			if s.Name == "" {
				return nil, fmt.Errorf("config file %s: unit '%s' has a spell without a 'name'", path, u.Name)
			}
			spells = append(spells, game.SpellDescriptor{Name: s.Name, Kind: game.SpellKind(s.Kind)})
		}
		out = append(out, game.UnitTemplate{
			Name:  u.Name,
			Stars: u.Stars,
			Stats: game.Stats{
				HitPoints: u.HitPoints,
				Attack:    u.Attack,
				Defense:   u.Defense,
			},
			Ability:   strings.TrimSpace(u.Ability),
			Abilities: abilities,
			Spells:    spells,
			Image:     strings.TrimSpace(u.Image),
		})
	}

	// Cross-entry validation: unique unit names (case-insensitive).
	nameSet := make(map[string]struct{}, len(out))
	for _, uu := range out {
		ln := strings.ToLower(strings.TrimSpace(uu.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate unit name '%s'", path, uu.Name)
		}
		nameSet[ln] = struct{}{}
	}

	rates := game.DefaultStarRates
	if len(rc.StarRates) > 0 {
		rates = make([]game.StarRate, 0, len(rc.StarRates))
		total := 0.0
		for _, r := range rc.StarRates {
			if r.Stars < 1 || r.Stars > 6 {
				return nil, fmt.Errorf("config file %s: star_rates entry has invalid stars %d", path, r.Stars)
			}
			rates = append(rates, game.StarRate{Stars: r.Stars, Rate: r.Percent / 100})
			total += r.Percent
		}
		if total < 99.9 || total > 100.1 {
			return nil, fmt.Errorf("config file %s: star_rates percentages sum to %.2f, expected 100", path, total)
		}
	}

	cost := rc.SummonCost
	if cost <= 0 {
		cost = game.DefaultSummonCost
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	timeout := rc.BattleTimeoutSeconds
	if timeout <= 0 {
		timeout = 300
	}

	return &LoadedConfig{
		Units:                out,
		StarRates:            rates,
		SummonCost:           cost,
		ServerAddress:        addr,
		BattleTimeoutSeconds: timeout,
	}, nil
}
