package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	// Seed - мастер-зерно генерации. 0 means "pick one from the clock".
	Seed     int64           `yaml:"seed" toml:"seed"`
	Map      MapConfig       `yaml:"map" toml:"map"`
	Player   PlayerConfig    `yaml:"player" toml:"player"`
	Monsters []MonsterConfig `yaml:"monsters" toml:"monsters"`
	Logging  LoggingConfig   `yaml:"logging" toml:"logging"`
	Server   ServerConfig    `yaml:"server" toml:"server"`
	// FrameMS is the terminal redraw/tick interval.
	FrameMS int `yaml:"frame_ms" toml:"frame_ms"`
}

type MapConfig struct {
	Width    int `yaml:"width" toml:"width"`
	Height   int `yaml:"height" toml:"height"`
	MaxRooms int `yaml:"max_rooms" toml:"max_rooms"`
	MinRoom  int `yaml:"min_room" toml:"min_room"`
	MaxRoom  int `yaml:"max_room" toml:"max_room"`
}

type PlayerConfig struct {
	HP      int `yaml:"hp" toml:"hp"`
	Defense int `yaml:"defense" toml:"defense"`
	Power   int `yaml:"power" toml:"power"`
	Sight   int `yaml:"sight" toml:"sight"`
}

type MonsterConfig struct {
	Name    string `yaml:"name" toml:"name"`
	Glyph   string `yaml:"glyph" toml:"glyph"`
	Color   string `yaml:"color" toml:"color"`
	HP      int    `yaml:"hp" toml:"hp"`
	Defense int    `yaml:"defense" toml:"defense"`
	Power   int    `yaml:"power" toml:"power"`
}

// Rune returns the first rune of Glyph.
func (m MonsterConfig) Rune() rune {
	r, _ := utf8.DecodeRuneInString(m.Glyph)
	return r
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" or "text"
	File   string `yaml:"file" toml:"file"`
}

type ServerConfig struct {
	// Listen is the spectator server address. Empty disables it.
	Listen string `yaml:"listen" toml:"listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Map: MapConfig{
			Width:    80,
			Height:   50,
			MaxRooms: 30,
			MinRoom:  6,
			MaxRoom:  10,
		},
		Player: PlayerConfig{
			HP:      30,
			Defense: 2,
			Power:   5,
			Sight:   8,
		},
		Monsters: []MonsterConfig{
			{Name: "Goblin", Glyph: "g", Color: "red", HP: 16, Defense: 1, Power: 4},
			{Name: "Orc", Glyph: "o", Color: "red", HP: 16, Defense: 1, Power: 4},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "rogee.log",
		},
		FrameMS: 50,
	}
}

// Load читает файл конфигурации поверх значений по умолчанию.
// The format is picked by extension: .toml for TOML, anything else is YAML.
// If path == "", ROGEE_CONFIG is tried; with neither, defaults are returned.
// Env overrides (ROGEE_SEED, ROGEE_LISTEN) are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("ROGEE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ROGEE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ROGEE_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("ROGEE_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	return nil
}

// ResolveSeed fills a zero seed from the clock and returns the seed in use.
// Zero is reserved for "random", so seed 0 itself can never be replayed.
func (c *Config) ResolveSeed() int64 {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c.Seed
}

// FrameInterval is FrameMS as a duration.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameMS) * time.Millisecond
}

// Validate rejects configurations the generator or bootstrap cannot honour.
func (c *Config) Validate() error {
	m := c.Map
	if m.MinRoom < 3 {
		return fmt.Errorf("map.min_room must be at least 3, got %d", m.MinRoom)
	}
	if m.MaxRoom < m.MinRoom {
		return fmt.Errorf("map.max_room (%d) is smaller than map.min_room (%d)", m.MaxRoom, m.MinRoom)
	}
	if m.Width < m.MaxRoom+2 || m.Height < m.MaxRoom+2 {
		return fmt.Errorf("map %dx%d is too small for a %d-tile room", m.Width, m.Height, m.MaxRoom)
	}
	if m.MaxRooms < 1 {
		return fmt.Errorf("map.max_rooms must be positive, got %d", m.MaxRooms)
	}
	if c.Player.HP <= 0 {
		return fmt.Errorf("player.hp must be positive, got %d", c.Player.HP)
	}
	for i, mc := range c.Monsters {
		if mc.Name == "" || mc.Glyph == "" {
			return fmt.Errorf("monsters[%d]: name and glyph are required", i)
		}
		if mc.HP <= 0 {
			return fmt.Errorf("monsters[%d] %s: hp must be positive", i, mc.Name)
		}
	}
	if c.FrameMS <= 0 {
		return fmt.Errorf("frame_ms must be positive, got %d", c.FrameMS)
	}
	return nil
}
