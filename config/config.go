// Package config loads runtime settings from spritefield.json and the
// environment and builds the shared logger.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"spritefield/world"
)

// FileName is the config file looked up in the config directory
const FileName = "spritefield"

// EnvPrefix prefixes every environment override, e.g. SPRITEFIELD_SEED
const EnvPrefix = "SPRITEFIELD"

// Config holds everything the front ends need to start a simulation
type Config struct {
	// ScreenWidth and ScreenHeight size the window in pixels
	ScreenWidth  int
	ScreenHeight int

	World world.Config

	// Seed feeds the world's random source. Zero picks a time based seed.
	Seed int64

	// TickRate is the number of simulation steps per second in the terminal
	TickRate int

	LogLevel string

	// ProfileDir receives CPU profiles on frame rate drops; empty disables
	ProfileDir string
}

// DefaultConfig returns the settings used when no file or env override exists
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  960,
		ScreenHeight: 720,
		World:        world.DefaultConfig(),
		TickRate:     30,
		LogLevel:     "info",
	}
}

func setDefaults() {
	def := DefaultConfig()

	viper.SetDefault("logLevel", def.LogLevel)
	viper.SetDefault("seed", def.Seed)
	viper.SetDefault("tickRate", def.TickRate)
	viper.SetDefault("profileDir", def.ProfileDir)

	viper.SetDefault("screen.width", def.ScreenWidth)
	viper.SetDefault("screen.height", def.ScreenHeight)

	viper.SetDefault("world.width", def.World.Width)
	viper.SetDefault("world.height", def.World.Height)
	viper.SetDefault("world.cellSize", def.World.CellSize)
	viper.SetDefault("world.player", def.World.Player)
	viper.SetDefault("world.bloodDrops", def.World.BloodDrops)

	viper.SetDefault("population.sheep", def.World.Population.Sheep)
	viper.SetDefault("population.humans", def.World.Population.Humans)
	viper.SetDefault("population.zombies", def.World.Population.Zombies)
}

// Load reads spritefield.json from configDir on top of the defaults and
// applies SPRITEFIELD_* environment overrides. A missing file is not an
// error.
func Load(configDir string) (Config, error) {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{
		ScreenWidth:  viper.GetInt("screen.width"),
		ScreenHeight: viper.GetInt("screen.height"),
		World: world.Config{
			Width:    viper.GetFloat64("world.width"),
			Height:   viper.GetFloat64("world.height"),
			CellSize: viper.GetFloat64("world.cellSize"),
			Population: world.Population{
				Sheep:   viper.GetInt("population.sheep"),
				Humans:  viper.GetInt("population.humans"),
				Zombies: viper.GetInt("population.zombies"),
			},
			Player:     viper.GetBool("world.player"),
			BloodDrops: viper.GetInt("world.bloodDrops"),
		},
		Seed:       viper.GetInt64("seed"),
		TickRate:   viper.GetInt("tickRate"),
		LogLevel:   viper.GetString("logLevel"),
		ProfileDir: viper.GetString("profileDir"),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the world cannot run with
func (c Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	case c.World.CellSize <= 0:
		return fmt.Errorf("cell size must be positive, got %v", c.World.CellSize)
	case c.World.Population.Sheep < 0 || c.World.Population.Humans < 0 || c.World.Population.Zombies < 0:
		return errors.New("population counts must not be negative")
	case c.World.BloodDrops < 0:
		return fmt.Errorf("blood drops must not be negative, got %d", c.World.BloodDrops)
	case c.TickRate <= 0:
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	return nil
}
