package world

// Population is the number of actors of each kind spawned at start
type Population struct {
	Sheep   int
	Humans  int
	Zombies int
}

// Config holds world setup parameters
type Config struct {
	// Width and Height are the world borders in pixels
	Width  float64
	Height float64

	// CellSize is the size of each spatial grid cell in pixels
	CellSize float64

	Population Population

	// Player spawns a keyboard-controlled actor in the middle of the world
	Player bool

	// BloodDrops is the number of cosmetic drops emitted per melee hit
	BloodDrops int
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Width:    960,
		Height:   720,
		CellSize: 64,
		Population: Population{
			Sheep:   12,
			Humans:  6,
			Zombies: 8,
		},
		Player:     true,
		BloodDrops: 6,
	}
}

// CellCountX returns the number of grid cells in the X direction
func (c Config) CellCountX() int {
	return max(1, int(c.Width/c.CellSize)+1)
}

// CellCountY returns the number of grid cells in the Y direction
func (c Config) CellCountY() int {
	return max(1, int(c.Height/c.CellSize)+1)
}
