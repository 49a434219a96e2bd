package game

import (
	"image"
	"image/color"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"spritefield/render"
	"spritefield/sim"
	"spritefield/world"
)

// bodyPixel is a point on the body well clear of its outline and the eye
// of a south-facing sprite
func bodyPixel(kind sim.Kind) (int, int) {
	s := shapeOf(kind, sim.SpriteKey{})
	return int(s.X) + 4, int(s.Y + s.H/2)
}

func assertNearColor(t *testing.T, want color.RGBA, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2)
	assert.InDelta(t, want.G, got.G, 2)
	assert.InDelta(t, want.B, got.B, 2)
	assert.Equal(t, uint8(255), got.A)
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		name string
		kind sim.Kind
		key  sim.SpriteKey
		want bool
	}{
		{"idle", sim.KindHuman, sim.SpriteKey{State: sim.Idle, Sector: 3}, true},
		{"idle with frame", sim.KindHuman, sim.SpriteKey{State: sim.Idle, Frame: 1}, false},
		{"last run frame", sim.KindHuman, sim.SpriteKey{State: sim.Running, Frame: 5}, true},
		{"past the cycle", sim.KindSheep, sim.SpriteKey{State: sim.Running, Frame: 2}, false},
		{"sector out of range", sim.KindZombie, sim.SpriteKey{Sector: sim.Sectors}, false},
		{"negative sector", sim.KindZombie, sim.SpriteKey{Sector: -1}, false},
		{"unknown kind", sim.KindCount, sim.SpriteKey{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidKey(tt.kind, tt.key))
		})
	}
}

func TestRasterizeSprite_BodyColors(t *testing.T) {
	for kind := range sim.KindCount {
		t.Run(kind.String(), func(t *testing.T) {
			img, err := rasterizeSprite(kind, sim.SpriteKey{Sector: 0})
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, SpriteSize, SpriteSize), img.Bounds())

			x, y := bodyPixel(kind)
			want := world.GetFactionConfig(world.FactionOf(kind)).Color
			if kind == sim.KindPlayer {
				want = playerColor
			}
			assertNearColor(t, want, img.RGBAAt(x, y))
			assert.Zero(t, img.RGBAAt(0, 0).A, "corners stay transparent")
		})
	}
}

func TestRasterizeSprite_HitFlash(t *testing.T) {
	img, err := rasterizeSprite(sim.KindHuman, sim.SpriteKey{Hit: true})
	require.NoError(t, err)

	x, y := bodyPixel(sim.KindHuman)
	assertNearColor(t, hitColor, img.RGBAAt(x, y))
}

func TestRasterizeSprite_EyeFollowsSector(t *testing.T) {
	// Sector 1 looks south-east, sector 5 north-west
	se, err := rasterizeSprite(sim.KindSheep, sim.SpriteKey{Sector: 1})
	require.NoError(t, err)
	nw, err := rasterizeSprite(sim.KindSheep, sim.SpriteKey{Sector: 5})
	require.NoError(t, err)

	shape := shapeOf(sim.KindSheep, sim.SpriteKey{Sector: 1})
	ex, ey := int(shape.EyeX), int(shape.EyeY)
	assertNearColor(t, eyeColor, se.RGBAAt(ex, ey))
	assert.NotEqual(t, se.RGBAAt(ex, ey), nw.RGBAAt(ex, ey))
}

func TestRasterizeSprite_RunFramesDiffer(t *testing.T) {
	a, err := rasterizeSprite(sim.KindHuman, sim.SpriteKey{State: sim.Running, Frame: 0})
	require.NoError(t, err)
	b, err := rasterizeSprite(sim.KindHuman, sim.SpriteKey{State: sim.Running, Frame: 1})
	require.NoError(t, err)

	assert.NotEqual(t, a.Pix, b.Pix)
}

func TestRasterizeSprite_RejectsInvalidKey(t *testing.T) {
	_, err := rasterizeSprite(sim.KindSheep, sim.SpriteKey{Sector: 9})
	assert.Error(t, err)
}

func TestSpriteSVG_AnyValidKey(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kind := sim.Kind(rapid.IntRange(0, int(sim.KindCount)-1).Draw(t, "kind"))
		cycle := max(1, sim.GetPreset(kind).CycleLength)
		key := sim.SpriteKey{
			State:  sim.Running,
			Sector: rapid.IntRange(0, sim.Sectors-1).Draw(t, "sector"),
			Frame:  rapid.IntRange(0, cycle-1).Draw(t, "frame"),
			Hit:    rapid.Bool().Draw(t, "hit"),
		}
		src, err := spriteSVG(kind, key)
		if err != nil {
			t.Fatalf("valid key rejected: %v", err)
		}
		if len(src) == 0 {
			t.Fatalf("empty svg")
		}
	})
}

func TestSpriteBank_CachesAndRemembersFailures(t *testing.T) {
	uploads := 0
	bank := newSpriteBank(zerolog.Nop(), func(img image.Image) render.Image {
		uploads++
		return img
	})

	key := sim.SpriteKey{State: sim.Running, Sector: 2, Frame: 1}
	first, ok := bank.Sprite(sim.KindZombie, key)
	require.True(t, ok)
	second, ok := bank.Sprite(sim.KindZombie, key)
	require.True(t, ok)
	assert.Same(t, first, second)
	assert.Equal(t, 1, uploads)

	bad := sim.SpriteKey{Sector: 42}
	_, ok = bank.Sprite(sim.KindZombie, bad)
	assert.False(t, ok)
	_, ok = bank.Sprite(sim.KindZombie, bad)
	assert.False(t, ok)
	assert.Equal(t, 1, uploads)
	assert.Equal(t, 1, bank.Len())
}
