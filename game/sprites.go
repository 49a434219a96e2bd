package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"text/template"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"spritefield/render"
	"spritefield/sim"
	"spritefield/world"
)

const (
	// SpriteSize is the edge of every actor sprite in pixels
	SpriteSize = 32

	// legLength is the part of the bullet hitbox below the body
	legLength = 6
)

var (
	playerColor = color.RGBA{255, 200, 40, 255}
	hitColor    = color.RGBA{230, 30, 30, 255}
	shadowColor = color.RGBA{20, 20, 20, 255}
	eyeColor    = color.RGBA{255, 255, 255, 255}
)

var actorSVG = template.Must(template.New("actor").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size}}" height="{{.Size}}" viewBox="0 0 {{.Size}} {{.Size}}">
<ellipse cx="{{.CX}}" cy="{{.Foot}}" rx="{{.ShadowRX}}" ry="2" fill="{{.Shadow}}"/>
<line x1="{{.LeftHipX}}" y1="{{.HipY}}" x2="{{.LeftFootX}}" y2="{{.Foot}}" stroke="{{.Shadow}}" stroke-width="2"/>
<line x1="{{.RightHipX}}" y1="{{.HipY}}" x2="{{.RightFootX}}" y2="{{.Foot}}" stroke="{{.Shadow}}" stroke-width="2"/>
<rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" rx="4" fill="{{.Fill}}" stroke="{{.Shadow}}" stroke-width="1"/>
<circle cx="{{.EyeX}}" cy="{{.EyeY}}" r="1.5" fill="{{.Eye}}"/>
</svg>`))

// spriteShape is the geometry fed to the SVG template
type spriteShape struct {
	Size                  int
	X, Y, W, H            float64
	CX, Foot, ShadowRX    float64
	HipY                  float64
	LeftHipX, RightHipX   float64
	LeftFootX, RightFootX float64
	EyeX, EyeY            float64
	Fill, Shadow, Eye     string
}

// ValidKey reports whether key names an image in kind's sprite sheet
func ValidKey(kind sim.Kind, key sim.SpriteKey) bool {
	if kind < 0 || kind >= sim.KindCount {
		return false
	}
	if key.Sector < 0 || key.Sector >= sim.Sectors {
		return false
	}
	cycle := max(1, sim.GetPreset(kind).CycleLength)
	if key.State == sim.Idle {
		return key.Frame == 0
	}
	return key.Frame >= 0 && key.Frame < cycle
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// bodyColor is the fill of an actor's body
func bodyColor(kind sim.Kind, hit bool) color.RGBA {
	switch {
	case hit:
		return hitColor
	case kind == sim.KindPlayer:
		return playerColor
	default:
		return world.GetFactionConfig(world.FactionOf(kind)).Color
	}
}

func shapeOf(kind sim.Kind, key sim.SpriteKey) spriteShape {
	p := sim.GetPreset(kind)
	body := p.Bullet
	h := body.H - legLength
	cx := body.OffsetX + body.W/2
	cy := body.OffsetY + h/2
	foot := min(float64(p.FootOffset), body.OffsetY+body.H) - 1

	// Legs swing in opposite directions on alternate run frames
	swing := 0.0
	if key.State == sim.Running {
		swing = 3
		if key.Frame%2 == 1 {
			swing = -3
		}
	}

	dx, dy := sim.SectorVector(key.Sector)
	reach := min(body.W, h)/2 - 2

	return spriteShape{
		Size:       SpriteSize,
		X:          body.OffsetX,
		Y:          body.OffsetY,
		W:          body.W,
		H:          h,
		CX:         cx,
		Foot:       foot,
		ShadowRX:   body.W / 2,
		HipY:       body.OffsetY + h - 1,
		LeftHipX:   cx - body.W/4,
		RightHipX:  cx + body.W/4,
		LeftFootX:  cx - body.W/4 + swing,
		RightFootX: cx + body.W/4 - swing,
		EyeX:       cx + dx*reach,
		EyeY:       cy + dy*reach,
		Fill:       hexColor(bodyColor(kind, key.Hit)),
		Shadow:     hexColor(shadowColor),
		Eye:        hexColor(eyeColor),
	}
}

// spriteSVG renders the SVG source of one sprite
func spriteSVG(kind sim.Kind, key sim.SpriteKey) ([]byte, error) {
	if !ValidKey(kind, key) {
		return nil, fmt.Errorf("no sprite for %v %+v", kind, key)
	}
	var buf bytes.Buffer
	if err := actorSVG.Execute(&buf, shapeOf(kind, key)); err != nil {
		return nil, fmt.Errorf("failed to render sprite template: %w", err)
	}
	return buf.Bytes(), nil
}

// rasterizeSprite draws one sprite into a SpriteSize square
func rasterizeSprite(kind sim.Kind, key sim.SpriteKey) (*image.RGBA, error) {
	src, err := spriteSVG(kind, key)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sprite svg: %w", err)
	}
	icon.SetTarget(0, 0, SpriteSize, SpriteSize)

	img := image.NewRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	scanner := rasterx.NewScannerGV(SpriteSize, SpriteSize, img, img.Bounds())
	raster := rasterx.NewDasher(SpriteSize, SpriteSize, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

type bankKey struct {
	kind sim.Kind
	key  sim.SpriteKey
}

// SpriteBank rasterizes actor sprites on first use and keeps them.
// Keys that failed once are not retried.
type SpriteBank struct {
	log    zerolog.Logger
	upload func(image.Image) render.Image
	images map[bankKey]render.Image
	failed map[bankKey]bool
}

// NewSpriteBank creates a bank that uploads sprites as ebiten images
func NewSpriteBank(log zerolog.Logger) *SpriteBank {
	return newSpriteBank(log, func(img image.Image) render.Image {
		return ebiten.NewImageFromImage(img)
	})
}

func newSpriteBank(log zerolog.Logger, upload func(image.Image) render.Image) *SpriteBank {
	return &SpriteBank{
		log:    log,
		upload: upload,
		images: make(map[bankKey]render.Image),
		failed: make(map[bankKey]bool),
	}
}

// Sprite implements render.SpriteBank
func (b *SpriteBank) Sprite(kind sim.Kind, key sim.SpriteKey) (render.Image, bool) {
	k := bankKey{kind, key}
	if img, ok := b.images[k]; ok {
		return img, true
	}
	if b.failed[k] {
		return nil, false
	}

	rgba, err := rasterizeSprite(kind, key)
	if err != nil {
		b.failed[k] = true
		b.log.Warn().Err(err).Str("kind", kind.String()).Msg("sprite unavailable")
		return nil, false
	}
	img := b.upload(rgba)
	b.images[k] = img
	return img, true
}

// Len returns the number of cached sprites
func (b *SpriteBank) Len() int {
	return len(b.images)
}
