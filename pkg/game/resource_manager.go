package game

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gonewx/valentine/pkg/embedded"
	"github.com/gonewx/valentine/pkg/utils"
)

// ResourceManager manages loading and caching of the greeting's resources.
// It provides a centralized way to load the background music, the UI font
// and the rasterised heart/sparkle sprites, ensuring each is only built once.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	face := rm.Font(22)
//	heart := rm.HeartSprite("💖", 32)
type ResourceManager struct {
	audioContext *audio.Context // Global audio context; nil disables music

	musicCache  map[string]*audio.Player
	faceSource  *text.GoTextFaceSource
	faceCache   map[float64]*text.GoTextFace
	spriteCache map[string]*ebiten.Image
}

// NewResourceManager creates a new ResourceManager instance.
// The audioContext parameter may be nil when audio is unavailable; music loading
// then fails with an error that callers log and ignore.
//
// Parameters:
//   - audioContext: The global audio context used for decoding and playing audio files.
//
// Returns:
//   - A pointer to the newly created ResourceManager.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext: audioContext,
		musicCache:   make(map[string]*audio.Player),
		faceCache:    make(map[float64]*text.GoTextFace),
		spriteCache:  make(map[string]*ebiten.Image),
	}
}

// LoadMusic loads a looping music track and caches its player.
// Supported formats: MP3 (.mp3) and OGG Vorbis (.ogg).
//
// Parameters:
//   - path: A resource path starting with "assets/" (read from disk) or "data/" (embedded).
//
// Returns:
//   - A pointer to the loaded audio.Player wrapped in an infinite loop.
//   - An error if audio is disabled, the file is missing, or it cannot be decoded.
func (rm *ResourceManager) LoadMusic(path string) (*audio.Player, error) {
	if cached, exists := rm.musicCache[path]; exists {
		return cached, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio is disabled, cannot load %s", path)
	}

	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	reader := bytes.NewReader(data)

	var stream interface {
		io.ReadSeeker
		Length() int64
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		decoded, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		stream = decoded
	case ".ogg":
		decoded, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}

	loop := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.musicCache[path] = player
	return player, nil
}

// MusicLoader adapts LoadMusic to the TrackLoader used by AudioManager.
func (rm *ResourceManager) MusicLoader() TrackLoader {
	return func(path string) (MusicTrack, error) {
		player, err := rm.LoadMusic(path)
		if err != nil {
			return nil, err
		}
		return player, nil
	}
}

// Font returns the built-in UI font face at the given size.
// The face source is parsed from the embedded Go Regular font on first use.
//
// Returns:
//   - The cached face, or nil if the font could not be parsed (text is then skipped).
func (rm *ResourceManager) Font(size float64) *text.GoTextFace {
	if face, exists := rm.faceCache[size]; exists {
		return face
	}
	if rm.faceSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil
		}
		rm.faceSource = source
	}
	face := &text.GoTextFace{
		Source:    rm.faceSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.faceCache[size] = face
	return face
}

// HeartSprite returns a heart sprite tinted for the given emoji glyph.
// Sprites are rasterised once per (glyph colour, size) pair.
func (rm *ResourceManager) HeartSprite(glyph string, size int) *ebiten.Image {
	clr := utils.GlyphColor(glyph)
	key := fmt.Sprintf("heart:%02x%02x%02x:%d", clr.R, clr.G, clr.B, size)
	return rm.sprite(key, func() *ebiten.Image {
		return ebiten.NewImageFromImage(utils.RenderHeartImage(size, clr))
	})
}

// SparkleSprite returns a four-point sparkle sprite of the given size.
func (rm *ResourceManager) SparkleSprite(size int) *ebiten.Image {
	key := fmt.Sprintf("sparkle:%d", size)
	return rm.sprite(key, func() *ebiten.Image {
		return ebiten.NewImageFromImage(utils.RenderSparkleImage(size, utils.GlyphColor("✨")))
	})
}

// GlyphSprite returns a white sprite of a single font glyph (e.g. "♪").
// Returns nil if the glyph cannot be rasterised.
func (rm *ResourceManager) GlyphSprite(glyph string, size int) *ebiten.Image {
	key := fmt.Sprintf("glyph:%s:%d", glyph, size)
	return rm.sprite(key, func() *ebiten.Image {
		img, err := utils.RenderGlyphImage(glyph, size, color.White)
		if err != nil {
			return nil
		}
		return ebiten.NewImageFromImage(img)
	})
}

func (rm *ResourceManager) sprite(key string, build func() *ebiten.Image) *ebiten.Image {
	if img, exists := rm.spriteCache[key]; exists {
		return img
	}
	img := build()
	if img != nil {
		rm.spriteCache[key] = img
	}
	return img
}

// SpriteCount returns the number of cached sprites.
func (rm *ResourceManager) SpriteCount() int {
	return len(rm.spriteCache)
}
