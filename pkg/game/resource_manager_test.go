package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/valentine/pkg/embedded"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext)
	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.SpriteCount() != 0 {
		t.Errorf("Expected empty sprite cache, got %d", rm.SpriteCount())
	}
}

// TestLoadMusicWithoutAudioContext tests that music loading fails cleanly when audio is disabled.
func TestLoadMusicWithoutAudioContext(t *testing.T) {
	rm := NewResourceManager(nil)
	if _, err := rm.LoadMusic("assets/audio/love_theme.ogg"); err == nil {
		t.Error("Expected error when audio context is nil")
	}
}

// TestLoadMusicMissingFile tests that a missing track returns an error instead of panicking.
func TestLoadMusicMissingFile(t *testing.T) {
	embedded.SetAssetsRoot(t.TempDir())
	defer embedded.SetAssetsRoot(".")

	rm := NewResourceManager(testAudioContext)
	if _, err := rm.LoadMusic("assets/audio/missing.ogg"); err == nil {
		t.Error("Expected error for missing audio file")
	}
}

// TestLoadMusicCorruptFile tests decoding errors for files with garbage content.
func TestLoadMusicCorruptFile(t *testing.T) {
	root := t.TempDir()
	embedded.SetAssetsRoot(root)
	defer embedded.SetAssetsRoot(".")

	dir := filepath.Join(root, "assets", "audio")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"bad.ogg", "bad.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("not audio"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rm := NewResourceManager(testAudioContext)
	if _, err := rm.LoadMusic("assets/audio/bad.ogg"); err == nil {
		t.Error("Expected decode error for corrupt OGG file")
	}
	if _, err := rm.LoadMusic("assets/audio/bad.wav"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

// TestMusicLoaderReturnsNilTrackOnError ensures the adapter never wraps a nil player in a non-nil interface.
func TestMusicLoaderReturnsNilTrackOnError(t *testing.T) {
	rm := NewResourceManager(nil)
	track, err := rm.MusicLoader()("assets/audio/love_theme.ogg")
	if err == nil {
		t.Fatal("Expected error")
	}
	if track != nil {
		t.Error("Track should be a nil interface on error")
	}
}

// TestFontCaching tests that faces are cached per size and share one source.
func TestFontCaching(t *testing.T) {
	rm := NewResourceManager(nil)

	a := rm.Font(22)
	if a == nil {
		t.Fatal("Font(22) returned nil")
	}
	if rm.Font(22) != a {
		t.Error("Same size should return the cached face")
	}
	b := rm.Font(36)
	if b == a || b.Size != 36 {
		t.Error("Different size should return a new face")
	}
	if a.Source != b.Source {
		t.Error("Faces should share the parsed font source")
	}
}

// TestSpriteCaching tests heart sprites are shared by glyphs of the same colour.
func TestSpriteCaching(t *testing.T) {
	rm := NewResourceManager(nil)

	first := rm.HeartSprite("♥️", 32)
	if first == nil {
		t.Fatal("HeartSprite returned nil")
	}
	if rm.HeartSprite("❤️", 32) != first {
		t.Error("Glyphs with the same colour should share a sprite")
	}
	if rm.HeartSprite("💖", 32) == first {
		t.Error("Different colours should produce different sprites")
	}
	if rm.SparkleSprite(16) == nil {
		t.Error("SparkleSprite returned nil")
	}
	if rm.GlyphSprite("♪", 24) == nil {
		t.Error("GlyphSprite returned nil")
	}
	if rm.SpriteCount() != 4 {
		t.Errorf("Expected 4 cached sprites, got %d", rm.SpriteCount())
	}
}
