package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *
var assetsFS embed.FS

// Dir is where on-disk assets are looked up before the embedded copy.
const Dir = "assets"

// LoadFile loads an asset by assets-relative path, preferring the disk copy.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if b, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(clean)
}

// LoadAudio decodes a wav or ogg asset into 16-bit little-endian stereo PCM
// at sampleRate, the format ebiten audio players consume.
func LoadAudio(path string, sampleRate int) ([]byte, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	clean := strings.ToLower(cleanAssetPath(path))
	reader := bytes.NewReader(b)

	var stream io.Reader
	switch {
	case strings.HasSuffix(clean, ".wav"):
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		stream = s
	case strings.HasSuffix(clean, ".ogg"):
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %q: %w", path, err)
		}
		stream = s
	default:
		// Already-decoded PCM in ebiten's native format.
		return b, nil
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read audio %q: %w", path, err)
	}
	return pcm, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/"+Dir+"/"); idx >= 0 {
			return s[idx+len("/"+Dir+"/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}
