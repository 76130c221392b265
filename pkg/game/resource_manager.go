package game

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/decker502/felisbattle/pkg/config"
	"github.com/decker502/felisbattle/pkg/utils"
	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager is responsible for centralized management of battle assets.
// It provides loading and caching mechanisms for images, frame sets, fonts and
// sound effects, ensuring that each file is decoded only once.
//
// All paths are slash-separated and relative to the asset root file system
// (os.DirFS(assetRoot) in the game, fstest.MapFS in tests).
//
// Image loading failures are never fatal for the battle: the *OrPlaceholder
// variants log the error and substitute a transparent placeholder.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the game loop goroutine.
type ResourceManager struct {
	assets          fs.FS                       // Asset root
	audioContext    *audio.Context              // Global audio context, nil disables sounds
	placeholderSize int                         // Edge length of placeholder frames
	imageCache      map[string]*ebiten.Image    // path -> Image
	audioCache      map[string]*audio.Player    // path -> Player
	fontFaceCache   map[string]*text.GoTextFace // "path:size" -> face
	defaultFont     *text.GoTextFaceSource      // Built-in fallback font source
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - assets: The asset root file system.
//   - audioContext: The global audio context (may be nil when no audio is needed).
//   - placeholderSize: Edge length of the placeholder used for frames that fail to load.
func NewResourceManager(assets fs.FS, audioContext *audio.Context, placeholderSize int) *ResourceManager {
	if placeholderSize <= 0 {
		placeholderSize = 64
	}
	return &ResourceManager{
		assets:          assets,
		audioContext:    audioContext,
		placeholderSize: placeholderSize,
		imageCache:      make(map[string]*ebiten.Image),
		audioCache:      make(map[string]*audio.Player),
		fontFaceCache:   make(map[string]*text.GoTextFace),
	}
}

// PlaceholderSize returns the edge length of placeholder frames.
func (rm *ResourceManager) PlaceholderSize() int {
	return rm.placeholderSize
}

// decodeImage opens and decodes an image file from the asset root.
func (rm *ResourceManager) decodeImage(p string) (image.Image, error) {
	file, err := rm.assets.Open(cleanAssetPath(p))
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}
	return img, nil
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: anything imaging can decode (PNG, JPEG, GIF, BMP, TIFF).
func (rm *ResourceManager) LoadImage(p string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[p]; exists {
		return cachedImage, nil
	}

	img, err := rm.decodeImage(p)
	if err != nil {
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[p] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(p string) *ebiten.Image {
	return rm.imageCache[p]
}

// LoadImageOrPlaceholder loads an image, substituting a placeholder on failure.
// The failure is logged; the returned image is never nil.
func (rm *ResourceManager) LoadImageOrPlaceholder(p string) *ebiten.Image {
	img, err := rm.LoadImage(p)
	if err != nil {
		log.Printf("[ResourceManager] Warning: %v (using %dx%d placeholder)", err, rm.placeholderSize, rm.placeholderSize)
		return utils.NewPlaceholderImage(rm.placeholderSize)
	}
	return img
}

// LoadFrames loads an ordered frame set. Every failed frame becomes a placeholder,
// so the result always has len(paths) non-nil images.
func (rm *ResourceManager) LoadFrames(paths []string) []*ebiten.Image {
	frames := make([]*ebiten.Image, len(paths))
	for i, p := range paths {
		frames[i] = rm.LoadImageOrPlaceholder(p)
	}
	return frames
}

// LoadFramesResized loads an ordered frame set and resamples every frame to width x height.
// Used for skill animations that are drawn into a fixed sub-rectangle of the screen.
// Failed frames become placeholders (not resized).
func (rm *ResourceManager) LoadFramesResized(paths []string, width, height int) []*ebiten.Image {
	frames := make([]*ebiten.Image, len(paths))
	for i, p := range paths {
		key := fmt.Sprintf("%s@%dx%d", p, width, height)
		if cached, ok := rm.imageCache[key]; ok {
			frames[i] = cached
			continue
		}

		img, err := rm.decodeImage(p)
		if err != nil {
			log.Printf("[ResourceManager] Warning: %v (using %dx%d placeholder)", err, rm.placeholderSize, rm.placeholderSize)
			frames[i] = utils.NewPlaceholderImage(rm.placeholderSize)
			continue
		}

		resized := ebiten.NewImageFromImage(imaging.Resize(img, width, height, imaging.Lanczos))
		rm.imageCache[key] = resized
		frames[i] = resized
	}
	return frames
}

// LoadBackground loads a battle background. On failure it logs and returns a
// generated sky/ground image covering the whole logical screen.
func (rm *ResourceManager) LoadBackground(p string) *ebiten.Image {
	img, err := rm.LoadImage(p)
	if err != nil {
		log.Printf("[ResourceManager] Warning: %v (using generated background)", err)
		return utils.ToEbitenImage(utils.RenderTwoToneBackground(
			config.ScreenWidth, config.ScreenHeight, config.FallbackHorizonY,
			config.FallbackSkyColor, config.FallbackGroundColor))
	}
	return img
}

// LoadFont loads a TrueType/OpenType font from the specified path and creates a text face with the given size.
// The font face is cached for future use with a cache key combining path and size.
func (rm *ResourceManager) LoadFont(p string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", p, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	fontData, err := fs.ReadFile(rm.assets, cleanAssetPath(p))
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", p, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", p, err)
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// LoadFontOrDefault loads the configured font, falling back to the built-in Go Regular font.
// An empty path selects the built-in font directly.
func (rm *ResourceManager) LoadFontOrDefault(p string, size float64) *text.GoTextFace {
	if p != "" {
		face, err := rm.LoadFont(p, size)
		if err == nil {
			return face
		}
		log.Printf("[ResourceManager] Warning: %v (using built-in font)", err)
	}

	face, err := rm.DefaultFont(size)
	if err != nil {
		// goregular 是编译进二进制的合法字体，解析失败说明构建本身有问题
		panic(fmt.Sprintf("built-in font is broken: %v", err))
	}
	return face
}

// DefaultFont returns a face of the built-in Go Regular font.
func (rm *ResourceManager) DefaultFont(size float64) (*text.GoTextFace, error) {
	if rm.defaultFont == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to parse built-in font: %w", err)
		}
		rm.defaultFont = source
	}
	return &text.GoTextFace{
		Source:    rm.defaultFont,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}

// LoadSoundEffect loads a one-shot sound effect and caches its player.
// Supported formats: OGG Vorbis (.ogg), MP3 (.mp3) and WAV (.wav).
func (rm *ResourceManager) LoadSoundEffect(p string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[p]; exists {
		return cachedPlayer, nil
	}

	if rm.audioContext == nil {
		return nil, fmt.Errorf("cannot load sound effect %s: audio context not available", p)
	}

	audioData, err := fs.ReadFile(rm.assets, cleanAssetPath(p))
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", p, err)
	}

	stream, err := decodeAudio(p, bytes.NewReader(audioData))
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", p, err)
	}

	rm.audioCache[p] = player
	return player, nil
}

// GetAudioPlayer retrieves a previously loaded audio player from the cache, or nil.
func (rm *ResourceManager) GetAudioPlayer(p string) *audio.Player {
	return rm.audioCache[p]
}

// decodeAudio 按扩展名选择解码器
func decodeAudio(p string, reader *bytes.Reader) (io.ReadSeeker, error) {
	ext := strings.ToLower(path.Ext(p))
	switch ext {
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", p, err)
		}
		return stream, nil
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", p, err)
		}
		return stream, nil
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound effect %s: %w", p, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .ogg, .mp3, .wav)", ext)
	}
}

// cleanAssetPath 转换为 io/fs 可接受的路径（无前导 "./" 或 "/"）
func cleanAssetPath(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}
