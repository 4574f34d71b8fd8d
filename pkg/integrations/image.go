package integrations

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// PosterSettings bounds the size and quality of embedded posters.
type PosterSettings struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

func DefaultPosterSettings() PosterSettings {
	return PosterSettings{MaxWidth: 300, MaxHeight: 450, Quality: 85}
}

// ImageProcessor shrinks posters before they are embedded.
type ImageProcessor struct {
	settings PosterSettings
}

func NewImageProcessor(settings PosterSettings) *ImageProcessor {
	return &ImageProcessor{settings: settings}
}

// ProcessPoster decodes a JPEG, PNG or WebP poster, scales it to fit the
// configured bounds and re-encodes it as JPEG.
func (p *ImageProcessor) ProcessPoster(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := p.calculateDimensions(bounds.Dx(), bounds.Dy())

	// JPEG has no alpha, flatten onto white
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.settings.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// calculateDimensions fits width x height inside the bounds keeping the
// aspect ratio. Images already inside the bounds are left alone.
func (p *ImageProcessor) calculateDimensions(width, height int) (int, int) {
	if width <= p.settings.MaxWidth && height <= p.settings.MaxHeight {
		return width, height
	}

	scale := float64(p.settings.MaxWidth) / float64(width)
	if hs := float64(p.settings.MaxHeight) / float64(height); hs < scale {
		scale = hs
	}

	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
