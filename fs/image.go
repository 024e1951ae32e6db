package fs

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/keyran/recipekit"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Image file names written next to recipe.json.
const (
	FullImage      = "full.jpg"
	ThumbImage     = "thumb.jpg"
	MiniThumbImage = "thumb16.jpg"
)

// Thumbnail bounding boxes.
const (
	ThumbSize     = 145
	MiniThumbSize = 9
)

// JPEGQuality is the quality used for every written image.
const JPEGQuality = 90

// MaxImagePixels caps the declared width x height of a source image.
// Larger images are rejected before their pixels are decoded.
const MaxImagePixels = 50_000_000

// Ensure ImageWriter implements recipekit.ImageService at compile time.
var _ recipekit.ImageService = (*ImageWriter)(nil)

// ImageWriter downloads a recipe image and writes it as JPEG together with
// two thumbnails.
type ImageWriter struct {
	downloader recipekit.Downloader
}

// NewImageWriter creates an ImageWriter fetching images with d.
func NewImageWriter(d recipekit.Downloader) *ImageWriter {
	return &ImageWriter{downloader: d}
}

// SaveImage implements recipekit.ImageService. JPEG, PNG, GIF and WebP
// sources are accepted.
func (w *ImageWriter) SaveImage(ctx context.Context, imageURL, dir string) error {
	data, err := w.downloader.Download(ctx, imageURL)
	if err != nil {
		return err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return recipekit.Errorf(recipekit.EINVALID, "decode image %s: %v", imageURL, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return recipekit.Errorf(recipekit.EINVALID, "image %s is %dx%d, limit is %d pixels",
			imageURL, cfg.Width, cfg.Height, MaxImagePixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return recipekit.Errorf(recipekit.EINVALID, "decode image %s: %v", imageURL, err)
	}
	src = flatten(src)

	for _, out := range []struct {
		name string
		size int
	}{
		{FullImage, 0},
		{ThumbImage, ThumbSize},
		{MiniThumbImage, MiniThumbSize},
	} {
		img := src
		if out.size > 0 {
			img = Thumbnail(src, out.size, out.size)
		}
		if err := writeJPEG(filepath.Join(dir, out.name), img); err != nil {
			return fmt.Errorf("write %s: %w", out.name, err)
		}
	}
	return nil
}

// Thumbnail scales src down to fit within maxW x maxH, preserving its
// aspect ratio. Images already within the box are returned unchanged.
func Thumbnail(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	// Scale by the tighter ratio, rounding, and never below one pixel.
	if w*maxH > h*maxW {
		h = max(1, (h*maxW+w/2)/w)
		w = maxW
	} else {
		w = max(1, (w*maxH+h/2)/h)
		h = maxH
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// flatten composes src over a white background, since JPEG has no alpha.
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

func writeJPEG(path string, img image.Image) error {
	return writeAtomic(path, func(f *os.File) error {
		return jpeg.Encode(f, img, &jpeg.Options{Quality: JPEGQuality})
	})
}
