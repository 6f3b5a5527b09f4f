package pinchview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

var (
	// ErrNoFetcher is returned when a remote source is loaded without a Fetcher.
	ErrNoFetcher = errors.New("no fetcher configured for remote source")
	// ErrEmptyImage is returned for images with a zero dimension.
	ErrEmptyImage = errors.New("image has no pixels")
)

// Fetcher downloads remote image sources. go-http-kit's client satisfies it.
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ImageInfo holds metadata about a loaded image.
type ImageInfo struct {
	// Width and Height are the natural size after orientation, before any
	// downscale.
	Width, Height int
	Size          int64
	Format        string
	// Orientation is the EXIF orientation tag (1-8), 1 when absent.
	Orientation int
	EXIFData    map[string]string
}

// Loader fetches, decodes and normalises images for display.
type Loader struct {
	// Fetcher serves http:// and https:// sources. Other sources are read
	// from the local filesystem.
	Fetcher Fetcher
	// MaxTextureSize bounds the longer side of the returned image. Zero
	// disables downscaling.
	MaxTextureSize int
}

// Load reads src and returns the decoded image, oriented upright and
// downscaled to MaxTextureSize.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, *ImageInfo, error) {
	data, err := l.read(ctx, src)
	if err != nil {
		return nil, nil, fmt.Errorf("load image %s: %w", src, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("load image %s: %w", src, err)
	}

	img, info, err := l.decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("load image %s: %w", src, err)
	}
	return img, info, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if isRemote(src) {
		if l.Fetcher == nil {
			return nil, ErrNoFetcher
		}
		return l.Fetcher.FetchBytes(ctx, src)
	}
	data, err := os.ReadFile(strings.TrimPrefix(src, "file://"))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func (l *Loader) decode(data []byte) (image.Image, *ImageInfo, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}

	info := &ImageInfo{
		Size:        int64(len(data)),
		Format:      format,
		Orientation: 1,
		EXIFData:    make(map[string]string),
	}
	readEXIF(data, info)

	img = orient(img, info.Orientation)
	b := img.Bounds()
	info.Width, info.Height = b.Dx(), b.Dy()
	if info.Width == 0 || info.Height == 0 {
		return nil, nil, ErrEmptyImage
	}

	if m := l.MaxTextureSize; m > 0 && (info.Width > m || info.Height > m) {
		img = imaging.Fit(img, m, m, imaging.Lanczos)
	}
	return img, info, nil
}

// readEXIF fills orientation and a few camera fields. Missing or broken
// EXIF data is not an error.
func readEXIF(data []byte, info *ImageInfo) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil && o >= 1 && o <= 8 {
			info.Orientation = o
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil {
			info.EXIFData["Camera Model"] = strings.TrimSpace(s)
		}
	}
	if tag, err := x.Get(exif.FNumber); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			info.EXIFData["F-Number"] = fmt.Sprintf("f/%.1f", float64(num)/float64(den))
		}
	}
	if t, err := x.DateTime(); err == nil {
		info.EXIFData["Date Taken"] = t.Format("2006-01-02 15:04:05")
	}
}

// orient applies an EXIF orientation so the image displays upright.
func orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
