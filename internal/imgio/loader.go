// Image file loading and saving at the pipeline boundary
package imgio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"image-enhancement/internal/catalog"
	"image-enhancement/internal/raster"
)

// jpegQuality is the lossy output quality for enhanced images.
const jpegQuality = 95

// Loader handles decoding source files into raster buffers and encoding
// enhanced buffers back out. The pipeline itself never touches container
// formats.
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{logger: logger}
}

// Load decodes a PNG or JPEG file into a raster buffer.
func (l *Loader) Load(path string) (*raster.Buffer, error) {
	if !isSupportedFormat(path) {
		return nil, fmt.Errorf("unsupported image format: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	buf, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"filepath": path,
		"format":   format,
		"width":    buf.Width,
		"height":   buf.Height,
	}).Info("Image loaded")

	return buf, nil
}

// Save encodes a buffer to the format implied by the file extension. JPEG
// output uses quality 95.
func (l *Loader) Save(buf *raster.Buffer, path string) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, buf.RGBA(), &jpeg.Options{Quality: jpegQuality})
	case ".png":
		err = png.Encode(f, buf.RGBA())
	default:
		return fmt.Errorf("unsupported image format: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image %s: %w", path, err)
	}

	l.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width,
		"height":   buf.Height,
	}).Info("Image saved")

	return nil
}

// OutputName derives the download-style name for an enhanced image: the
// input base name plus the dpi and preset used, as a JPEG.
// "photo.png" + Print Quality + Clarity → "photo_300dpi_clarity.jpg".
func OutputName(inputPath string, target catalog.Resolution, preset catalog.Preset) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	slug := strings.ToLower(strings.ReplaceAll(preset.Name, " ", "-"))
	return fmt.Sprintf("%s_%ddpi_%s.jpg", base, target.DPI, slug)
}

func isSupportedFormat(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
