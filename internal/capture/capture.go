// Package capture turns uploaded image bytes into frames the detector can
// read.
package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
	"gocv.io/x/gocv"
)

// Default intake limits.
const (
	DefaultMaxUploadBytes = 10 << 20
	DefaultMaxDimension   = 1280
)

var (
	// ErrInvalidImage is returned when the upload is not a decodable image.
	ErrInvalidImage = errors.New("not a valid image")
	// ErrUploadTooLarge is returned when the upload exceeds MaxUploadBytes.
	ErrUploadTooLarge = errors.New("upload too large")
)

// Config holds intake limits.
type Config struct {
	// MaxUploadBytes caps the size of an upload. Zero disables the cap.
	MaxUploadBytes int64 `json:"max_upload_bytes"`
	// MaxDimension is the longest side a frame is scaled down to before
	// detection. Zero keeps the original size.
	MaxDimension int `json:"max_dimension"`
}

// DefaultConfig returns the default intake limits.
func DefaultConfig() Config {
	return Config{
		MaxUploadBytes: DefaultMaxUploadBytes,
		MaxDimension:   DefaultMaxDimension,
	}
}

// Frame is a decoded, upright image ready for detection.
type Frame struct {
	Image  image.Image
	MIME   string
	Width  int
	Height int
}

// Mat converts the frame to a BGR gocv.Mat. The caller must Close it.
func (f *Frame) Mat() (gocv.Mat, error) {
	return ToMat(f.Image)
}

// ToMat converts img to a BGR gocv.Mat. The caller must Close it.
func ToMat(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert image to mat: %w", err)
	}
	return mat, nil
}

// Loader reads and decodes uploads within the configured limits.
type Loader struct {
	config Config
}

// NewLoader creates a Loader with the given limits.
func NewLoader(config Config) *Loader {
	return &Loader{config: config}
}

// Config returns the loader's limits.
func (l *Loader) Config() Config {
	return l.config
}

// Read reads r to the end, failing with ErrUploadTooLarge as soon as the
// configured cap is exceeded.
func (l *Loader) Read(r io.Reader) ([]byte, error) {
	if l.config.MaxUploadBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, l.config.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > l.config.MaxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, l.config.MaxUploadBytes)
	}
	return data, nil
}

// Load reads and decodes an upload.
func (l *Loader) Load(r io.Reader) (*Frame, error) {
	data, err := l.Read(r)
	if err != nil {
		return nil, err
	}
	return l.Decode(data)
}

// Decode sniffs, decodes and orients an image, then scales it to fit
// MaxDimension. Anything that is not an image yields ErrInvalidImage.
func (l *Loader) Decode(data []byte) (*Frame, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrInvalidImage)
	}
	if l.config.MaxUploadBytes > 0 && int64(len(data)) > l.config.MaxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, l.config.MaxUploadBytes)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrInvalidImage, mime.String())
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil && mime.Is("image/webp") {
		img, err = webp.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if limit := l.config.MaxDimension; limit > 0 {
		b := img.Bounds()
		if b.Dx() > limit || b.Dy() > limit {
			img = imaging.Fit(img, limit, limit, imaging.Lanczos)
		}
	}

	b := img.Bounds()
	return &Frame{
		Image:  img,
		MIME:   mime.String(),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}
