// Package render draws detected pose landmarks over an image.
package render

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"

	"github.com/ayusman/hoopform/internal/detector"
)

// DefaultJPEGQuality is used by EncodeJPEG when quality is out of range.
const DefaultJPEGQuality = 90

// ErrEmptyImage is returned when drawing on or encoding an empty Mat.
var ErrEmptyImage = errors.New("empty image")

// Connections are the skeleton segments drawn between landmark indices.
var Connections = [][2]int{
	// head
	{detector.Nose, detector.LeftEyeInner}, {detector.LeftEyeInner, detector.LeftEye},
	{detector.LeftEye, detector.LeftEyeOuter}, {detector.LeftEyeOuter, detector.LeftEar},
	{detector.Nose, detector.RightEyeInner}, {detector.RightEyeInner, detector.RightEye},
	{detector.RightEye, detector.RightEyeOuter}, {detector.RightEyeOuter, detector.RightEar},

	// torso and arms
	{detector.MouthLeft, detector.MouthRight},
	{detector.LeftShoulder, detector.RightShoulder},
	{detector.LeftShoulder, detector.LeftElbow}, {detector.RightShoulder, detector.RightElbow},
	{detector.LeftElbow, detector.LeftWrist}, {detector.RightElbow, detector.RightWrist},

	// hips and legs
	{detector.LeftShoulder, detector.LeftHip}, {detector.RightShoulder, detector.RightHip},
	{detector.LeftHip, detector.RightHip},
	{detector.LeftHip, detector.LeftKnee}, {detector.RightHip, detector.RightKnee},
	{detector.LeftKnee, detector.LeftAnkle}, {detector.RightKnee, detector.RightAnkle},
	{detector.LeftAnkle, detector.LeftHeel}, {detector.RightAnkle, detector.RightHeel},
	{detector.LeftHeel, detector.LeftFootIndex}, {detector.RightHeel, detector.RightFootIndex},
}

// Style controls how the skeleton is drawn. Colours are hex strings.
type Style struct {
	LineColor     string `json:"line_color"`
	PointColor    string `json:"point_color"`
	LineThickness int    `json:"line_thickness"`
	PointRadius   int    `json:"point_radius"`
	JPEGQuality   int    `json:"jpeg_quality"`
}

// DefaultStyle draws green segments and red joints.
func DefaultStyle() Style {
	return Style{
		LineColor:     "#00FF00",
		PointColor:    "#FF0000",
		LineThickness: 2,
		PointRadius:   3,
		JPEGQuality:   DefaultJPEGQuality,
	}
}

// Validate checks that both colours parse and sizes are positive.
func (s Style) Validate() error {
	if _, err := parseColor(s.LineColor); err != nil {
		return fmt.Errorf("line_color: %w", err)
	}
	if _, err := parseColor(s.PointColor); err != nil {
		return fmt.Errorf("point_color: %w", err)
	}
	if s.LineThickness <= 0 {
		return fmt.Errorf("line_thickness must be positive")
	}
	if s.PointRadius <= 0 {
		return fmt.Errorf("point_radius must be positive")
	}
	return nil
}

func parseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Overlay draws the skeleton of set onto img in place. Segments are drawn
// only when both ends are present, and a filled dot marks every present
// landmark. A nil set leaves img untouched.
func Overlay(img *gocv.Mat, set *detector.LandmarkSet, style Style) error {
	if img == nil || img.Empty() {
		return ErrEmptyImage
	}
	lineColor, err := parseColor(style.LineColor)
	if err != nil {
		return err
	}
	pointColor, err := parseColor(style.PointColor)
	if err != nil {
		return err
	}
	if set == nil {
		return nil
	}

	w, h := img.Cols(), img.Rows()

	for _, c := range Connections {
		a, okA := set.Get(c[0])
		b, okB := set.Get(c[1])
		if !okA || !okB {
			continue
		}
		gocv.Line(img, toPixel(a, w, h), toPixel(b, w, h), lineColor, style.LineThickness)
	}

	for i := 0; i < detector.NumLandmarks; i++ {
		lm, ok := set.Get(i)
		if !ok {
			continue
		}
		gocv.Circle(img, toPixel(lm, w, h), style.PointRadius, pointColor, -1)
	}

	return nil
}

func toPixel(lm detector.Landmark, w, h int) image.Point {
	return image.Pt(int(math.Round(lm.X*float64(w))), int(math.Round(lm.Y*float64(h))))
}

// EncodeJPEG encodes img as JPEG at the given quality (1-100).
func EncodeJPEG(img gocv.Mat, quality int) ([]byte, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img, []int{int(gocv.IMWriteJpegQuality), quality})
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	// The buffer is freed on Close, so copy out.
	return append([]byte(nil), buf.GetBytes()...), nil
}

// DataURL wraps JPEG bytes in a data URL a browser can display directly.
func DataURL(jpeg []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)
}
