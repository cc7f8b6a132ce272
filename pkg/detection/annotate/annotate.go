// Package annotate converts inference boxes and draws them onto the analysed image.
package annotate

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"minascan/entities"
)

var (
	BoxColor   = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	LabelColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

const thickness = 2

// ToCorners maps a center-form box to corner form, clamped to [0,W]x[0,H].
func ToCorners(cx, cy, w, h float64, imgW, imgH int) entities.BoundingBox {
	return entities.BoundingBox{
		X1: clamp(cx-w/2, 0, float64(imgW)),
		Y1: clamp(cy-h/2, 0, float64(imgH)),
		X2: clamp(cx+w/2, 0, float64(imgW)),
		Y2: clamp(cy+h/2, 0, float64(imgH)),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Decode reads JPEG, PNG, GIF, BMP, TIFF or WebP bytes, honouring EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Draw returns a copy of img with a box and "class: 0.93" label per pest.
func Draw(img image.Image, pests []entities.DetectedPest) *image.NRGBA {
	dst := imaging.Clone(img)
	for _, p := range pests {
		b := p.BoundingBox
		r := image.Rect(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2))
		drawRect(dst, r, BoxColor)
		drawLabel(dst, r.Min, fmt.Sprintf("%s: %.2f", p.ClassName, p.Confidence))
	}
	return dst
}

func drawRect(dst *image.NRGBA, r image.Rectangle, col color.Color) {
	src := &image.Uniform{C: col}
	for i := 0; i < thickness; i++ {
		edges := []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y+i, r.Max.X, r.Min.Y+i+1),
			image.Rect(r.Min.X, r.Max.Y-i-1, r.Max.X, r.Max.Y-i),
			image.Rect(r.Min.X+i, r.Min.Y, r.Min.X+i+1, r.Max.Y),
			image.Rect(r.Max.X-i-1, r.Min.Y, r.Max.X-i, r.Max.Y),
		}
		for _, e := range edges {
			draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
		}
	}
}

// drawLabel puts the text on a filled box above the top-left corner, or inside when there is no room.
func drawLabel(dst *image.NRGBA, at image.Point, text string) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil() + 4
	h := face.Metrics().Height.Ceil() + 2
	y := at.Y - h
	if y < 0 {
		y = at.Y
	}
	bg := image.Rect(at.X, y, at.X+w, y+h).Intersect(dst.Bounds())
	draw.Draw(dst, bg, &image.Uniform{C: BoxColor}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: LabelColor},
		Face: face,
		Dot:  fixed.P(at.X+2, y+face.Metrics().Ascent.Ceil()+1),
	}
	d.DrawString(text)
}

// EncodeJPEG encodes img without metadata, so the pixel frame is the decoded one.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64JPEG encodes img as JPEG and returns standard base64.
func EncodeBase64JPEG(img image.Image) (string, error) {
	b, err := EncodeJPEG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
