// Package dial draws the two meter faces with their needles where the PWM
// outputs put them, as SVG or as a rasterised PNG.
package dial

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	pkgerrors "github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"chronulator/core"
)

// Face geometry in SVG user units
const (
	Width  = 400
	Height = 130

	radius     = 90
	needleLen  = 85
	tickLen    = 10
	pivotY     = 115
	hourX      = 100
	minuteX    = 300
	scaleMarks = core.FullScale / core.HourStep
)

// Deflection returns how far a needle swings for an off-time, from 0 at rest
// to 1 at full scale
func Deflection(offTicks uint8) float64 {
	if offTicks >= core.CycleTicks {
		return 0
	}
	on := float64(core.CycleTicks - offTicks)
	return math.Min(on/core.FullScale, 1)
}

// needleEnd returns the tip of a needle pivoting at cx, swinging from the
// left end of the scale to the right
func needleEnd(cx float64, length float64, deflection float64) (x, y float64) {
	theta := math.Pi * (1 - deflection)
	return cx + length*math.Cos(theta), pivotY - length*math.Sin(theta)
}

// SVG writes both faces for the given outputs, hour meter on the left
func SVG(w io.Writer, out core.MeterOutputs) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		Width, Height, Width, Height)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="#ffffff"/>`+"\n", Width, Height)
	writeFace(&b, "hour", hourX, Deflection(out.HourDuty))
	writeFace(&b, "minute", minuteX, Deflection(out.MinuteDuty))
	b.WriteString("</svg>\n")

	_, err := w.Write(b.Bytes())
	return pkgerrors.Wrap(err, "failed to write svg")
}

func writeFace(b *bytes.Buffer, name string, cx float64, deflection float64) {
	fmt.Fprintf(b, `<path id="%s-scale" d="M %.1f %d A %d %d 0 0 1 %.1f %d" fill="none" stroke="#202020" stroke-width="2"/>`+"\n",
		name, cx-radius, pivotY, radius, radius, cx+radius, pivotY)

	for i := 0; i <= scaleMarks; i++ {
		d := float64(i) / scaleMarks
		x1, y1 := needleEnd(cx, radius-tickLen, d)
		x2, y2 := needleEnd(cx, radius, d)
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#202020" stroke-width="2"/>`+"\n",
			x1, y1, x2, y2)
	}

	x, y := needleEnd(cx, needleLen, deflection)
	fmt.Fprintf(b, `<line id="%s-needle" x1="%.1f" y1="%d" x2="%.1f" y2="%.1f" stroke="#c00000" stroke-width="3"/>`+"\n",
		name, cx, pivotY, x, y)
	fmt.Fprintf(b, `<circle cx="%.1f" cy="%d" r="5" fill="#202020"/>`+"\n", cx, pivotY)
}

// PNG rasterises the faces at the given width; height keeps the aspect ratio
func PNG(w io.Writer, out core.MeterOutputs, width int) error {
	img, err := Render(out, width)
	if err != nil {
		return err
	}
	return pkgerrors.Wrap(png.Encode(w, img), "failed to encode png")
}

// Render rasterises the faces into a new image
func Render(out core.MeterOutputs, width int) (*image.RGBA, error) {
	if width <= 0 {
		return nil, pkgerrors.Errorf("bad image width %d", width)
	}
	height := width * Height / Width

	var src bytes.Buffer
	if err := SVG(&src, out); err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(&src)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to parse dial svg")
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
