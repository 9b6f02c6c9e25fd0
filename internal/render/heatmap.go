package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/pkg/utils"
)

// coolwarm end points
var (
	heatNegative = [3]uint8{59, 76, 192}
	heatNeutral  = [3]uint8{221, 221, 221}
	heatPositive = [3]uint8{180, 4, 38}
	heatMissing  = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

const (
	heatTitle       = "Weather factors vs rentals (Pearson r)"
	heatLabelMargin = 90
	heatTopMargin   = 40
	heatFootMargin  = 30
)

// correlation draws the matrix as an annotated heatmap
func (r *Renderer) correlation(w io.Writer, m domain.CorrelationMatrix) error {
	k := len(m.Variables)
	if k == 0 {
		return domain.ErrNoChartData
	}

	side := r.height
	if r.width < side {
		side = r.width
	}
	cell := (side - heatTopMargin - heatFootMargin) / k
	if cell < 24 {
		cell = 24
	}
	width := heatLabelMargin + k*cell + 20
	height := heatTopMargin + k*cell + heatFootMargin

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawText(img, face, heatTitle, width/2, heatTopMargin/2+4, color.Black)

	for _, c := range m.Cells() {
		x0 := heatLabelMargin + c.Col*cell
		y0 := heatTopMargin + c.Row*cell
		rect := image.Rect(x0+1, y0+1, x0+cell-1, y0+cell-1)
		draw.Draw(img, rect, image.NewUniform(heatColor(c.Intensity)), image.Point{}, draw.Src)

		label := "n/a"
		var textCol color.Color = color.Black
		if c.Intensity.Defined() {
			label = fmt.Sprintf("%.2f", float64(c.Intensity))
			if v := float64(c.Intensity); v > 0.6 || v < -0.6 {
				textCol = color.White
			}
		}
		drawText(img, face, label, x0+cell/2, y0+cell/2+4, textCol)
	}

	for i, name := range m.Variables {
		// row labels right-aligned against the grid, column labels centred below it
		rowW := font.MeasureString(face, name).Ceil()
		drawText(img, face, name, heatLabelMargin-8-rowW/2, heatTopMargin+i*cell+cell/2+4, color.Black)
		drawText(img, face, name, heatLabelMargin+i*cell+cell/2, heatTopMargin+k*cell+18, color.Black)
	}

	return png.Encode(w, img)
}

// heatColor maps -1..1 onto the diverging scale
func heatColor(c domain.Coefficient) color.Color {
	if !c.Defined() {
		return heatMissing
	}
	v := utils.Clamp(float64(c), -1, 1)
	rgb := utils.LerpColor(heatNeutral, heatPositive, v)
	if v < 0 {
		rgb = utils.LerpColor(heatNeutral, heatNegative, -v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

// drawText centres text horizontally on cx with its baseline at y
func drawText(dst draw.Image, face font.Face, text string, cx, y int, col color.Color) {
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	tw := dr.MeasureString(text).Ceil()
	dr.Dot = fixed.Point26_6{X: fixed.I(cx - tw/2), Y: fixed.I(y)}
	dr.DrawString(text)
}
