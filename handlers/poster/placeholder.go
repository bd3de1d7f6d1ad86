package poster

import (
	"encoding/hex"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/webtor-io/movie-ui/models"
)

// Placeholder draws a 2:3 poster in genre colours: background with a
// foreground band in the lower part.
func Placeholder(g models.Genre, width int) *image.NRGBA {
	colors := g.Colors()
	height := width * 3 / 2
	bg := imaging.New(width, height, parseColor(colors.Background))
	band := imaging.New(width, height/8, parseColor(colors.Foreground))
	return imaging.Paste(bg, band, image.Pt(0, height*3/4))
}

func parseColor(s string) color.NRGBA {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 3 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
}
