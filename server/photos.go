package server

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lucasb-eyer/go-colorful"
)

// PhotoSize is the edge length of served avatars.
const PhotoSize = 64

// handlePhoto serves GET /photos/:name with an avatar generated from the
// name, so the demo history needs no image assets.
func (s *Server) handlePhoto(c *gin.Context) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Identicon(c.Param("name"), PhotoSize)); err != nil {
		s.log.Error().Err(err).Msg("encode photo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// Identicon renders a horizontally symmetric 5x5 pattern derived from seed.
// The same seed always yields the same image.
func Identicon(seed string, size int) *image.NRGBA {
	h := fnv.New64a()
	h.Write([]byte(seed))
	sum := h.Sum64()
	bg := colorful.Hsv(float64(sum%360), 0.15, 0.97)
	fg := colorful.Hsv(float64((sum>>9)%360), 0.65, 0.7)

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cell := size / 5
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, bg)
		}
	}
	bit := uint(18)
	for row := 0; row < 5; row++ {
		for col := 0; col < 3; col++ {
			on := sum>>bit&1 == 1
			bit++
			if !on {
				continue
			}
			for _, c := range []int{col, 4 - col} {
				for y := row * cell; y < (row+1)*cell && y < size; y++ {
					for x := c * cell; x < (c+1)*cell && x < size; x++ {
						img.Set(x, y, fg)
					}
				}
			}
		}
	}
	return img
}
