package widget

import (
	"image"

	"gioui.org/op/paint"
)

// CachedImage is a cacheable image operation.
type CachedImage struct {
	op paint.ImageOp
}

// Changer can report that is has changed since the last call.
type Changer interface {
	Changed() bool
}

// ToNRGBA can render an image.NRGBA image.
type ToNRGBA interface {
	ToNRGBA() *image.NRGBA
}

// Cache the image if it is not already. The first call computes the image
// operation; later calls do nothing unless src implements Changer and
// reports a change. An image implementing ToNRGBA is converted first, as Gio
// has a fast path for *image.NRGBA.
func (img *CachedImage) Cache(src image.Image) {
	if src == nil {
		return
	}
	if changer, ok := src.(Changer); img.Valid() && (!ok || !changer.Changed()) {
		return
	}
	if nrgba, ok := src.(ToNRGBA); ok {
		src = nrgba.ToNRGBA()
	}
	img.op = paint.NewImageOp(src)
}

// Valid reports whether an image has been cached.
func (img *CachedImage) Valid() bool {
	return img.op != (paint.ImageOp{})
}

// Reset drops the cached image, as when the card it belongs to displays
// another author.
func (img *CachedImage) Reset() {
	img.op = paint.ImageOp{}
}

// Op returns the concrete image operation.
func (img *CachedImage) Op() paint.ImageOp {
	return img.op
}
