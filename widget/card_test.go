package widget

import (
	"image"
	"image/color"
	"testing"
	"time"

	"git.sr.ht/~gioverse/scroll/list"
)

func TestCardBindResetsSwipe(t *testing.T) {
	var c Card
	c.Move(image.Pt(0, 300), 0)
	c.Bind(1, list.Item{Content: "first"})
	c.Move(image.Pt(-120, 300), 0)
	c.SetOpacity(0.2)
	c.SetSelectable(false)

	c.Bind(7, list.Item{Content: "second"})
	if c.Index != 7 || c.Item.Content != "second" {
		t.Errorf("expected card bound to index 7, got %d %q", c.Index, c.Item.Content)
	}
	if got := c.Offset(); got != image.Pt(0, 300) {
		t.Errorf("expected displacement reset to (0,300), got %v", got)
	}
	if c.Displacement() != 0 {
		t.Errorf("expected no displacement, got %d", c.Displacement())
	}
	if c.Opacity() != 1 {
		t.Errorf("expected full opacity, got %v", c.Opacity())
	}
	if !c.Selectable {
		t.Errorf("expected card to be selectable")
	}
}

func TestCardBindDropsStaleAvatar(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	alice := list.Item{Author: list.Author{Name: "alice", PhotoURL: "/photos/1.jpg"}, UpdatedAt: time.Unix(0, 0)}
	bob := list.Item{Author: list.Author{Name: "bob", PhotoURL: "/photos/2.jpg"}}

	var c Card
	c.Bind(0, alice)
	c.Avatar.Cache(img)
	c.Bind(1, alice)
	if !c.Avatar.Valid() {
		t.Errorf("avatar of the same author should be kept")
	}
	c.Bind(2, bob)
	if c.Avatar.Valid() {
		t.Errorf("avatar of the previous author should be dropped")
	}
}

type changingImage struct {
	*image.NRGBA
	changed bool
}

func (c *changingImage) Changed() bool {
	return c.changed
}

func TestCachedImage(t *testing.T) {
	var img CachedImage
	img.Cache(nil)
	if img.Valid() {
		t.Fatalf("nil image should not be cached")
	}
	src := &changingImage{NRGBA: image.NewNRGBA(image.Rect(0, 0, 2, 2))}
	img.Cache(src)
	if !img.Valid() {
		t.Fatalf("expected image to be cached")
	}
	first := img.Op()
	img.Cache(src)
	if img.Op() != first {
		t.Errorf("unchanged image should not be cached again")
	}
	src.changed = true
	img.Cache(src)
	if img.Op() == first {
		t.Errorf("changed image should be cached again")
	}
	img.Reset()
	if img.Valid() {
		t.Errorf("expected reset image to be invalid")
	}
}
