package widget

import (
	"image"

	"git.sr.ht/~gioverse/scroll/list"
)

// Card holds the state of a slot element displaying list items across
// frames. A Card is rebound to many items over its lifetime.
type Card struct {
	Motion
	// Index is the logical index of the displayed item.
	Index int
	// Item is the displayed item.
	Item list.Item
	// Selectable reports whether the content accepts text interaction. It
	// is cleared while the card is dragged.
	Selectable bool
	// Avatar caches the image of the author.
	Avatar CachedImage
	// avatarURL identifies the image held by Avatar.
	avatarURL string
}

var _ list.Element = (*Card)(nil)

// Bind displays the item. Any horizontal displacement and fading left by a
// swipe on the previous item is reset.
func (c *Card) Bind(index int, item list.Item) {
	c.Index = index
	c.Item = item
	c.Motion.Move(image.Pt(0, c.Target().Y), 0)
	c.SetOpacity(1)
	c.Selectable = true
	if item.Author.PhotoURL != c.avatarURL {
		c.Avatar.Reset()
		c.avatarURL = item.Author.PhotoURL
	}
}

// SetSelectable toggles text interaction.
func (c *Card) SetSelectable(selectable bool) {
	c.Selectable = selectable
}

// Displacement returns the horizontal displacement of the card caused by a
// swipe.
func (c *Card) Displacement() int {
	return c.Offset().X
}

// Placeholder holds the state of a loading placeholder.
type Placeholder struct {
	Motion
}

var _ list.Visual = (*Placeholder)(nil)
