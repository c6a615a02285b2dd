package main

import (
	"fmt"
	"hash/fnv"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"

	"git.sr.ht/~gioverse/scroll/list"
)

// placeholderLines is the height of a placeholder, in lines.
const placeholderLines = 3

// visual is the state shared by rows and placeholders. Offsets are in cells
// horizontally and lines vertically; transitions are not animated.
type visual struct {
	offset  image.Point
	opacity float32
}

func (v *visual) Move(offset image.Point, _ time.Duration) { v.offset = offset }
func (v *visual) SetOpacity(opacity float32)               { v.opacity = opacity }

// row displays a list item as a header line followed by the wrapped content.
type row struct {
	visual
	index      int
	item       list.Item
	selectable bool
}

func (r *row) Bind(index int, item list.Item) {
	r.index, r.item = index, item
	r.offset.X = 0
	r.opacity = 1
	r.selectable = true
}

func (r *row) SetSelectable(selectable bool) { r.selectable = selectable }

type placeholder struct {
	visual
}

var (
	timeStyle        = lipgloss.NewStyle().Faint(true)
	fadedStyle       = lipgloss.NewStyle().Faint(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// surface implements list.Surface for a terminal of the given width. Every
// visual ever created is retained for rendering.
type surface struct {
	width        int
	now          func() time.Time
	rows         []*row
	placeholders []*placeholder
}

func (s *surface) NewElement() list.Element {
	r := &row{}
	s.rows = append(s.rows, r)
	return r
}

func (s *surface) NewPlaceholder() list.Visual {
	p := &placeholder{}
	s.placeholders = append(s.placeholders, p)
	return p
}

// Measure reports the width of the terminal and the number of lines.
func (s *surface) Measure(v list.Visual) image.Point {
	switch v := v.(type) {
	case *row:
		return image.Pt(s.width, len(s.rowLines(v)))
	case *placeholder:
		return image.Pt(s.width, placeholderLines)
	}
	return image.Point{}
}

// rowLines renders the unstyled lines of a row.
func (s *surface) rowLines(r *row) []string {
	header := fmt.Sprintf("%s · %s", r.item.Author.Name, humanize.RelTime(r.item.UpdatedAt, s.now(), "ago", "from now"))
	lines := []string{header}
	wrap := s.width - 2
	if wrap < 1 {
		wrap = 1
	}
	for _, l := range strings.Split(wordwrap.String(r.item.Content, wrap), "\n") {
		lines = append(lines, "  "+l)
	}
	return lines
}

// renderRow renders the styled lines of a row, shifted by its swipe offset.
func (s *surface) renderRow(r *row) []string {
	lines := s.rowLines(r)
	dx := r.offset.X
	for i, l := range lines {
		l = shift(l, dx, s.width)
		prefix, suffix := "", ""
		if i == 0 && dx > 1 && l != "" {
			prefix, l = hintStyle.Render("✕"), l[1:]
		}
		if i == 0 && dx < 0 {
			if pad := s.width - lipgloss.Width(l) - 1; pad >= 0 {
				suffix = strings.Repeat(" ", pad) + hintStyle.Render("✕")
			}
		}
		switch {
		case r.opacity < 1:
			l = fadedStyle.Render(l)
		case i == 0 && dx == 0:
			name := r.item.Author.Name
			if strings.HasPrefix(l, name) {
				l = authorStyle(name).Render(name) + timeStyle.Render(l[len(name):])
			}
		}
		lines[i] = prefix + l + suffix
	}
	return lines
}

func (s *surface) renderPlaceholder() []string {
	bar := func(n int) string {
		if n < 1 {
			n = 1
		}
		return placeholderStyle.Render(strings.Repeat("░", n))
	}
	return []string{bar(s.width / 3), "  " + bar(s.width-2), "  " + bar((s.width-2)*2/3)}
}

// shift moves a plain line horizontally by dx cells, clipped to width.
// Wide graphemes are never split.
func shift(l string, dx, width int) string {
	if dx > 0 {
		l = strings.Repeat(" ", dx) + l
	} else if dx < 0 {
		g := uniseg.NewGraphemes(l)
		cut, skipped := 0, 0
		for skipped < -dx && g.Next() {
			_, cut = g.Positions()
			skipped += g.Width()
		}
		if skipped < -dx {
			return ""
		}
		l = l[cut:]
	}
	return truncate.String(l, uint(width))
}

// authorStyle picks one of the 14 ANSI colors for an author.
func authorStyle(name string) lipgloss.Style {
	h := fnv.New32a()
	h.Write([]byte(name))
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fmt.Sprint(1 + h.Sum32()%14)))
}
