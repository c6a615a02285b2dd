package list

import "time"

// Unbound is the logical index reported by a slot (or an empty window) that
// does not display any item.
const Unbound = -1

// Author identifies who wrote an Item.
type Author struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// Item is a single immutable record of the logical sequence. Items are
// identified by their position within the sequence, never by ID, which is
// carried along only for presentation.
type Item struct {
	ID        string    `json:"id,omitempty"`
	Author    Author    `json:"author"`
	UpdatedAt time.Time `json:"updated"`
	Content   string    `json:"content"`
}
