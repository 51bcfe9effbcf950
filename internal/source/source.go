// Package source provides the read-only item sequences a list renders.
package source

import (
	"fmt"
	"strings"
)

// Item is one record of a list.
type Item struct {
	Index   int
	Title   string
	Content string
}

// Source is an ordered, immutable sequence of items. The engine only holds
// indices into it.
type Source interface {
	Count() int
	Get(index int) (Item, error)
}

// Slice is a Source backed by a slice of items.
type Slice []Item

// Count returns the number of items.
func (s Slice) Count() int {
	return len(s)
}

// Get returns the item at index.
func (s Slice) Get(index int) (Item, error) {
	if index < 0 || index >= len(s) {
		return Item{}, fmt.Errorf("item %d out of range for %d items", index, len(s))
	}
	return s[index], nil
}

// Generated is a Source that derives every item from its index, so a list of
// a million items costs no memory until items are read. Item i has the title
// "Item #i" and between 0 and MaxLines content lines.
type Generated struct {
	count    int
	maxLines int
	seed     uint64
}

// NewGenerated creates a generated source of count items.
func NewGenerated(count, maxLines int, seed int64) *Generated {
	return &Generated{
		count:    max(count, 0),
		maxLines: max(maxLines, 0),
		seed:     uint64(seed),
	}
}

// Count returns the number of items.
func (g *Generated) Count() int {
	return g.count
}

// Get returns the item at index. The same index always yields the same item.
func (g *Generated) Get(index int) (Item, error) {
	if index < 0 || index >= g.count {
		return Item{}, fmt.Errorf("item %d out of range for %d items", index, g.count)
	}

	lines := g.Lines(index)
	var b strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "line %d of item %d", i+1, index)
	}

	return Item{
		Index:   index,
		Title:   fmt.Sprintf("Item #%d", index),
		Content: b.String(),
	}, nil
}

// Lines returns how many content lines item index has.
func (g *Generated) Lines(index int) int {
	if g.maxLines == 0 {
		return 0
	}
	return int(mix(g.seed^uint64(index)) % uint64(g.maxLines+1))
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
