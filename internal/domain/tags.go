package domain

import (
	"slices"
	"strings"
)

// Tags is an immutable set of labels. Order of insertion is irrelevant; the
// members are kept sorted.
type Tags struct {
	items []string
}

// NewTags builds a tag set, trimming and deduplicating the input and
// dropping blank entries
func NewTags(tags ...string) Tags {
	items := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		items = append(items, t)
	}
	slices.Sort(items)
	return Tags{items: slices.Compact(items)}
}

// Add returns a new set with the given tags added
func (t Tags) Add(tags ...string) Tags {
	return NewTags(append(t.Slice(), tags...)...)
}

// Has reports whether the tag is a member
func (t Tags) Has(tag string) bool {
	_, found := slices.BinarySearch(t.items, tag)
	return found
}

// Len returns the number of tags
func (t Tags) Len() int {
	return len(t.items)
}

// Slice returns a sorted copy of the members
func (t Tags) Slice() []string {
	return slices.Clone(t.items)
}

// Equal compares two sets
func (t Tags) Equal(other Tags) bool {
	return slices.Equal(t.items, other.items)
}

// String renders the set as a comma separated list
func (t Tags) String() string {
	return strings.Join(t.items, ",")
}
