package domain

import (
	"crypto/sha256"
	"fmt"
)

// Direction is a rendering hint for a relationship
type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionBack    Direction = "back"
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionLeft    Direction = "left"
	DirectionRight   Direction = "right"
)

// Relationship connects two elements by identity value
type Relationship struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Label      string    `json:"label"`
	Technology string    `json:"technology,omitempty"`
	Direction  Direction `json:"direction,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
}

// NewRelationship creates a relationship between two elements
func NewRelationship(from, to Identified, label string) *Relationship {
	return NewRelationshipByKey(from.Identity().Value(), to.Identity().Value(), label)
}

// NewRelationshipByKey creates a relationship from identity values
func NewRelationshipByKey(from, to, label string) *Relationship {
	rel := &Relationship{
		From:      from,
		To:        to,
		Label:     label,
		Direction: DirectionForward,
	}
	rel.ID = rel.GenerateID()
	return rel
}

// GenerateID creates a deterministic ID from the endpoints and label.
// Relationships are directed, so the endpoints are not normalized.
func (r *Relationship) GenerateID() string {
	key := fmt.Sprintf("%s|%s|%s", r.From, r.To, r.Label)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash[:8])
}

// Involves reports whether the relationship touches the element key
func (r *Relationship) Involves(key string) bool {
	return r.From == key || r.To == key
}
