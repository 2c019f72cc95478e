package store

import (
	"encoding/json"

	"github.com/yungbote/barisense-backend/internal/domain"
)

type Collection string

const (
	CollectionCoffees  Collection = "coffees"
	CollectionWaters   Collection = "waters"
	CollectionShots    Collection = "shots"
	CollectionTastings Collection = "tastings"
	CollectionVerdicts Collection = "verdicts"
)

func Collections() []Collection {
	return []Collection{CollectionCoffees, CollectionWaters, CollectionShots, CollectionTastings, CollectionVerdicts}
}

// Document is the whole persisted state: one array per collection.
type Document struct {
	Coffees  []*domain.Coffee  `json:"coffees"`
	Waters   []*domain.Water   `json:"waters"`
	Shots    []*domain.Shot    `json:"shots"`
	Tastings []*domain.Tasting `json:"tastings"`
	Verdicts []*domain.Verdict `json:"verdicts"`
}

func NewDocument() *Document {
	return (&Document{}).normalize()
}

// normalize replaces nil collections with empty ones so they serialise as [].
func (d *Document) normalize() *Document {
	if d.Coffees == nil {
		d.Coffees = []*domain.Coffee{}
	}
	if d.Waters == nil {
		d.Waters = []*domain.Water{}
	}
	if d.Shots == nil {
		d.Shots = []*domain.Shot{}
	}
	if d.Tastings == nil {
		d.Tastings = []*domain.Tasting{}
	}
	if d.Verdicts == nil {
		d.Verdicts = []*domain.Verdict{}
	}
	return d
}

// Clone returns a deep copy that shares no records with d.
func (d *Document) Clone() (*Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := &Document{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out.normalize(), nil
}

// Len reports the record count of one collection.
func (d *Document) Len(c Collection) int {
	switch c {
	case CollectionCoffees:
		return len(d.Coffees)
	case CollectionWaters:
		return len(d.Waters)
	case CollectionShots:
		return len(d.Shots)
	case CollectionTastings:
		return len(d.Tastings)
	case CollectionVerdicts:
		return len(d.Verdicts)
	}
	return 0
}
