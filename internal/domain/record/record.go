package record

import (
	"time"

	"github.com/google/uuid"
)

// Classification is the severity/category tag carried by every patient record.
type Classification string

const (
	ClassificationMA    Classification = "MA"
	ClassificationMI    Classification = "MI"
	ClassificationDD    Classification = "DD"
	ClassificationFABEB Classification = "FAB/EB"
)

// Classifications returns the fixed enumeration in display order. The order
// is significant: classification breakdowns are emitted in this order.
func Classifications() []Classification {
	return []Classification{
		ClassificationMA,
		ClassificationMI,
		ClassificationDD,
		ClassificationFABEB,
	}
}

func (c Classification) IsValid() bool {
	switch c {
	case ClassificationMA, ClassificationMI, ClassificationDD, ClassificationFABEB:
		return true
	}
	return false
}

// Record is a single patient entry. ID and CreatedAt are assigned at
// creation and never change afterwards; every other field is replaceable
// through the editor.
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	Name           string         `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Classification Classification `gorm:"column:classification;type:varchar(10);not null;index" json:"classification"`
	Procedures     []string       `gorm:"column:procedures;serializer:json" json:"procedures"`
	Notes          string         `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (Record) TableName() string {
	return "clinical.records"
}

// HasProcedure reports whether the record contains the given procedure,
// comparing with whitespace-trimmed names.
func (r *Record) HasProcedure(name string) bool {
	for _, p := range r.Procedures {
		if trimmed(p) == name {
			return true
		}
	}
	return false
}

// CreateCommand carries the fields the store needs to persist a new record.
// The store assigns ID and CreatedAt.
type CreateCommand struct {
	Name           string
	Classification Classification
	Procedures     []string
	Notes          string
}

// UpdateCommand applies partial field replacement. Nil fields are left
// unchanged by the store.
type UpdateCommand struct {
	Name           *string
	Classification *Classification
	Procedures     *[]string
	Notes          *string
}
