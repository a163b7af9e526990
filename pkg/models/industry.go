package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Industry is a business listed in the catalog
type Industry struct {
	MongoID primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ID      string             `json:"id" bson:"-"`

	Name        string `json:"name" bson:"name" validate:"required"`
	Sector      string `json:"sector" bson:"sector" validate:"required"`
	Country     string `json:"country,omitempty" bson:"country,omitempty"`
	Region      string `json:"region,omitempty" bson:"region,omitempty"`
	State       string `json:"state,omitempty" bson:"state,omitempty"`
	City        string `json:"city,omitempty" bson:"city,omitempty"`
	Description string `json:"description" bson:"description" validate:"required"`

	Products       []string `json:"products" bson:"products"`
	Certifications []string `json:"certifications,omitempty" bson:"certifications,omitempty"`
	ExportMarkets  []string `json:"export_markets,omitempty" bson:"export_markets,omitempty"`

	ContactPerson string `json:"contact_person,omitempty" bson:"contact_person,omitempty"`
	Position      string `json:"position,omitempty" bson:"position,omitempty"`
	Email         string `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string `json:"phone,omitempty" bson:"phone,omitempty"`
	Website       string `json:"website,omitempty" bson:"website,omitempty"`
	Status        string `json:"status,omitempty" bson:"status,omitempty"`

	Location *Location `json:"location,omitempty" bson:"location,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Location holds map coordinates
type Location struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Metadata is stamped by the server when a record is persisted
type Metadata struct {
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	Verified  bool      `json:"verified" bson:"verified"`
}

// Clone returns a deep copy
func (i Industry) Clone() Industry {
	c := i
	c.Products = cloneStrings(i.Products)
	c.Certifications = cloneStrings(i.Certifications)
	c.ExportMarkets = cloneStrings(i.ExportMarkets)
	if i.Location != nil {
		loc := *i.Location
		c.Location = &loc
	}
	if i.Metadata != nil {
		meta := *i.Metadata
		c.Metadata = &meta
	}
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// IndustryPatch is a partial update. Nil fields are left untouched.
type IndustryPatch struct {
	Name           *string   `json:"name,omitempty" bson:"name,omitempty"`
	Sector         *string   `json:"sector,omitempty" bson:"sector,omitempty"`
	Country        *string   `json:"country,omitempty" bson:"country,omitempty"`
	Region         *string   `json:"region,omitempty" bson:"region,omitempty"`
	State          *string   `json:"state,omitempty" bson:"state,omitempty"`
	City           *string   `json:"city,omitempty" bson:"city,omitempty"`
	Description    *string   `json:"description,omitempty" bson:"description,omitempty"`
	Products       *[]string `json:"products,omitempty" bson:"products,omitempty"`
	Certifications *[]string `json:"certifications,omitempty" bson:"certifications,omitempty"`
	ExportMarkets  *[]string `json:"export_markets,omitempty" bson:"export_markets,omitempty"`
	ContactPerson  *string   `json:"contact_person,omitempty" bson:"contact_person,omitempty"`
	Position       *string   `json:"position,omitempty" bson:"position,omitempty"`
	Email          *string   `json:"email,omitempty" bson:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty" bson:"phone,omitempty"`
	Website        *string   `json:"website,omitempty" bson:"website,omitempty"`
	Status         *string   `json:"status,omitempty" bson:"status,omitempty"`
	Location       *Location `json:"location,omitempty" bson:"location,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all
func (p IndustryPatch) IsEmpty() bool {
	return p == (IndustryPatch{})
}

// IndustryListResponse is the envelope of list and search endpoints
type IndustryListResponse struct {
	Count   int        `json:"count"`
	Results []Industry `json:"results"`
}
