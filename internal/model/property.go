package model

import "time"

// Property types accepted by the listing endpoints.
const (
	TypeApartment = "APARTMENT"
	TypeHouse     = "HOUSE"
	TypeCondo     = "CONDO"
	TypeTownhouse = "TOWNHOUSE"
	TypeStudio    = "STUDIO"
)

// Listing lifecycle states. Only AVAILABLE properties show up in the
// public search results; RENTED and SOLD stay reachable by ID.
const (
	StatusAvailable = "AVAILABLE"
	StatusRented    = "RENTED"
	StatusSold      = "SOLD"
)

// ValidPropertyType reports whether s names a known property type.
func ValidPropertyType(s string) bool {
	switch s {
	case TypeApartment, TypeHouse, TypeCondo, TypeTownhouse, TypeStudio:
		return true
	}
	return false
}

// ValidPropertyStatus reports whether s names a known listing status.
func ValidPropertyStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusRented, StatusSold:
		return true
	}
	return false
}

// Property mirrors the `properties` table. Images and Amenities are
// stored as JSON-encoded text columns and decoded by the repository,
// so at this level they are ordinary string slices. OwnerID is the
// only authorization-relevant field: update and delete are permitted
// to the owner alone.
type Property struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Area        float64   `json:"area"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zipCode"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Images      []string  `json:"images"`
	Amenities   []string  `json:"amenities"`
	OwnerID     string    `json:"ownerId"`
	Owner       *UserPart `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PropertyPatch enumerates exactly the mutable fields of a property.
// Nil means "leave unchanged". ownerId, id and timestamps are not
// listed on purpose; they cannot be rewritten through the API.
type PropertyPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Type        *string   `json:"type"`
	Status      *string   `json:"status"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	Area        *float64  `json:"area"`
	Address     *string   `json:"address"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	ZipCode     *string   `json:"zipCode"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Images      *[]string `json:"images"`
	Amenities   *[]string `json:"amenities"`
}
