package model

import "fmt"

// OwnerType identifies which organization table an owner id points into.
type OwnerType string

const (
	OwnerTypeHospital OwnerType = "hospital"
	OwnerTypeFleet    OwnerType = "fleet"
)

func (t OwnerType) Valid() bool {
	return t == OwnerTypeHospital || t == OwnerTypeFleet
}

// Owner is the exclusive hospital-or-fleet relationship carried by
// ambulances and staff. Exactly one owner table is referenced; the pair
// is stored as owner_type/owner_id columns.
type Owner struct {
	Type OwnerType `json:"owner_type" db:"owner_type"`
	ID   int64     `json:"owner_id" db:"owner_id"`
}

func (o Owner) String() string {
	return fmt.Sprintf("%s/%d", o.Type, o.ID)
}

// Table returns the owner table selected by the tag.
func (o Owner) Table() string {
	if o.Type == OwnerTypeFleet {
		return "fleets"
	}
	return "hospitals"
}
