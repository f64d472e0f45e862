package models

// MaintenanceItem is a catalog entry describing a kind of maintenance action.
type MaintenanceItem struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name" validate:"required"`
	Category    Category `bson:"category" json:"category" validate:"required,category"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
}

// EntityID returns the item id.
func (i MaintenanceItem) EntityID() string { return i.ID }
