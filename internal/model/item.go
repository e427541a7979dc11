package model

// Item represents a named record in the items table.
type Item struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description *string  `json:"description" db:"description"`
	Price       *float64 `json:"price" db:"price"`
}

// ItemCreate represents the request payload for creating an item.
type ItemCreate struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// ItemUpdate represents the request payload for updating an item.
//
// A nil field keeps the stored value. An explicit JSON null decodes to nil as
// well, so a client cannot clear description or price through an update.
type ItemUpdate struct {
	Name        *string  `json:"name" validate:"omitnil,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// ApplyTo merges the non-nil fields of the update into item.
func (u ItemUpdate) ApplyTo(item *Item) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Description != nil {
		item.Description = u.Description
	}
	if u.Price != nil {
		item.Price = u.Price
	}
}

// MessageResponse is a plain acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}
