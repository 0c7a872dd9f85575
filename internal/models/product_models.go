package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Product types as used by the catalog.
const (
	ProductTypeBurger = "burger"
	ProductTypeCombo  = "combo"
	ProductTypeSide   = "side"
	ProductTypeDrink  = "drink"
)

// ProductOptions captures which customizations a product supports.
// Stored as a JSONB column.
type ProductOptions struct {
	Meat    bool   `json:"meat"`
	Lettuce bool   `json:"lettuce"`
	Tomato  bool   `json:"tomato"`
	Onion   bool   `json:"onion"`
	Bacon   string `json:"bacon"` // grilled, caramelized or none
}

// Value implements driver.Valuer for the JSONB options column.
func (po ProductOptions) Value() (driver.Value, error) {
	return json.Marshal(po)
}

// Scan implements sql.Scanner for the JSONB options column.
func (po *ProductOptions) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, po)
	case string:
		return json.Unmarshal([]byte(v), po)
	default:
		return fmt.Errorf("unsupported type %T for ProductOptions", src)
	}
}

// Product is one entry in the restaurant's catalog. Orders reference products
// by ID and keep a name/code snapshot; they never read the live catalog again.
type Product struct {
	ID        int64          `json:"id" db:"id"`
	Name      string         `json:"name" db:"name" binding:"required"`
	Code      string         `json:"code" db:"code" binding:"required"` // unique catalog code, e.g. HB-GRILLED
	Type      string         `json:"type" db:"type" binding:"required"`
	Price     float64        `json:"price" db:"price" binding:"required,gt=0"`
	Options   ProductOptions `json:"options" db:"options"`
	Active    bool           `json:"active" db:"active"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}
