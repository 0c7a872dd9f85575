package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Order statuses. The usual flow is pending -> preparing -> ready -> paid,
// with cancelled reachable from any state, but transitions are not enforced:
// staff may move an order backward to correct mistakes.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// BurgerConfig describes how a single burger should be prepared.
// It is stored as a JSONB column on the order item row.
type BurgerConfig struct {
	MeatQty       int    `json:"meat_qty"`
	MeatType      string `json:"meat_type"`
	BaconType     string `json:"bacon_type"` // grilled, caramelized or none
	ExtraBacon    bool   `json:"extra_bacon"`
	LettuceOption string `json:"lettuce_option"` // normal, wrap or none
	Tomato        bool   `json:"tomato"`
	Onion         bool   `json:"onion"`
	NoVeggies     bool   `json:"no_veggies"`
	Notes         string `json:"notes"` // free-text note for the kitchen
}

// Value implements driver.Valuer so BurgerConfig can be written to a JSONB column.
func (bc BurgerConfig) Value() (driver.Value, error) {
	return json.Marshal(bc)
}

// Scan implements sql.Scanner for reading BurgerConfig back from JSONB.
func (bc *BurgerConfig) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, bc)
	case string:
		return json.Unmarshal([]byte(v), bc)
	default:
		return fmt.Errorf("unsupported type %T for BurgerConfig", src)
	}
}

// OrderItem is one line within an order. The product name/code are a snapshot
// taken at order time; the live catalog is never re-read for existing orders.
// TotalPrice, when present, is authoritative for the line; otherwise the line
// total is UnitPrice * Quantity.
type OrderItem struct {
	ProductID     int64         `json:"product_id" db:"product_id"`
	ProductName   string        `json:"product_name" db:"product_name"`
	ProductCode   string        `json:"product_code,omitempty" db:"product_code"`
	Quantity      int           `json:"quantity" db:"quantity"`
	IncludesFries bool          `json:"includes_fries" db:"includes_fries"`
	ExtraFriesQty int           `json:"extra_fries_qty" db:"extra_fries_qty"`
	DrinkCode     string        `json:"drink_code" db:"drink_code"` // none, coca, coca_zero, ...
	ExtraDrinkQty int           `json:"extra_drink_qty" db:"extra_drink_qty"`
	BurgerConfig  *BurgerConfig `json:"burger_config,omitempty" db:"burger_config"`
	UnitPrice     float64       `json:"unit_price" db:"unit_price"`
	TotalPrice    *float64      `json:"total_price,omitempty" db:"total_price"`
	BasePrice     *float64      `json:"base_price,omitempty" db:"base_price"`
}

// Order represents one customer order with its embedded items.
type Order struct {
	ID               int64       `json:"id" db:"id"`
	TableNumber      *int64      `json:"table_number" db:"table_number"` // nil for to-go orders
	ToGo             bool        `json:"to_go" db:"to_go"`
	Status           string      `json:"status" db:"status"`
	Items            []OrderItem `json:"items"`
	Total            float64     `json:"total" db:"total"`
	CreatedDateKey   string      `json:"created_date_key" db:"created_date_key"`
	CompletedAt      *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
	CompletedDateKey *string     `json:"completed_date_key,omitempty" db:"completed_date_key"`
	PaidAt           *time.Time  `json:"paid_at,omitempty" db:"paid_at"`
	PaidDateKey      *string     `json:"paid_date_key,omitempty" db:"paid_date_key"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
}

// Date-key columns an order query may filter on.
const (
	DateKeyFieldCreated   = "created_date_key"
	DateKeyFieldCompleted = "completed_date_key"
	DateKeyFieldPaid      = "paid_date_key"
)

// OrderFilters defines the available filters for querying orders.
// Results are always sorted by creation time ascending.
type OrderFilters struct {
	Statuses     []string // status IN (...); empty means no status filter
	DateKeyField string   // one of the DateKeyField* constants
	DateKey      string   // matched verbatim against DateKeyField
}

// OrderPatch is a partial update applied to an existing order. Nil fields are
// left untouched. A non-nil Items slice replaces the order's items wholesale.
type OrderPatch struct {
	Status           *string
	CompletedAt      *time.Time
	CompletedDateKey *string
	PaidAt           *time.Time
	PaidDateKey      *string
	TableNumber      *int64
	ClearTableNumber bool
	ToGo             *bool
	Items            []OrderItem
	Total            *float64
}

// IsZero reports whether the patch would change nothing.
func (p OrderPatch) IsZero() bool {
	return p.Status == nil && p.CompletedAt == nil && p.CompletedDateKey == nil &&
		p.PaidAt == nil && p.PaidDateKey == nil && p.TableNumber == nil &&
		!p.ClearTableNumber && p.ToGo == nil && p.Items == nil && p.Total == nil
}
