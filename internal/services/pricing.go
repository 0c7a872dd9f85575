package services

import (
	"math"

	"burger_pos_backend/internal/models"
)

// Burger config defaults applied when the waiter app omits fields.
const (
	defaultMeatType      = "beef"
	defaultBaconType     = "grilled"
	defaultLettuceOption = "normal"
	defaultDrinkCode     = "none"
)

// BurgerConfigRequest is the incoming burger configuration; omitted fields
// take the house defaults.
type BurgerConfigRequest struct {
	MeatQty       *int    `json:"meat_qty"`
	MeatType      *string `json:"meat_type"`
	BaconType     *string `json:"bacon_type"`
	ExtraBacon    *bool   `json:"extra_bacon"`
	LettuceOption *string `json:"lettuce_option"`
	Tomato        *bool   `json:"tomato"`
	Onion         *bool   `json:"onion"`
	NoVeggies     *bool   `json:"no_veggies"`
	Notes         string  `json:"notes"`
}

// OrderItemRequest is one incoming order line. Numeric fields are pointers so
// that missing values can be defaulted instead of silently reading as zero.
type OrderItemRequest struct {
	ProductID     int64                `json:"product_id"`
	ProductName   string               `json:"product_name"`
	ProductCode   string               `json:"product_code"`
	Quantity      *int                 `json:"quantity"`
	IncludesFries bool                 `json:"includes_fries"`
	ExtraFriesQty *int                 `json:"extra_fries_qty"`
	DrinkCode     string               `json:"drink_code"`
	ExtraDrinkQty *int                 `json:"extra_drink_qty"`
	BurgerConfig  *BurgerConfigRequest `json:"burger_config"`
	UnitPrice     *float64             `json:"unit_price"`
	TotalPrice    *float64             `json:"total_price"`
	BasePrice     *float64             `json:"base_price"`
}

// NormalizeItem coerces one incoming line into a storable order item.
// Bad numeric input degrades to defaults, it never fails: a missing quantity
// counts as 1, missing prices as 0, and non-finite values as 0, so malformed
// client payloads cannot break total computation.
func NormalizeItem(req OrderItemRequest) models.OrderItem {
	item := models.OrderItem{
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		ProductCode:   req.ProductCode,
		Quantity:      1,
		IncludesFries: req.IncludesFries,
		DrinkCode:     defaultDrinkCode,
		UnitPrice:     0,
	}
	if req.Quantity != nil && *req.Quantity != 0 {
		item.Quantity = *req.Quantity
	}
	if req.ExtraFriesQty != nil {
		item.ExtraFriesQty = *req.ExtraFriesQty
	}
	if req.ExtraDrinkQty != nil {
		item.ExtraDrinkQty = *req.ExtraDrinkQty
	}
	if req.DrinkCode != "" {
		item.DrinkCode = req.DrinkCode
	}
	if req.UnitPrice != nil {
		item.UnitPrice = sanitizeNumber(*req.UnitPrice)
	}
	if req.TotalPrice != nil {
		total := sanitizeNumber(*req.TotalPrice)
		item.TotalPrice = &total
	}
	if req.BasePrice != nil {
		base := sanitizeNumber(*req.BasePrice)
		item.BasePrice = &base
	}
	if req.BurgerConfig != nil {
		item.BurgerConfig = normalizeBurgerConfig(*req.BurgerConfig)
	}
	return item
}

// NormalizeItems coerces every incoming line. Normalizing an already
// normalized item is a no-op.
func NormalizeItems(reqs []OrderItemRequest) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, NormalizeItem(req))
	}
	return items
}

// ComputeTotal derives an order's total from its normalized line items.
// A line with TotalPrice set contributes exactly that value; otherwise it
// contributes UnitPrice * Quantity. Pure function, always finite.
func ComputeTotal(items []models.OrderItem) float64 {
	var sum float64
	for _, item := range items {
		var lineTotal float64
		if item.TotalPrice != nil {
			lineTotal = *item.TotalPrice
		} else {
			lineTotal = item.UnitPrice * float64(item.Quantity)
		}
		sum += sanitizeNumber(lineTotal)
	}
	return sum
}

func normalizeBurgerConfig(req BurgerConfigRequest) *models.BurgerConfig {
	config := models.BurgerConfig{
		MeatQty:       1,
		MeatType:      defaultMeatType,
		BaconType:     defaultBaconType,
		LettuceOption: defaultLettuceOption,
		Tomato:        true,
		Onion:         true,
		Notes:         req.Notes,
	}
	if req.MeatQty != nil && *req.MeatQty != 0 {
		config.MeatQty = *req.MeatQty
	}
	if req.MeatType != nil && *req.MeatType != "" {
		config.MeatType = *req.MeatType
	}
	if req.BaconType != nil && *req.BaconType != "" {
		config.BaconType = *req.BaconType
	}
	if req.ExtraBacon != nil {
		config.ExtraBacon = *req.ExtraBacon
	}
	if req.LettuceOption != nil && *req.LettuceOption != "" {
		config.LettuceOption = *req.LettuceOption
	}
	if req.Tomato != nil {
		config.Tomato = *req.Tomato
	}
	if req.Onion != nil {
		config.Onion = *req.Onion
	}
	if req.NoVeggies != nil {
		config.NoVeggies = *req.NoVeggies
	}
	return &config
}

// sanitizeNumber maps NaN and infinities to 0 so they never reach a total.
func sanitizeNumber(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
