package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"burger_pos_backend/internal/models"
	"burger_pos_backend/internal/repositories"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrEmptyOrderItems    = errors.New("order must contain at least one item")
)

// --- Data Transfer Objects (DTOs) ---

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	TableNumber *int64             `json:"table_number"`
	ToGo        bool               `json:"to_go"`
	Items       []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderRequest edits an order's table assignment, to-go flag or items.
// Absent fields leave the order untouched; table_number uses NullableInt64 so
// an explicit null (clear the table) is distinguishable from an absent field.
type UpdateOrderRequest struct {
	TableNumber models.NullableInt64 `json:"table_number"`
	ToGo        *bool                `json:"to_go"`
	Items       []OrderItemRequest   `json:"items"`
}

// --- OrderService Interface ---

type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*models.Order, error)
	GetOrders(status string) ([]models.Order, error)
	GetPendingOrders() ([]models.Order, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error)
	UpdateOrderDetails(orderID int64, req UpdateOrderRequest) (*models.Order, error)
	DailySummary(date, mode string) (*models.DailySummary, error)
}

// --- orderService Implementation ---

type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	dateKeys    *DateKeyResolver
	now         func() time.Time
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(or repositories.OrderRepository, pr repositories.ProductRepository, dateKeys *DateKeyResolver) OrderService {
	return &orderService{
		orderRepo:   or,
		productRepo: pr,
		dateKeys:    dateKeys,
		now:         time.Now,
	}
}

func (s *orderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrderItems
	}

	items := NormalizeItems(req.Items)
	s.fillFromCatalog(items)
	now := s.now()

	order := &models.Order{
		TableNumber:    req.TableNumber,
		ToGo:           req.ToGo,
		Status:         models.StatusPending,
		Items:          items,
		Total:          ComputeTotal(items),
		CreatedDateKey: s.dateKeys.DateKey(now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if order.ToGo {
		// a to-go order never holds a table
		order.TableNumber = nil
	}

	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrders(status string) ([]models.Order, error) {
	filters := models.OrderFilters{}
	if status != "" {
		// an unknown status simply matches nothing
		filters.Statuses = []string{normalizeStatus(status)}
	}
	orders, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// GetPendingOrders is the kitchen queue: everything not yet ready.
func (s *orderService) GetPendingOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(models.OrderFilters{
		Statuses: []string{models.StatusPending, models.StatusPreparing},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pending orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID from repository: %w", err)
	}
	return order, nil
}

// UpdateOrderStatus applies a status change and stamps the matching
// timestamps and date keys. Any allowed target is accepted regardless of the
// current status: staff correct mistakes by moving orders backward, so no
// ordering is enforced.
func (s *orderService) UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error) {
	status := normalizeStatus(req.Status)
	if !isValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}

	current, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for status update: %w", err)
	}

	now := s.now()
	dateKey := s.dateKeys.DateKey(now)
	patch := models.OrderPatch{Status: &status}

	switch status {
	case models.StatusReady:
		// always restamped, even when the order was ready before
		patch.CompletedAt = &now
		patch.CompletedDateKey = &dateKey
	case models.StatusPaid:
		patch.PaidAt = &now
		patch.PaidDateKey = &dateKey
		if current.CompletedAt == nil {
			// paid without passing through ready: backfill completion so a
			// closing by completed date does not drop this order
			patch.CompletedAt = &now
			patch.CompletedDateKey = &dateKey
		}
	}

	updated, err := s.orderRepo.UpdateOrder(orderID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status in repository: %w", err)
	}
	return updated, nil
}

// UpdateOrderDetails edits table assignment, to-go flag and items.
// Setting to_go true clears the table number regardless of any supplied
// value; replacing items recomputes the order total.
func (s *orderService) UpdateOrderDetails(orderID int64, req UpdateOrderRequest) (*models.Order, error) {
	patch := models.OrderPatch{}

	if req.ToGo != nil {
		patch.ToGo = req.ToGo
		if *req.ToGo {
			patch.ClearTableNumber = true
		}
	}
	if req.TableNumber.Set && !patch.ClearTableNumber {
		if req.TableNumber.Valid {
			table := req.TableNumber.Int64
			patch.TableNumber = &table
		} else {
			patch.ClearTableNumber = true
		}
	}
	if len(req.Items) > 0 {
		items := NormalizeItems(req.Items)
		s.fillFromCatalog(items)
		total := ComputeTotal(items)
		patch.Items = items
		patch.Total = &total
	}

	if patch.IsZero() {
		return s.GetOrderByID(orderID)
	}

	updated, err := s.orderRepo.UpdateOrder(orderID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order in repository: %w", err)
	}
	return updated, nil
}

// DailySummary builds the cash-closing report for one business day.
// The mode selects which date-key field buckets the day and which statuses
// count toward the cash figure; the returned order list always carries the
// full day so the cashier can audit it against the total.
func (s *orderService) DailySummary(date, mode string) (*models.DailySummary, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))

	var dateKeyField string
	var eligibleStatuses map[string]bool
	switch mode {
	case models.SummaryModePaid:
		dateKeyField = models.DateKeyFieldPaid
		eligibleStatuses = map[string]bool{models.StatusPaid: true}
	case models.SummaryModeCreated:
		dateKeyField = models.DateKeyFieldCreated
		eligibleStatuses = nil // audit view, every order counts
	default:
		mode = models.SummaryModeCompleted
		dateKeyField = models.DateKeyFieldCompleted
		eligibleStatuses = map[string]bool{models.StatusReady: true, models.StatusPaid: true}
	}

	if date == "" {
		date = s.dateKeys.DateKey(s.now())
	}

	orders, err := s.orderRepo.GetOrders(models.OrderFilters{
		DateKeyField: dateKeyField,
		DateKey:      date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for daily summary: %w", err)
	}

	summary := &models.DailySummary{
		Date:   date,
		Mode:   mode,
		Orders: orders,
	}
	for _, order := range orders {
		if eligibleStatuses != nil && !eligibleStatuses[order.Status] {
			continue
		}
		summary.Total += order.Total
		summary.NumOrders++
	}
	return summary, nil
}

// --- helpers ---

// fillFromCatalog snapshots name, code and price from the catalog for lines
// that reference a product but arrived without them. Client-supplied values
// win, and a line the catalog does not know is left as sent.
func (s *orderService) fillFromCatalog(items []models.OrderItem) {
	for i := range items {
		item := &items[i]
		if item.ProductID == 0 {
			continue
		}
		if item.ProductName != "" && (item.UnitPrice != 0 || item.TotalPrice != nil) {
			continue
		}
		product, err := s.productRepo.GetProductByID(item.ProductID)
		if err != nil {
			continue
		}
		if item.ProductName == "" {
			item.ProductName = product.Name
		}
		if item.ProductCode == "" {
			item.ProductCode = product.Code
		}
		if item.UnitPrice == 0 && item.TotalPrice == nil {
			item.UnitPrice = product.Price
		}
	}
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func isValidOrderStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusPreparing, models.StatusReady,
		models.StatusPaid, models.StatusCancelled:
		return true
	default:
		return false
	}
}
