package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"burger_pos_backend/internal/models"

	"github.com/lib/pq"
)

// OrderRepository defines the interface for order-related database operations.
// Orders own their items: every method reads and writes the order document as
// a whole, items included.
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, error)
	// UpdateOrder applies a partial update and returns the updated order,
	// or ErrNotFound when no order has the given ID.
	UpdateOrder(orderID int64, patch models.OrderPatch) (*models.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// validDateKeyFields guards the column name interpolated into date-key filters.
var validDateKeyFields = map[string]bool{
	models.DateKeyFieldCreated:   true,
	models.DateKeyFieldCompleted: true,
	models.DateKeyFieldPaid:      true,
}

const orderColumns = `id, table_number, to_go, status, total, created_date_key,
	completed_at, completed_date_key, paid_at, paid_date_key, created_at, updated_at`

func (r *orderRepository) CreateOrder(order *models.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning order transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}

	query := `INSERT INTO orders
	            (table_number, to_go, status, total, created_date_key,
	             completed_at, completed_date_key, paid_at, paid_date_key,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	err = tx.QueryRow(query,
		order.TableNumber, order.ToGo, order.Status, order.Total, order.CreatedDateKey,
		order.CompletedAt, order.CompletedDateKey, order.PaidAt, order.PaidDateKey,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}

	if err := insertOrderItems(tx, order.ID, order.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing order transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}

	itemsByOrder, err := r.loadItems([]int64{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = itemsByOrder[orderID]
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + ` FROM orders`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if len(filters.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", argCounter))
		args = append(args, pq.Array(filters.Statuses))
		argCounter++
	}
	if filters.DateKeyField != "" {
		if !validDateKeyFields[filters.DateKeyField] {
			return nil, fmt.Errorf("%w: invalid date key field %q", ErrDatabaseError, filters.DateKeyField)
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", filters.DateKeyField, argCounter))
		args = append(args, filters.DateKey)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	var ids []int64
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}

	if len(ids) > 0 {
		itemsByOrder, err := r.loadItems(ids)
		if err != nil {
			return nil, err
		}
		for i := range orders {
			orders[i].Items = itemsByOrder[orders[i].ID]
		}
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrder(orderID int64, patch models.OrderPatch) (*models.Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: beginning update transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	var sets []string
	var args []interface{}
	argCounter := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, value)
		argCounter++
	}

	if patch.Status != nil {
		addSet("status", *patch.Status)
	}
	if patch.CompletedAt != nil {
		addSet("completed_at", *patch.CompletedAt)
	}
	if patch.CompletedDateKey != nil {
		addSet("completed_date_key", *patch.CompletedDateKey)
	}
	if patch.PaidAt != nil {
		addSet("paid_at", *patch.PaidAt)
	}
	if patch.PaidDateKey != nil {
		addSet("paid_date_key", *patch.PaidDateKey)
	}
	if patch.ClearTableNumber {
		addSet("table_number", nil)
	} else if patch.TableNumber != nil {
		addSet("table_number", *patch.TableNumber)
	}
	if patch.ToGo != nil {
		addSet("to_go", *patch.ToGo)
	}
	if patch.Total != nil {
		addSet("total", *patch.Total)
	}
	addSet("updated_at", time.Now())

	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", strings.Join(sets, ", "), argCounter)
	args = append(args, orderID)

	result, err := tx.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: updating order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: getting rows affected for order update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	if patch.Items != nil {
		if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
			return nil, fmt.Errorf("%w: clearing items for order ID %d: %v", ErrDatabaseError, orderID, err)
		}
		if err := insertOrderItems(tx, orderID, patch.Items); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: committing update transaction: %v", ErrDatabaseError, err)
	}
	return r.GetOrderByID(orderID)
}

// --- helpers ---

func insertOrderItems(executor SQLExecutor, orderID int64, items []models.OrderItem) error {
	query := `INSERT INTO order_items
	            (order_id, position, product_id, product_name, product_code,
	             quantity, includes_fries, extra_fries_qty, drink_code, extra_drink_qty,
	             burger_config, unit_price, total_price, base_price)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	for position, item := range items {
		_, err := executor.Exec(query,
			orderID, position, item.ProductID, item.ProductName, item.ProductCode,
			item.Quantity, item.IncludesFries, item.ExtraFriesQty, item.DrinkCode, item.ExtraDrinkQty,
			item.BurgerConfig, item.UnitPrice, item.TotalPrice, item.BasePrice,
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23503" {
				return fmt.Errorf("%w: creating order item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
			}
			return fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
		}
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (*models.Order, error) {
	order := &models.Order{}
	err := s.Scan(
		&order.ID, &order.TableNumber, &order.ToGo, &order.Status, &order.Total,
		&order.CreatedDateKey, &order.CompletedAt, &order.CompletedDateKey,
		&order.PaidAt, &order.PaidDateKey, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return order, nil
}

func (r *orderRepository) loadItems(orderIDs []int64) (map[int64][]models.OrderItem, error) {
	query := `SELECT order_id, product_id, product_name, product_code,
	                 quantity, includes_fries, extra_fries_qty, drink_code, extra_drink_qty,
	                 burger_config, unit_price, total_price, base_price
	          FROM order_items
	          WHERE order_id = ANY($1)
	          ORDER BY order_id, position`

	rows, err := r.db.Query(query, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]models.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID int64
		var item models.OrderItem
		var rawConfig sql.NullString

		err := rows.Scan(
			&orderID, &item.ProductID, &item.ProductName, &item.ProductCode,
			&item.Quantity, &item.IncludesFries, &item.ExtraFriesQty, &item.DrinkCode, &item.ExtraDrinkQty,
			&rawConfig, &item.UnitPrice, &item.TotalPrice, &item.BasePrice,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		if rawConfig.Valid {
			config := models.BurgerConfig{}
			if err := config.Scan(rawConfig.String); err != nil {
				return nil, fmt.Errorf("%w: decoding burger config: %v", ErrDatabaseError, err)
			}
			item.BurgerConfig = &config
		}
		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return itemsByOrder, nil
}
