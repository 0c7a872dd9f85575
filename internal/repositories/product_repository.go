package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"burger_pos_backend/internal/models"

	"github.com/lib/pq"
)

// ProductRepository defines the interface for catalog database operations.
type ProductRepository interface {
	GetProducts() ([]models.Product, error)
	GetProductsByType(productType string) ([]models.Product, error)
	GetProductByID(productID int64) (*models.Product, error)
	// ReplaceAll wipes the catalog and inserts the given products in one
	// transaction. Used by seeding.
	ReplaceAll(products []models.Product) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, code, type, price, options, active, created_at, updated_at`

func (r *productRepository) GetProducts() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY type ASC, name ASC`
	return r.queryProducts(query)
}

func (r *productRepository) GetProductsByType(productType string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE type = $1 ORDER BY name ASC`
	return r.queryProducts(query, productType)
}

func (r *productRepository) GetProductByID(productID int64) (*models.Product, error) {
	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := r.db.QueryRow(query, productID).Scan(
		&product.ID, &product.Name, &product.Code, &product.Type, &product.Price,
		&product.Options, &product.Active, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting product by ID %d: %v", ErrDatabaseError, productID, err)
	}
	return product, nil
}

func (r *productRepository) ReplaceAll(products []models.Product) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: beginning seed transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return 0, fmt.Errorf("%w: clearing products: %v", ErrDatabaseError, err)
	}

	query := `INSERT INTO products (name, code, type, price, options, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now()
	for _, p := range products {
		if _, err := tx.Exec(query, p.Name, p.Code, p.Type, p.Price, p.Options, p.Active, now, now); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return 0, fmt.Errorf("%w: product code %s: %v", ErrDuplicateKey, p.Code, err)
			}
			return 0, fmt.Errorf("%w: inserting product %s: %v", ErrDatabaseError, p.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing seed transaction: %v", ErrDatabaseError, err)
	}
	return len(products), nil
}

func (r *productRepository) queryProducts(query string, args ...interface{}) ([]models.Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Code, &p.Type, &p.Price,
			&p.Options, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}
