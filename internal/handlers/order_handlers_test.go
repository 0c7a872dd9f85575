package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"burger_pos_backend/internal/models"
	"burger_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderService lets each test script the service layer.
type fakeOrderService struct {
	createFn       func(req services.CreateOrderRequest) (*models.Order, error)
	getOrdersFn    func(status string) ([]models.Order, error)
	getPendingFn   func() ([]models.Order, error)
	getByIDFn      func(orderID int64) (*models.Order, error)
	updateStatusFn func(orderID int64, req services.UpdateOrderStatusRequest) (*models.Order, error)
	updateFn       func(orderID int64, req services.UpdateOrderRequest) (*models.Order, error)
	summaryFn      func(date, mode string) (*models.DailySummary, error)
}

func (f *fakeOrderService) CreateOrder(req services.CreateOrderRequest) (*models.Order, error) {
	return f.createFn(req)
}

func (f *fakeOrderService) GetOrders(status string) ([]models.Order, error) {
	return f.getOrdersFn(status)
}

func (f *fakeOrderService) GetPendingOrders() ([]models.Order, error) {
	return f.getPendingFn()
}

func (f *fakeOrderService) GetOrderByID(orderID int64) (*models.Order, error) {
	return f.getByIDFn(orderID)
}

func (f *fakeOrderService) UpdateOrderStatus(orderID int64, req services.UpdateOrderStatusRequest) (*models.Order, error) {
	return f.updateStatusFn(orderID, req)
}

func (f *fakeOrderService) UpdateOrderDetails(orderID int64, req services.UpdateOrderRequest) (*models.Order, error) {
	return f.updateFn(orderID, req)
}

func (f *fakeOrderService) DailySummary(date, mode string) (*models.DailySummary, error) {
	return f.summaryFn(date, mode)
}

func setupOrderRouter(svc services.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewOrderHandler(svc)

	orders := engine.Group("/api/v1/orders")
	orders.POST("", handler.CreateOrder)
	orders.GET("", handler.GetOrders)
	orders.GET("/pending", handler.GetPendingOrders)
	orders.GET("/today/summary", handler.GetDailySummary)
	orders.GET("/:id", handler.GetOrderByID)
	orders.PUT("/:id/status", handler.UpdateOrderStatus)
	orders.PATCH("/:id", handler.UpdateOrder)
	return engine
}

func performRequest(engine *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func sampleOrder() *models.Order {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Order{
		ID:             7,
		Status:         models.StatusPending,
		Total:          41000,
		CreatedDateKey: "2025-06-01",
		Items:          []models.OrderItem{{ProductID: 1, ProductName: "Grilled bacon burger", Quantity: 2, UnitPrice: 18000}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCreateOrderReturns201(t *testing.T) {
	svc := &fakeOrderService{
		createFn: func(req services.CreateOrderRequest) (*models.Order, error) {
			require.Len(t, req.Items, 1)
			return sampleOrder(), nil
		},
	}
	engine := setupOrderRouter(svc)

	body := []byte(`{"to_go": false, "items": [{"product_id": 1, "quantity": 2, "unit_price": 18000}]}`)
	rec := performRequest(engine, http.MethodPost, "/api/v1/orders", body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, 41000.0, got.Total)
}

func TestCreateOrderEmptyItemsReturns400(t *testing.T) {
	svc := &fakeOrderService{
		createFn: func(req services.CreateOrderRequest) (*models.Order, error) {
			return nil, services.ErrEmptyOrderItems
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodPost, "/api/v1/orders", []byte(`{"items": []}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderMalformedJSONReturns400(t *testing.T) {
	svc := &fakeOrderService{
		createFn: func(req services.CreateOrderRequest) (*models.Order, error) {
			t.Fatal("service must not be called on a bind failure")
			return nil, nil
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodPost, "/api/v1/orders", []byte(`{"items": [`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrdersPassesStatusFilter(t *testing.T) {
	var gotStatus string
	svc := &fakeOrderService{
		getOrdersFn: func(status string) ([]models.Order, error) {
			gotStatus = status
			return []models.Order{*sampleOrder()}, nil
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodGet, "/api/v1/orders?status=pending", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", gotStatus)

	var got []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
}

func TestGetPendingOrders(t *testing.T) {
	svc := &fakeOrderService{
		getPendingFn: func() ([]models.Order, error) {
			return []models.Order{}, nil
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodGet, "/api/v1/orders/pending", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetOrderByIDNotFoundReturns404(t *testing.T) {
	svc := &fakeOrderService{
		getByIDFn: func(orderID int64) (*models.Order, error) {
			return nil, services.ErrOrderNotFound
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodGet, "/api/v1/orders/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderByIDBadIDReturns400(t *testing.T) {
	svc := &fakeOrderService{
		getByIDFn: func(orderID int64) (*models.Order, error) {
			t.Fatal("service must not be called with an unparsable id")
			return nil, nil
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodGet, "/api/v1/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusInvalidReturns400(t *testing.T) {
	svc := &fakeOrderService{
		updateStatusFn: func(orderID int64, req services.UpdateOrderStatusRequest) (*models.Order, error) {
			return nil, services.ErrInvalidOrderStatus
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodPut, "/api/v1/orders/7/status", []byte(`{"status": "delivered"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusMissingStatusReturns400(t *testing.T) {
	svc := &fakeOrderService{
		updateStatusFn: func(orderID int64, req services.UpdateOrderStatusRequest) (*models.Order, error) {
			t.Fatal("service must not be called when the payload fails binding")
			return nil, nil
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodPut, "/api/v1/orders/7/status", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusReturnsUpdatedOrder(t *testing.T) {
	svc := &fakeOrderService{
		updateStatusFn: func(orderID int64, req services.UpdateOrderStatusRequest) (*models.Order, error) {
			assert.Equal(t, int64(7), orderID)
			order := sampleOrder()
			order.Status = models.StatusReady
			return order, nil
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodPut, "/api/v1/orders/7/status", []byte(`{"status": "ready"}`))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.StatusReady, got.Status)
}

func TestUpdateOrderDistinguishesNullFromAbsentTable(t *testing.T) {
	var gotReq services.UpdateOrderRequest
	svc := &fakeOrderService{
		updateFn: func(orderID int64, req services.UpdateOrderRequest) (*models.Order, error) {
			gotReq = req
			return sampleOrder(), nil
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodPatch, "/api/v1/orders/7", []byte(`{"table_number": null}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotReq.TableNumber.Set, "explicit null must reach the service as a set field")
	assert.False(t, gotReq.TableNumber.Valid)

	rec = performRequest(engine, http.MethodPatch, "/api/v1/orders/7", []byte(`{"to_go": true}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gotReq.TableNumber.Set, "absent field must stay unset")
	require.NotNil(t, gotReq.ToGo)
	assert.True(t, *gotReq.ToGo)
}

func TestUpdateOrderNotFoundReturns404(t *testing.T) {
	svc := &fakeOrderService{
		updateFn: func(orderID int64, req services.UpdateOrderRequest) (*models.Order, error) {
			return nil, services.ErrOrderNotFound
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodPatch, "/api/v1/orders/99", []byte(`{"to_go": true}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDailySummaryPassesQueryParams(t *testing.T) {
	svc := &fakeOrderService{
		summaryFn: func(date, mode string) (*models.DailySummary, error) {
			assert.Equal(t, "2025-06-01", date)
			assert.Equal(t, "paid", mode)
			return &models.DailySummary{
				Date:      date,
				Mode:      mode,
				Total:     41000,
				NumOrders: 1,
				Orders:    []models.Order{*sampleOrder()},
			}, nil
		},
	}
	engine := setupOrderRouter(svc)

	rec := performRequest(engine, http.MethodGet, "/api/v1/orders/today/summary?date=2025-06-01&mode=paid", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.DailySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2025-06-01", got.Date)
	assert.Equal(t, "paid", got.Mode)
	assert.Equal(t, 1, got.NumOrders)
	assert.Equal(t, 41000.0, got.Total)
	require.Len(t, got.Orders, 1)
}
