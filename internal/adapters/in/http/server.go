// Package http provides the inbound HTTP adapter.
// Exposes the tenant-scoped REST API and maps transport concerns
// (binding, status codes) onto the application's commands and queries.
package http

import (
	"errors"
	"net/http"
	"time"

	"gasexpress/internal/core/application/usecases/commands"
	"gasexpress/internal/core/application/usecases/queries"
	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/pkg/errs"
	"gasexpress/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
// Every route is scoped under a tenant id path segment.
type Server struct {
	// Command handlers
	createOrderHandler       *commands.CreateOrderCommandHandler
	changeOrderStatusHandler *commands.ChangeOrderStatusCommandHandler
	createDriverHandler      *commands.CreateDriverCommandHandler
	setDriverShiftHandler    *commands.SetDriverShiftCommandHandler
	createProductHandler     *commands.CreateProductCommandHandler

	// Query handlers
	getActiveOrdersHandler     queries.GetActiveOrdersQueryHandler
	getDriversHandler          queries.GetDriversQueryHandler
	getLowStockProductsHandler queries.GetLowStockProductsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler *commands.CreateOrderCommandHandler,
	changeOrderStatusHandler *commands.ChangeOrderStatusCommandHandler,
	createDriverHandler *commands.CreateDriverCommandHandler,
	setDriverShiftHandler *commands.SetDriverShiftCommandHandler,
	createProductHandler *commands.CreateProductCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getDriversHandler queries.GetDriversQueryHandler,
	getLowStockProductsHandler queries.GetLowStockProductsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		createDriverHandler:        createDriverHandler,
		setDriverShiftHandler:      setDriverShiftHandler,
		createProductHandler:       createProductHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
		getDriversHandler:          getDriversHandler,
		getLowStockProductsHandler: getLowStockProductsHandler,
	}
}

// RegisterRoutes mounts the tenant-scoped API and the metrics endpoint.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	tenant := e.Group("/api/v1/tenants/:tenantId")

	tenant.POST("/orders", s.CreateOrder)
	tenant.PUT("/orders/:orderId/status", s.ChangeOrderStatus)
	tenant.GET("/orders/active", s.GetActiveOrders)

	tenant.POST("/drivers", s.CreateDriver)
	tenant.PUT("/drivers/:driverId/shift", s.SetDriverShift)
	tenant.GET("/drivers", s.GetDrivers)

	tenant.POST("/products", s.CreateProduct)
	tenant.GET("/products/low-stock", s.GetLowStockProducts)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderLineRequest is one requested product line of an incoming order.
type OrderLineRequest struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerName string             `json:"customerName"`
	Phone        string             `json:"phone"`
	Address      string             `json:"address"`
	Items        []OrderLineRequest `json:"items"`
}

// CreateOrderResponse reports the accepted order and its dispatch outcome.
// DriverID is absent when no driver was available at creation time.
type CreateOrderResponse struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	DriverID *string `json:"driverId,omitempty"`
	Total    float64 `json:"total"`
}

// ChangeOrderStatusRequest is the body of PUT /orders/:orderId/status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// CreateDriverRequest is the body of POST /drivers.
type CreateDriverRequest struct {
	Name string `json:"name"`
}

// SetDriverShiftRequest is the body of PUT /drivers/:driverId/shift.
type SetDriverShiftRequest struct {
	Status string `json:"status"`
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CostPrice    float64 `json:"costPrice"`
	Stock        int     `json:"stock"`
	StockEmpty   int     `json:"stockEmpty"`
	StockDamaged int     `json:"stockDamaged"`
	MinStock     int     `json:"minStock"`
}

// ActiveOrderResponse is one active order in the API read model.
type ActiveOrderResponse struct {
	ID             string   `json:"id"`
	CustomerName   string   `json:"customerName"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	Status         string   `json:"status"`
	DriverID       *string  `json:"driverId,omitempty"`
	DriverName     string   `json:"driverName,omitempty"`
	Total          float64  `json:"total"`
	DestinationLat *float64 `json:"destinationLat,omitempty"`
	DestinationLng *float64 `json:"destinationLng,omitempty"`
	CreatedAt      string   `json:"createdAt"`
}

// DriverResponse is one driver in the API read model.
type DriverResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// LowStockProductResponse is one low-stock product in the API read model.
type LowStockProductResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Stock      int    `json:"stock"`
	StockEmpty int    `json:"stockEmpty"`
	MinStock   int    `json:"minStock"`
}

// CreateOrder handles POST /api/v1/tenants/:tenantId/orders.
// Accepts the order, resolves its destination, reserves inventory and
// dispatches the nearest available driver in one request.
func (s *Server) CreateOrder(ctx echo.Context) error {
	tenantID, err := tenantFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	lines := make([]commands.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = commands.OrderLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), tenantID, req.CustomerName, req.Phone, req.Address, lines)
	if err != nil {
		return badRequest(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapCommandError(ctx, err)
	}

	metrics.OrdersCreatedCounter.WithLabelValues(tenantID.String()).Inc()

	resp := CreateOrderResponse{
		ID:     created.ID().String(),
		Status: created.Status().String(),
		Total:  created.Total(),
	}
	if driverID := created.DriverID(); driverID != nil {
		id := driverID.String()
		resp.DriverID = &id
		metrics.OrdersDispatchedCounter.WithLabelValues(tenantID.String()).Inc()
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// ChangeOrderStatus handles PUT /api/v1/tenants/:tenantId/orders/:orderId/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	tenantID, err := tenantFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ChangeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, tenantID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapCommandError(ctx, err)
	}

	metrics.OrderStatusChangesCounter.WithLabelValues(tenantID.String(), status.String()).Inc()

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/tenants/:tenantId/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	tenantID, err := tenantFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve orders")
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrderResponse{
			ID:             o.ID.String(),
			CustomerName:   o.CustomerName,
			Phone:          o.Phone,
			Address:        o.Address,
			Status:         o.Status,
			DriverName:     o.DriverName,
			Total:          o.Total,
			DestinationLat: o.DestinationLat,
			DestinationLng: o.DestinationLng,
			CreatedAt:      o.CreatedAt.UTC().Format(time.RFC3339),
		}
		if o.DriverID != nil {
			id := o.DriverID.String()
			response[i].DriverID = &id
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDriver handles POST /api/v1/tenants/:tenantId/drivers.
// New drivers start off shift, with no position until their first tick on duty.
func (s *Server) CreateDriver(ctx echo.Context) error {
	tenantID, err := tenantFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreateDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	driverID := kernel.NewUUID()

	cmd, err := commands.NewCreateDriverCommand(driverID, tenantID, req.Name)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.createDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapCommandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": driverID.String()})
}

// SetDriverShift handles PUT /api/v1/tenants/:tenantId/drivers/:driverId/shift.
func (s *Server) SetDriverShift(ctx echo.Context) error {
	tenantID, err := tenantFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("driverId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req SetDriverShiftRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	status, err := driver.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetDriverShiftCommand(driverID, tenantID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.setDriverShiftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapCommandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDrivers handles GET /api/v1/tenants/:tenantId/drivers.
func (s *Server) GetDrivers(ctx echo.Context) error {
	tenantID, err := tenantFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetDriversQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	drivers, err := s.getDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve drivers")
	}

	response := make([]DriverResponse, len(drivers))
	for i, d := range drivers {
		response[i] = DriverResponse{
			ID:     d.ID.String(),
			Name:   d.Name,
			Status: d.Status,
			Lat:    d.Lat,
			Lng:    d.Lng,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/tenants/:tenantId/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	tenantID, err := tenantFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreateProductRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	productID := kernel.NewUUID()

	cmd, err := commands.NewCreateProductCommand(
		productID, tenantID, req.Name,
		req.Price, req.CostPrice,
		req.Stock, req.StockEmpty, req.StockDamaged, req.MinStock)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.createProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapCommandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": productID.String()})
}

// GetLowStockProducts handles GET /api/v1/tenants/:tenantId/products/low-stock.
func (s *Server) GetLowStockProducts(ctx echo.Context) error {
	tenantID, err := tenantFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetLowStockProductsQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	products, err := s.getLowStockProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve products")
	}

	response := make([]LowStockProductResponse, len(products))
	for i, p := range products {
		response[i] = LowStockProductResponse{
			ID:         p.ID.String(),
			Name:       p.Name,
			Stock:      p.Stock,
			StockEmpty: p.StockEmpty,
			MinStock:   p.MinStock,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func tenantFromPath(ctx echo.Context) (kernel.TenantID, error) {
	return kernel.NewTenantID(ctx.Param("tenantId"))
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// mapCommandError translates application errors into HTTP status codes.
// Missing aggregates map to 404, validation failures to 400, the rest to 500.
func mapCommandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid) || errors.Is(err, errs.ErrValueIsRequired):
		return badRequest(ctx, err)
	default:
		return internalError(ctx, "internal error")
	}
}
