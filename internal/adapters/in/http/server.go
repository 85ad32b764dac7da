// Package http is the inbound adapter: it binds the wire contracts to the
// application's commands and queries and maps error classes to statuses.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createCourierHandler  commands.CreateCourierCommandHandler
	createOrdersHandler   commands.CreateOrdersCommandHandler
	updateCourierHandler  commands.UpdateCourierCommandHandler
	assignOrdersHandler   commands.AssignOrdersCommandHandler
	completeOrderHandler  commands.CompleteOrderCommandHandler
	getCourierInfoHandler queries.GetCourierInfoQueryHandler

	engine *metrics.Engine
}

// NewServer creates an HTTP server bound to the given use case handlers.
func NewServer(
	createCourierHandler commands.CreateCourierCommandHandler,
	createOrdersHandler commands.CreateOrdersCommandHandler,
	updateCourierHandler commands.UpdateCourierCommandHandler,
	assignOrdersHandler commands.AssignOrdersCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	getCourierInfoHandler queries.GetCourierInfoQueryHandler,
	engine *metrics.Engine,
) *Server {
	return &Server{
		createCourierHandler:  createCourierHandler,
		createOrdersHandler:   createOrdersHandler,
		updateCourierHandler:  updateCourierHandler,
		assignOrdersHandler:   assignOrdersHandler,
		completeOrderHandler:  completeOrderHandler,
		getCourierInfoHandler: getCourierInfoHandler,
		engine:                engine,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(s.engine.Handler()))

	e.POST("/couriers", s.CreateCouriers)
	e.GET("/couriers/:id", s.GetCourierInfo)
	e.PATCH("/couriers/:id", s.UpdateCourier)

	e.POST("/orders", s.CreateOrders)
	e.POST("/orders/assign", s.Assign)
	e.POST("/orders/complete", s.Complete)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateCouriers handles POST /couriers - registers a batch of couriers.
func (s *Server) CreateCouriers(ctx echo.Context) error {
	var request CreateCouriersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "request body is not valid json")
	}
	if len(request.Couriers) == 0 {
		return badRequest(ctx, "couriers list is empty")
	}

	cmds := make([]commands.CreateCourierCommand, 0, len(request.Couriers))
	for _, payload := range request.Couriers {
		cmd, err := buildCreateCourierCommand(payload)
		if err != nil {
			return respondError(ctx, err)
		}
		cmds = append(cmds, cmd)
	}

	created := make([]IDRef, 0, len(cmds))
	for _, cmd := range cmds {
		if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return respondError(ctx, err)
		}
		created = append(created, IDRef{ID: cmd.CourierID().Int64()})
	}
	s.engine.CouriersCreated(len(created))

	return ctx.JSON(http.StatusCreated, CreateCouriersResponse{Couriers: created})
}

// GetCourierInfo handles GET /couriers/:id - profile plus rating and earnings.
func (s *Server) GetCourierInfo(ctx echo.Context) error {
	courierID, err := parseCourierIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getCourierInfoHandler.Handle(
		ctx.Request().Context(), queries.NewGetCourierInfoQuery(courierID))
	if err != nil {
		return respondError(ctx, err)
	}

	payload := CourierInfoResponse{
		CourierID:    response.CourierID.Int64(),
		Transport:    response.Transport.String(),
		Regions:      formatRegions(response.Regions),
		WorkingHours: formatWindows(response.WorkingHours),
		Earnings:     response.Earnings,
	}
	if response.Rating != services.NoRating {
		payload.Rating = &response.Rating
	}

	return ctx.JSON(http.StatusOK, payload)
}

// UpdateCourier handles PATCH /couriers/:id - applies a partial profile
// patch and reconciles the courier's open run.
func (s *Server) UpdateCourier(ctx echo.Context) error {
	courierID, err := parseCourierIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request UpdateCourierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "request body is not valid json")
	}

	cmd, err := buildUpdateCourierCommand(courierID, request)
	if err != nil {
		return respondError(ctx, err)
	}

	patched, err := s.updateCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CourierSnapshotResponse{
		CourierID:    patched.ID().Int64(),
		Transport:    patched.Transport().String(),
		Regions:      formatRegions(patched.Regions()),
		WorkingHours: formatWindows(patched.WorkingHours()),
	})
}

// CreateOrders handles POST /orders - ingests a batch of orders, all or
// nothing.
func (s *Server) CreateOrders(ctx echo.Context) error {
	var request CreateOrdersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "request body is not valid json")
	}

	drafts := make([]commands.OrderDraft, 0, len(request.Orders))
	for _, payload := range request.Orders {
		draft, err := buildOrderDraft(payload)
		if err != nil {
			return respondError(ctx, err)
		}
		drafts = append(drafts, draft)
	}

	cmd, err := commands.NewCreateOrdersCommand(drafts)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrdersHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	s.engine.OrdersCreated(len(drafts))

	created := make([]IDRef, 0, len(drafts))
	for _, draft := range drafts {
		created = append(created, IDRef{ID: draft.OrderID().Int64()})
	}

	return ctx.JSON(http.StatusCreated, CreateOrdersResponse{Orders: created})
}

// Assign handles POST /orders/assign - opens (or returns) the courier's run.
func (s *Server) Assign(ctx echo.Context) error {
	var request AssignRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "request body is not valid json")
	}

	courierID, err := kernel.NewCourierID(request.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.assignOrdersHandler.Handle(
		ctx.Request().Context(), commands.NewAssignOrdersCommand(courierID))
	if err != nil {
		return respondError(ctx, err)
	}

	if !result.Assigned {
		s.engine.AssignNoRun()
		return ctx.JSON(http.StatusOK, AssignResponse{Orders: []IDRef{}})
	}
	s.engine.RunAssigned()

	assigned := make([]IDRef, 0, len(result.OrderIDs))
	for _, orderID := range result.OrderIDs {
		assigned = append(assigned, IDRef{ID: orderID.Int64()})
	}

	return ctx.JSON(http.StatusOK, AssignResponse{
		Orders: assigned,
		RunID:  result.RunID.String(),
	})
}

// Complete handles POST /orders/complete - records one delivery.
func (s *Server) Complete(ctx echo.Context) error {
	var request CompleteRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "request body is not valid json")
	}

	cmd, err := buildCompleteOrderCommand(request)
	if err != nil {
		return respondError(ctx, err)
	}

	completed, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	s.engine.OrderCompleted()

	return ctx.JSON(http.StatusOK, CompleteResponse{OrderID: completed.ID().Int64()})
}

func buildCreateCourierCommand(payload CourierPayload) (commands.CreateCourierCommand, error) {
	courierID, err := kernel.NewCourierID(payload.CourierID)
	if err != nil {
		return commands.CreateCourierCommand{}, err
	}
	transport, err := kernel.TransportTypeFromString(payload.Transport)
	if err != nil {
		return commands.CreateCourierCommand{}, err
	}
	regions, err := parseRegions(payload.Regions)
	if err != nil {
		return commands.CreateCourierCommand{}, err
	}
	windows, err := parseWindows(payload.WorkingHours)
	if err != nil {
		return commands.CreateCourierCommand{}, err
	}

	return commands.NewCreateCourierCommand(courierID, transport, regions, windows)
}

func buildUpdateCourierCommand(
	courierID kernel.CourierID,
	request UpdateCourierRequest,
) (commands.UpdateCourierCommand, error) {
	var transport *kernel.TransportType
	if request.Transport != nil {
		parsed, err := kernel.TransportTypeFromString(*request.Transport)
		if err != nil {
			return commands.UpdateCourierCommand{}, err
		}
		transport = &parsed
	}

	var regions *[]kernel.RegionID
	if request.Regions != nil {
		parsed, err := parseRegions(*request.Regions)
		if err != nil {
			return commands.UpdateCourierCommand{}, err
		}
		regions = &parsed
	}

	var windows *[]kernel.TimeWindow
	if request.WorkingHours != nil {
		parsed, err := parseWindows(*request.WorkingHours)
		if err != nil {
			return commands.UpdateCourierCommand{}, err
		}
		windows = &parsed
	}

	return commands.NewUpdateCourierCommand(courierID, transport, regions, windows)
}

func buildOrderDraft(payload OrderPayload) (commands.OrderDraft, error) {
	orderID, err := kernel.NewOrderID(payload.OrderID)
	if err != nil {
		return commands.OrderDraft{}, err
	}
	region, err := kernel.NewRegionID(payload.Region)
	if err != nil {
		return commands.OrderDraft{}, err
	}
	windows, err := parseWindows(payload.DeliveryHours)
	if err != nil {
		return commands.OrderDraft{}, err
	}

	return commands.NewOrderDraft(orderID, payload.Weight, region, windows)
}

func buildCompleteOrderCommand(request CompleteRequest) (commands.CompleteOrderCommand, error) {
	courierID, err := kernel.NewCourierID(request.CourierID)
	if err != nil {
		return commands.CompleteOrderCommand{}, err
	}
	orderID, err := kernel.NewOrderID(request.OrderID)
	if err != nil {
		return commands.CompleteOrderCommand{}, err
	}
	completedAt, err := parseUTCTimestamp(request.CompleteTime)
	if err != nil {
		return commands.CompleteOrderCommand{}, err
	}

	return commands.NewCompleteOrderCommand(courierID, orderID, completedAt)
}

func parseCourierIDParam(ctx echo.Context) (kernel.CourierID, error) {
	raw, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("courierId", err)
	}
	return kernel.NewCourierID(raw)
}

func parseRegions(raw []int64) ([]kernel.RegionID, error) {
	regions := make([]kernel.RegionID, 0, len(raw))
	for _, id := range raw {
		region, err := kernel.NewRegionID(id)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, nil
}

func parseWindows(raw []string) ([]kernel.TimeWindow, error) {
	windows := make([]kernel.TimeWindow, 0, len(raw))
	for _, s := range raw {
		window, err := kernel.ParseTimeWindow(s)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}
	return windows, nil
}

func formatRegions(regions []kernel.RegionID) []int64 {
	formatted := make([]int64, 0, len(regions))
	for _, region := range regions {
		formatted = append(formatted, int64(region.Int32()))
	}
	return formatted
}

func formatWindows(windows []kernel.TimeWindow) []string {
	formatted := make([]string, 0, len(windows))
	for _, window := range windows {
		formatted = append(formatted, window.String())
	}
	return formatted
}

func respondError(ctx echo.Context, err error) error {
	code := statusFor(err)
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, run.ErrCompletionNotAfterLastEvent),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrEmptyCourierPatch),
		errors.Is(err, commands.ErrOrdersAreRequired),
		errors.Is(err, commands.ErrDuplicateOrderID),
		errors.Is(err, commands.ErrOrderDraftIsIncomplete),
		errors.Is(err, commands.ErrCompletedAtIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
