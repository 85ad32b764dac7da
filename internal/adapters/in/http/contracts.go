package http

// Wire shapes for the dispatch API. Field names follow the public contract:
// snake_case, windows as "HH:MM-HH:MM" strings, timestamps as RFC3339 with
// an explicit UTC designator.

// CourierPayload describes one courier in a registration batch.
type CourierPayload struct {
	CourierID    int64    `json:"courier_id"`
	Transport    string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

// CreateCouriersRequest is the POST /couriers body.
type CreateCouriersRequest struct {
	Couriers []CourierPayload `json:"couriers"`
}

// IDRef echoes back one created or assigned identifier.
type IDRef struct {
	ID int64 `json:"id"`
}

// CreateCouriersResponse lists the identifiers of registered couriers.
type CreateCouriersResponse struct {
	Couriers []IDRef `json:"couriers"`
}

// OrderPayload describes one order in an ingestion batch.
type OrderPayload struct {
	OrderID       int64    `json:"order_id"`
	Weight        float64  `json:"weight"`
	Region        int64    `json:"region"`
	DeliveryHours []string `json:"delivery_hours"`
}

// CreateOrdersRequest is the POST /orders body.
type CreateOrdersRequest struct {
	Orders []OrderPayload `json:"orders"`
}

// CreateOrdersResponse lists the identifiers of ingested orders.
type CreateOrdersResponse struct {
	Orders []IDRef `json:"orders"`
}

// UpdateCourierRequest is the PATCH /couriers/:id body. Absent fields stay
// unchanged; a present empty list clears the corresponding set.
type UpdateCourierRequest struct {
	Transport    *string   `json:"courier_type"`
	Regions      *[]int64  `json:"regions"`
	WorkingHours *[]string `json:"working_hours"`
}

// CourierSnapshotResponse is the courier's profile after a patch.
type CourierSnapshotResponse struct {
	CourierID    int64    `json:"courier_id"`
	Transport    string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

// CourierInfoResponse is the GET /couriers/:id payload. Rating is omitted
// while the courier has no delivered orders.
type CourierInfoResponse struct {
	CourierID    int64    `json:"courier_id"`
	Transport    string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
	Rating       *float64 `json:"rating,omitempty"`
	Earnings     int64    `json:"earnings"`
}

// AssignRequest is the POST /orders/assign body.
type AssignRequest struct {
	CourierID int64 `json:"courier_id"`
}

// AssignResponse reports the courier's open run. An empty Orders list with
// no RunID means no assignment was possible.
type AssignResponse struct {
	Orders []IDRef `json:"orders"`
	RunID  string  `json:"run_id,omitempty"`
}

// CompleteRequest is the POST /orders/complete body.
type CompleteRequest struct {
	CourierID    int64  `json:"courier_id"`
	OrderID      int64  `json:"order_id"`
	CompleteTime string `json:"complete_time"`
}

// CompleteResponse confirms which order was delivered.
type CompleteResponse struct {
	OrderID int64 `json:"order_id"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
