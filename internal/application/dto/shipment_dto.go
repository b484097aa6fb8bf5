package dto

import "time"

// CreateShipmentRequest input to register a shipment.
type CreateShipmentRequest struct {
	TrackingNumber    string    `json:"tracking_number"`
	CustomerName      string    `json:"customer_name"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	Destination       string    `json:"destination"`
}

// UpdateShipmentStatusRequest input to move a shipment to a new status.
type UpdateShipmentStatusRequest struct {
	Status         int        `json:"status"`
	ActualDelivery *time.Time `json:"actual_delivery,omitempty"`
}

// ShipmentResponse output for a shipment.
type ShipmentResponse struct {
	ID                int        `json:"id"`
	TrackingNumber    string     `json:"tracking_number"`
	CustomerName      string     `json:"customer_name"`
	Status            int        `json:"status"`
	StatusName        string     `json:"status_name"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery"`
	Destination       string     `json:"destination"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ShipmentListResponse paginated shipment list.
type ShipmentListResponse struct {
	Total int                `json:"total"`
	Items []ShipmentResponse `json:"items"`
}

// ShipmentStatusDistributionResponse shipment count per status.
type ShipmentStatusDistributionResponse struct {
	Processing int `json:"processing"`
	InTransit  int `json:"in_transit"`
	Delivered  int `json:"delivered"`
	Delayed    int `json:"delayed"`
}
