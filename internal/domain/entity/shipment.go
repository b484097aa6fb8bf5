package entity

import "time"

// ShipmentStatus delivery state of a shipment.
type ShipmentStatus int

const (
	ShipmentStatusProcessing ShipmentStatus = 1
	ShipmentStatusInTransit  ShipmentStatus = 2
	ShipmentStatusDelivered  ShipmentStatus = 3
	ShipmentStatusDelayed    ShipmentStatus = 4
)

var shipmentStatusNames = map[ShipmentStatus]string{
	ShipmentStatusProcessing: "Processing",
	ShipmentStatusInTransit:  "InTransit",
	ShipmentStatusDelivered:  "Delivered",
	ShipmentStatusDelayed:    "Delayed",
}

func ShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		ShipmentStatusProcessing, ShipmentStatusInTransit,
		ShipmentStatusDelivered, ShipmentStatusDelayed,
	}
}

func (s ShipmentStatus) String() string {
	if name, ok := shipmentStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s ShipmentStatus) IsValid() bool {
	_, ok := shipmentStatusNames[s]
	return ok
}

// Shipment a device shipment to a customer. TrackingNumber is unique.
type Shipment struct {
	ID                int
	TrackingNumber    string
	CustomerName      string
	Status            ShipmentStatus
	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
	Destination       string
	CreatedAt         time.Time
}
