package domain

import "time"

// Order carries a snapshot of the buyer's identity and shipping details
// taken at purchase time, independent of the live user row. The snapshot
// geo fields are pointers because erasure nulls them; the financial and
// delivery fields are never touched by erasure.
type Order struct {
	ID                 int64       `json:"id"`
	UserID             int64       `json:"userId"`
	EmailSnapshot      string      `json:"emailSnapshot,omitempty"`
	ShippingName       string      `json:"shippingName,omitempty"`
	ShippingAddress    string      `json:"shippingAddress,omitempty"`
	ShippingCity       *string     `json:"shippingCity,omitempty"`
	ShippingState      *string     `json:"shippingState,omitempty"`
	ShippingZip        *string     `json:"shippingZip,omitempty"`
	TaxCents           int64       `json:"taxCents"`
	ShippingPriceCents int64       `json:"shippingPriceCents"`
	TotalCostCents     int64       `json:"totalCostCents"`
	IsPaid             bool        `json:"isPaid"`
	IsDelivered        bool        `json:"isDelivered"`
	PaidAt             *time.Time  `json:"paidAt,omitempty"`
	DeliveredAt        *time.Time  `json:"deliveredAt,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	Items              []OrderItem `json:"items,omitempty"`
	Payments           []Payment   `json:"payments,omitempty"`
}

// OrderItem is a purchased line. Erasure never touches order items.
type OrderItem struct {
	ID             int64  `json:"id"`
	OrderID        int64  `json:"orderId"`
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// Payment belongs to one order. PSPRef and Last4 are financial reference
// data, not personal data, and survive erasure for reconciliation.
type Payment struct {
	ID             int64     `json:"id"`
	OrderID        int64     `json:"orderId"`
	BillingName    string    `json:"billingName,omitempty"`
	BillingAddress string    `json:"billingAddress,omitempty"`
	PSPRef         string    `json:"pspRef,omitempty"`
	Last4          string    `json:"last4,omitempty"`
	AmountCents    int64     `json:"amountCents"`
	CreatedAt      time.Time `json:"createdAt"`
}
