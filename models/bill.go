package models

import "time"

// BillItem is one line of a bill. Amounts are persisted exactly as computed
// by the tax/discount collaborator; the sync engine transports them opaquely.
type BillItem struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	GSTRate  float64 `json:"gst_rate"`
	Amount   float64 `json:"amount"`
}

// Bill is a completed sale. A bill is created whole and atomic: it has no
// partial-update lifecycle, so it is synced straight from its table rather
// than through the generic operation queue.
type Bill struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	BillingMode   string     `json:"billing_mode"`
	BillDate      time.Time  `json:"bill_date"`
	Items         []BillItem `json:"items"`

	Subtotal           float64 `json:"subtotal"`
	DiscountAmount     float64 `json:"discount_amount"`
	DiscountPercentage float64 `json:"discount_percentage"`
	CGST               float64 `json:"cgst"`
	SGST               float64 `json:"sgst"`
	IGST               float64 `json:"igst"`
	TotalTax           float64 `json:"total_tax"`
	Total              float64 `json:"total"`

	PaymentMode      string  `json:"payment_mode"`
	PaymentReference string  `json:"payment_reference,omitempty"`
	AmountPaid       float64 `json:"amount_paid"`
	ChangeAmount     float64 `json:"change_amount"`

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	Notes         string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	IsSynced        bool       `json:"-"`
	ServerUpdatedAt *time.Time `json:"-"`
}
