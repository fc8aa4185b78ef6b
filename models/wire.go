package models

import (
	"encoding/json"
	"time"
)

// SyncOperation is the wire form of one queued operation inside a batch
// sync request. Create and update carry the entity snapshot in Data; delete
// carries only ID. Batch order on the wire is the local enqueue order.
type SyncOperation struct {
	Operation OperationType   `json:"operation"`
	Data      json.RawMessage `json:"data,omitempty"`
	ID        string          `json:"id,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// SyncRequest is the body of POST /categories/sync and POST /items/sync.
type SyncRequest struct {
	Operations []SyncOperation `json:"operations"`
	DeviceID   string          `json:"device_id,omitempty"`
}

// SyncResponse is the server's answer to a batch sync request. Categories or
// Items echo back the accepted snapshots with server-assigned fields
// (updated_at, and for items the rewritten image URL).
type SyncResponse struct {
	Synced     int        `json:"synced"`
	Categories []Category `json:"categories,omitempty"`
	Items      []Item     `json:"items,omitempty"`
}

// BackupBill is the wire object POSTed to /backup/sync and returned by
// GET /backup/sync. Restaurant identity fields are stamped from config so
// the server can render the bill without device context.
type BackupBill struct {
	InvoiceNumber      string     `json:"invoice_number"`
	BillID             string     `json:"bill_id"`
	BillingMode        string     `json:"billing_mode"`
	RestaurantName     string     `json:"restaurant_name"`
	Address            string     `json:"address"`
	GSTIN              string     `json:"gstin,omitempty"`
	FSSAILicense       string     `json:"fssai_license,omitempty"`
	BillDate           string     `json:"bill_date"`
	Items              []BillItem `json:"items"`
	Subtotal           float64    `json:"subtotal"`
	DiscountAmount     float64    `json:"discount_amount"`
	DiscountPercentage float64    `json:"discount_percentage"`
	CGST               float64    `json:"cgst"`
	SGST               float64    `json:"sgst"`
	IGST               float64    `json:"igst"`
	TotalTax           float64    `json:"total_tax"`
	Total              float64    `json:"total"`
	PaymentMode        string     `json:"payment_mode"`
	PaymentReference   string     `json:"payment_reference,omitempty"`
	AmountPaid         float64    `json:"amount_paid"`
	ChangeAmount       float64    `json:"change_amount"`
	CustomerName       string     `json:"customer_name,omitempty"`
	CustomerPhone      string     `json:"customer_phone,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	Timestamp          string     `json:"timestamp"`
	DeviceID           string     `json:"device_id"`
}

// RestaurantInfo carries the identity fields stamped onto every uploaded
// bill. Populated from config, not from the bill row.
type RestaurantInfo struct {
	Name         string
	Address      string
	GSTIN        string
	FSSAILicense string
}

// ToBackup converts a local bill row into its wire form.
func (b Bill) ToBackup(info RestaurantInfo, deviceID string) BackupBill {
	return BackupBill{
		InvoiceNumber:      b.InvoiceNumber,
		BillID:             b.ID,
		BillingMode:        b.BillingMode,
		RestaurantName:     info.Name,
		Address:            info.Address,
		GSTIN:              info.GSTIN,
		FSSAILicense:       info.FSSAILicense,
		BillDate:           b.BillDate.UTC().Format(time.RFC3339),
		Items:              b.Items,
		Subtotal:           b.Subtotal,
		DiscountAmount:     b.DiscountAmount,
		DiscountPercentage: b.DiscountPercentage,
		CGST:               b.CGST,
		SGST:               b.SGST,
		IGST:               b.IGST,
		TotalTax:           b.TotalTax,
		Total:              b.Total,
		PaymentMode:        b.PaymentMode,
		PaymentReference:   b.PaymentReference,
		AmountPaid:         b.AmountPaid,
		ChangeAmount:       b.ChangeAmount,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		Notes:              b.Notes,
		Timestamp:          b.CreatedAt.UTC().Format(time.RFC3339),
		DeviceID:           deviceID,
	}
}

// ToBill converts a downloaded wire bill back into a local row. Downloaded
// bills are server-acknowledged by definition, so IsSynced starts true.
func (w BackupBill) ToBill() Bill {
	billDate, _ := time.Parse(time.RFC3339, w.BillDate)
	createdAt, _ := time.Parse(time.RFC3339, w.Timestamp)

	return Bill{
		ID:                 w.BillID,
		InvoiceNumber:      w.InvoiceNumber,
		BillingMode:        w.BillingMode,
		BillDate:           billDate,
		Items:              w.Items,
		Subtotal:           w.Subtotal,
		DiscountAmount:     w.DiscountAmount,
		DiscountPercentage: w.DiscountPercentage,
		CGST:               w.CGST,
		SGST:               w.SGST,
		IGST:               w.IGST,
		TotalTax:           w.TotalTax,
		Total:              w.Total,
		PaymentMode:        w.PaymentMode,
		PaymentReference:   w.PaymentReference,
		AmountPaid:         w.AmountPaid,
		ChangeAmount:       w.ChangeAmount,
		CustomerName:       w.CustomerName,
		CustomerPhone:      w.CustomerPhone,
		Notes:              w.Notes,
		CreatedAt:          createdAt,
		IsSynced:           true,
	}
}
