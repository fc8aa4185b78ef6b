package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBill_ToBackup(t *testing.T) {
	bill := Bill{
		ID:            "bill-1",
		InvoiceNumber: "INV-2026-0042",
		BillingMode:   "dine-in",
		BillDate:      time.Date(2026, 3, 14, 13, 30, 0, 0, time.UTC),
		Items: []BillItem{
			{ItemID: "item-1", Name: "Masala Dosa", Quantity: 2, Price: 90, GSTRate: 5, Amount: 180},
		},
		Subtotal:  180,
		Total:     189,
		CreatedAt: time.Date(2026, 3, 14, 13, 31, 0, 0, time.UTC),
	}
	info := RestaurantInfo{
		Name:    "Dosa Plaza",
		Address: "12 MG Road",
		GSTIN:   "29ABCDE1234F1Z5",
	}

	wire := bill.ToBackup(info, "device-42")

	assert.Equal(t, "INV-2026-0042", wire.InvoiceNumber)
	assert.Equal(t, "bill-1", wire.BillID)
	assert.Equal(t, "Dosa Plaza", wire.RestaurantName)
	assert.Equal(t, "29ABCDE1234F1Z5", wire.GSTIN)
	assert.Equal(t, "device-42", wire.DeviceID)
	assert.Equal(t, "2026-03-14T13:30:00Z", wire.BillDate)
	assert.Equal(t, "2026-03-14T13:31:00Z", wire.Timestamp)
	assert.Len(t, wire.Items, 1)
}

func TestBackupBill_ToBill(t *testing.T) {
	wire := BackupBill{
		InvoiceNumber: "INV-2026-0042",
		BillID:        "bill-1",
		BillDate:      "2026-03-14T13:30:00Z",
		Timestamp:     "2026-03-14T13:31:00Z",
		Total:         189,
	}

	bill := wire.ToBill()

	assert.Equal(t, "bill-1", bill.ID)
	assert.Equal(t, "INV-2026-0042", bill.InvoiceNumber)
	assert.Equal(t, time.Date(2026, 3, 14, 13, 30, 0, 0, time.UTC), bill.BillDate)
	assert.True(t, bill.IsSynced, "a downloaded bill is server-acknowledged by definition")
}

func TestOperationAndEntityTypeValidation(t *testing.T) {
	assert.True(t, OperationCreate.Valid())
	assert.True(t, OperationDelete.Valid())
	assert.False(t, OperationType("upsert").Valid())

	assert.True(t, EntityCategory.Valid())
	assert.True(t, EntityInventory.Valid())
	assert.False(t, EntityType("table").Valid())
}

func TestSyncResult_Total(t *testing.T) {
	r := SyncResult{CategoriesSynced: 2, ItemsSynced: 3, BillsSynced: 5, InventorySynced: 1}
	assert.Equal(t, 11, r.Total())
	assert.Zero(t, SyncResult{Skipped: true}.Total())
}
