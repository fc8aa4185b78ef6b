package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

func testBill() models.Bill {
	return models.Bill{
		ID:            "bill-1",
		InvoiceNumber: "INV-2026-0042",
		BillingMode:   "dine-in",
		BillDate:      time.Date(2026, 3, 14, 13, 30, 0, 0, time.UTC),
		Items: []models.BillItem{
			{ItemID: "item-1", Name: "Masala Dosa", Quantity: 2, Price: 90, GSTRate: 5, Amount: 180},
		},
		Subtotal:     180,
		CGST:         4.5,
		SGST:         4.5,
		TotalTax:     9,
		Total:        189,
		PaymentMode:  "cash",
		AmountPaid:   200,
		ChangeAmount: 11,
		CreatedAt:    time.Date(2026, 3, 14, 13, 31, 0, 0, time.UTC),
	}
}

func TestBillRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBillRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO bills").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), testBill())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepository_SaveDuplicateInvoice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBillRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO bills").
		WillReturnError(errors.New("UNIQUE constraint failed: bills.invoice_number"))

	err := repo.Save(context.Background(), testBill())
	assert.ErrorIs(t, err, ErrDuplicateInvoice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepository_SaveIfNewInvoice(t *testing.T) {
	t.Run("inserts unknown invoice", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBillRepository(db, logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bills WHERE invoice_number = ?")).
			WithArgs("INV-2026-0042").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("INSERT INTO bills").
			WillReturnResult(sqlmock.NewResult(0, 1))

		saved, err := repo.SaveIfNewInvoice(context.Background(), testBill())
		require.NoError(t, err)
		assert.True(t, saved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips known invoice", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBillRepository(db, logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bills WHERE invoice_number = ?")).
			WithArgs("INV-2026-0042").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		saved, err := repo.SaveIfNewInvoice(context.Background(), testBill())
		require.NoError(t, err)
		assert.False(t, saved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBillRepository_UnsyncedOldestFirstCapped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBillRepository(db, logger.Nop())

	bill := testBill()
	rows := sqlmock.NewRows(billColumns).
		AddRow(
			bill.ID, bill.InvoiceNumber, bill.BillingMode, bill.BillDate,
			`[{"item_id":"item-1","name":"Masala Dosa","quantity":2,"price":90,"gst_rate":5,"amount":180}]`,
			bill.Subtotal, bill.DiscountAmount, bill.DiscountPercentage,
			bill.CGST, bill.SGST, bill.IGST, bill.TotalTax, bill.Total,
			bill.PaymentMode, bill.PaymentReference, bill.AmountPaid, bill.ChangeAmount,
			bill.CustomerName, bill.CustomerPhone, bill.Notes,
			bill.CreatedAt, false, nil,
		)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bills WHERE is_synced = ? ORDER BY created_at ASC, id ASC LIMIT 50")).
		WithArgs(false).
		WillReturnRows(rows)

	bills, err := repo.Unsynced(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, bills, 1)

	assert.Equal(t, "INV-2026-0042", bills[0].InvoiceNumber)
	require.Len(t, bills[0].Items, 1)
	assert.Equal(t, "Masala Dosa", bills[0].Items[0].Name)
	assert.False(t, bills[0].IsSynced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepository_MarkSyncedPartialBatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBillRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bills").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := repo.MarkSynced(context.Background(), []string{"bill-1", "bill-2"})
	assert.ErrorIs(t, err, ErrPartialMark)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepository_CountUnsynced(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBillRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bills WHERE is_synced = FALSE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountUnsynced(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
