package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

var billColumns = []string{
	"id",
	"invoice_number",
	"billing_mode",
	"bill_date",
	"items",
	"subtotal",
	"discount_amount",
	"discount_percentage",
	"cgst",
	"sgst",
	"igst",
	"total_tax",
	"total",
	"payment_mode",
	"payment_reference",
	"amount_paid",
	"change_amount",
	"customer_name",
	"customer_phone",
	"notes",
	"created_at",
	"is_synced",
	"server_updated_at",
}

type localBillRepository struct {
	*DB
	logger *logger.Logger
}

func NewBillRepository(db *DB, logger *logger.Logger) BillRepository {
	return &localBillRepository{
		DB:     db,
		logger: logger,
	}
}

func (b *localBillRepository) Save(ctx context.Context, bill models.Bill) error {
	log := logger.FromContext(ctx)

	lines, err := json.Marshal(bill.Items)
	if err != nil {
		return fmt.Errorf("failed to encode bill items (id=%s): %w", bill.ID, err)
	}

	query, args, err := sq.Insert("bills").
		Columns(billColumns...).
		Values(
			bill.ID,
			bill.InvoiceNumber,
			bill.BillingMode,
			bill.BillDate,
			string(lines),
			bill.Subtotal,
			bill.DiscountAmount,
			bill.DiscountPercentage,
			bill.CGST,
			bill.SGST,
			bill.IGST,
			bill.TotalTax,
			bill.Total,
			bill.PaymentMode,
			bill.PaymentReference,
			bill.AmountPaid,
			bill.ChangeAmount,
			bill.CustomerName,
			bill.CustomerPhone,
			bill.Notes,
			bill.CreatedAt,
			bill.IsSynced,
			bill.ServerUpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = b.DB.ExecContext(ctx, query, args...); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateInvoice
		}
		log.Err(err).
			Str("func", "billRepository.Save").
			Str("bill_id", bill.ID).
			Str("invoice_number", bill.InvoiceNumber).
			Msg("failed to insert bill")
		return fmt.Errorf("failed to save bill (invoice=%s): %w", bill.InvoiceNumber, err)
	}

	return nil
}

// SaveIfNewInvoice dedupes by invoice number so a bill created offline and
// already uploaded is not duplicated when the bulk seed downloads it again.
func (b *localBillRepository) SaveIfNewInvoice(ctx context.Context, bill models.Bill) (bool, error) {
	exists, err := b.ExistsByInvoice(ctx, bill.InvoiceNumber)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err = b.Save(ctx, bill); err != nil {
		// lost the race with a concurrent insert; treat as the dedupe case
		if errors.Is(err, ErrDuplicateInvoice) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *localBillRepository) Unsynced(ctx context.Context, limit int) ([]models.Bill, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(billColumns...).
		From("bills").
		Where(sq.Eq{"is_synced": false}).
		OrderBy("created_at ASC", "id ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "billRepository.Unsynced").
			Msg("failed to query unsynced bills")
		return nil, fmt.Errorf("failed to query unsynced bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		bill, scanErr := scanBill(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "billRepository.Unsynced").
				Msg("failed to scan bill row")
			return nil, fmt.Errorf("failed to scan bill row: %w", scanErr)
		}
		bills = append(bills, bill)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", rowsErr)
	}

	return bills, nil
}

// MarkSynced flips the whole uploaded batch in one transaction; a partially
// acknowledged batch must never be recorded as synced.
func (b *localBillRepository) MarkSynced(ctx context.Context, ids []string) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := sq.Update("bills").
		Set("is_synced", true).
		Set("server_updated_at", time.Now()).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "billRepository.MarkSynced").
			Int("batch_size", len(ids)).
			Msg("failed to mark bills synced")
		return fmt.Errorf("failed to mark bills synced: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected != int64(len(ids)) {
		return ErrPartialMark
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (b *localBillRepository) ExistsByInvoice(ctx context.Context, invoiceNumber string) (bool, error) {
	var n int
	err := b.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bills WHERE invoice_number = ?;`, invoiceNumber,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check invoice %s: %w", invoiceNumber, err)
	}
	return n > 0, nil
}

func (b *localBillRepository) CountUnsynced(ctx context.Context) (int, error) {
	var n int
	err := b.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bills WHERE is_synced = FALSE;`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count unsynced bills: %w", err)
	}
	return n, nil
}

func scanBill(rows *sql.Rows) (models.Bill, error) {
	var (
		bill            models.Bill
		lines           string
		serverUpdatedAt sql.NullTime
	)

	err := rows.Scan(
		&bill.ID,
		&bill.InvoiceNumber,
		&bill.BillingMode,
		&bill.BillDate,
		&lines,
		&bill.Subtotal,
		&bill.DiscountAmount,
		&bill.DiscountPercentage,
		&bill.CGST,
		&bill.SGST,
		&bill.IGST,
		&bill.TotalTax,
		&bill.Total,
		&bill.PaymentMode,
		&bill.PaymentReference,
		&bill.AmountPaid,
		&bill.ChangeAmount,
		&bill.CustomerName,
		&bill.CustomerPhone,
		&bill.Notes,
		&bill.CreatedAt,
		&bill.IsSynced,
		&serverUpdatedAt,
	)
	if err != nil {
		return models.Bill{}, err
	}

	if lines != "" {
		if err = json.Unmarshal([]byte(lines), &bill.Items); err != nil {
			return models.Bill{}, fmt.Errorf("failed to decode bill items: %w", err)
		}
	}
	if serverUpdatedAt.Valid {
		t := serverUpdatedAt.Time
		bill.ServerUpdatedAt = &t
	}

	return bill, nil
}
