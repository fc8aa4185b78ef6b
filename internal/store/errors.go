package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrInvalidOperation is returned when an enqueue request carries an
	// unknown operation or entity type, or an empty entity id.
	ErrInvalidOperation = errors.New("invalid queued operation")

	// ErrOperationNotFound is returned when a queue update targets an
	// operation id that does not exist.
	ErrOperationNotFound = errors.New("queued operation was not found")

	// ErrPartialMark is returned when a MarkSynced batch would update fewer
	// rows than requested. The transaction is rolled back: marking a
	// partially-uploaded batch as synced would silently drop data.
	ErrPartialMark = errors.New("refusing to mark partially matched batch as synced")

	// ErrBillNotFound is returned when a bill lookup by id or invoice
	// number produces no row.
	ErrBillNotFound = errors.New("bill was not found")

	// ErrDuplicateInvoice is returned when inserting a bill whose invoice
	// number already exists locally.
	ErrDuplicateInvoice = errors.New("bill with this invoice number already exists")

	// ErrInventoryItemNotFound is returned when an inventory update targets
	// an id that does not exist.
	ErrInventoryItemNotFound = errors.New("inventory item was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
