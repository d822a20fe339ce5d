package apperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes handled by FromPg.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
	pgNumericOutOfRange   = "22003"
)

// Op tells FromPg which side of a foreign key the failing statement was on.
type Op int

const (
	// OpWrite is an INSERT or UPDATE: a missing referenced row.
	OpWrite Op = iota
	// OpDelete is a DELETE: the row is still referenced.
	OpDelete
)

// FromPg is the single translation point from driver errors to domain kinds.
// Errors that are not *pgconn.PgError, or carry an unhandled SQLSTATE,
// are returned unchanged.
func FromPg(err error, op Op) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return Wrap(KindDuplicateName, uniqueMessage(pgErr), err)

	case pgForeignKeyViolation:
		if op == OpDelete {
			return Wrap(KindCategoryInUse, "Cannot delete category that is being used by products", err)
		}
		return Wrap(KindInvalidCategoryReference, "Referenced category does not exist", err)

	case pgNotNullViolation:
		return Wrap(KindConstraintViolation, fmt.Sprintf("Field %q is required", pgErr.ColumnName), err)

	case pgStringTooLong:
		return Wrap(KindConstraintViolation, "Value is too long for its field", err)

	case pgCheckViolation, pgNumericOutOfRange:
		return Wrap(KindConstraintViolation, checkMessage(pgErr), err)
	}

	return err
}

func uniqueMessage(pgErr *pgconn.PgError) string {
	switch pgErr.ConstraintName {
	case "products_name_key":
		return "Product name already exists"
	case "categories_name_key":
		return "Category name already exists"
	default:
		return "Name already exists"
	}
}

func checkMessage(pgErr *pgconn.PgError) string {
	switch pgErr.ConstraintName {
	case "products_quantity_check":
		return "Quantity must be a non-negative integer"
	default:
		return "Value violates a data constraint"
	}
}

// TxFailure classifies an error raised inside a transaction. Errors already
// carrying a domain kind keep it; everything else becomes TransactionFailure.
func TxFailure(err error, op Op) error {
	if err == nil {
		return nil
	}

	translated := FromPg(err, op)

	var e *Error
	if errors.As(translated, &e) {
		return translated
	}
	return Wrap(KindTransactionFailure, "transaction rolled back", translated)
}
