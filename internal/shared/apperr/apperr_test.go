package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	specific := &Error{Kind: KindNotFound, Code: "PRODUCT_NOT_FOUND", Message: "Product not found"}
	wrapped := fmt.Errorf("service: %w", specific)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.True(t, errors.Is(wrapped, specific))
	assert.False(t, errors.Is(wrapped, ErrDuplicateName))

	other := &Error{Kind: KindNotFound, Code: "CATEGORY_NOT_FOUND"}
	assert.False(t, errors.Is(wrapped, other))
}

func TestError_Message(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindTransactionFailure, "transaction rolled back", cause)

	assert.Equal(t, "[TRANSACTION_FAILURE] transaction rolled back: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[NOT_FOUND] missing", NotFound("missing").Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{DuplicateName("x"), http.StatusConflict},
		{CategoryInUse("x"), http.StatusConflict},
		{InvalidCategoryReference("x"), http.StatusBadRequest},
		{New(KindConstraintViolation, "x"), http.StatusBadRequest},
		{Validation("x", nil), http.StatusBadRequest},
		{New(KindTransactionFailure, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublic_HidesInternalDetails(t *testing.T) {
	code, msg := Public(errors.New("pq: password authentication failed"))
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.Equal(t, "Internal server error", msg)

	code, msg = Public(Wrap(KindTransactionFailure, "rolled back", errors.New("conn reset")))
	assert.Equal(t, "TRANSACTION_FAILURE", code)
	assert.NotContains(t, msg, "conn reset")

	code, msg = Public(fmt.Errorf("wrap: %w", DuplicateName("Product name already exists")))
	assert.Equal(t, "DUPLICATE_NAME", code)
	assert.Equal(t, "Product name already exists", msg)
}

func TestFromPg(t *testing.T) {
	tests := []struct {
		name string
		err  *pgconn.PgError
		op   Op
		want Kind
		msg  string
	}{
		{"unique product", &pgconn.PgError{Code: "23505", ConstraintName: "products_name_key"}, OpWrite, KindDuplicateName, "Product name already exists"},
		{"unique category", &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"}, OpWrite, KindDuplicateName, "Category name already exists"},
		{"fk on insert", &pgconn.PgError{Code: "23503"}, OpWrite, KindInvalidCategoryReference, "Referenced category does not exist"},
		{"fk on delete", &pgconn.PgError{Code: "23503"}, OpDelete, KindCategoryInUse, "Cannot delete category that is being used by products"},
		{"not null", &pgconn.PgError{Code: "23502", ColumnName: "name"}, OpWrite, KindConstraintViolation, `Field "name" is required`},
		{"too long", &pgconn.PgError{Code: "22001"}, OpWrite, KindConstraintViolation, "Value is too long for its field"},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "products_quantity_check"}, OpWrite, KindConstraintViolation, "Quantity must be a non-negative integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromPg(fmt.Errorf("exec: %w", tt.err), tt.op)

			var e *Error
			if assert.ErrorAs(t, got, &e) {
				assert.Equal(t, tt.want, e.Kind)
				assert.Equal(t, tt.msg, e.Message)
			}
			var pgErr *pgconn.PgError
			assert.ErrorAs(t, got, &pgErr, "driver error stays in the chain")
		})
	}
}

func TestFromPg_PassThrough(t *testing.T) {
	assert.NoError(t, FromPg(nil, OpWrite))

	plain := errors.New("network")
	assert.Same(t, plain, FromPg(plain, OpWrite))

	deadlock := &pgconn.PgError{Code: "40P01"}
	assert.Same(t, error(deadlock), FromPg(deadlock, OpWrite))
}

func TestTxFailure(t *testing.T) {
	assert.NoError(t, TxFailure(nil, OpWrite))

	assert.Equal(t, KindInvalidCategoryReference, KindOf(TxFailure(&pgconn.PgError{Code: "23503"}, OpWrite)))
	assert.Equal(t, KindNotFound, KindOf(TxFailure(NotFound("gone"), OpWrite)))
	assert.Equal(t, KindTransactionFailure, KindOf(TxFailure(errors.New("conn closed"), OpWrite)))
}
