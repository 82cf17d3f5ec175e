package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:   "ERROR",
		Code:       "23502",
		Message:    `null value in column "name" of relation "shopping" violates not-null constraint`,
		TableName:  "shopping",
		ColumnName: "name",
	}

	err := HandleError(fmt.Errorf("insert item: %w", pgErr))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, pgErr.Message, httpErr.Message)
	assert.Equal(t, "SHOPPING_REQUIRED", httpErr.Code)
}

func TestHandleError_Other(t *testing.T) {
	err := HandleError(context.DeadlineExceeded)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), httpErr.Message)
	assert.Equal(t, "STORAGE_ERROR", httpErr.Code)
}

func TestHandleError_PassThrough(t *testing.T) {
	assert.NoError(t, HandleError(nil))

	original := errs.NewMethodNotAllowedError()
	assert.Same(t, original, HandleError(original))
}

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23502": NotNullViolation,
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23514": CheckViolation,
		"22P02": InvalidText,
		"42P01": UndefinedTable,
		"08006": ConnectionFailure,
		"XX000": Other,
	}

	for state, want := range tests {
		assert.Equal(t, want, MapCode(state), state)
	}
}

func TestConvertPgError(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})

	assert.Equal(t, UniqueViolation, converted.Code)
	assert.Equal(t, SeverityError, converted.Severity)
}

func TestHandleStateError(t *testing.T) {
	err := HandleStateError("shopping", "42P01", `relation "public.shopping" does not exist`)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "SHOPPING_SCHEMA_MISMATCH", httpErr.Code)
	assert.Equal(t, `relation "public.shopping" does not exist`, httpErr.Message)

	err = HandleStateError("shopping", "", "upstream unavailable")
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "STORAGE_ERROR", httpErr.Code)
}
