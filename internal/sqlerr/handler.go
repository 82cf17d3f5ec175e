package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
)

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
//
// SQLSTATE and severity are mapped into enums; the original error is kept
// for Unwrap() and debugging.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates consistent log codes from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	shopping + NotNullViolation => SHOPPING_REQUIRED
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	case InvalidText:
		action = "INVALID_VALUE"
	case UndefinedTable, UndefinedColumn:
		action = "SCHEMA_MISMATCH"
	case ConnectionFailure:
		action = "UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - nil stays nil
//   - If already *errs.HTTPError: returned unchanged
//   - If pgconn.PgError: a 500 storage error carrying the Postgres message
//     and a classified log code
//   - Otherwise: a 500 storage error carrying err.Error()
//
// Every storage failure looks the same to the client; only the log code differs.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		return errs.NewStorageError(sqlErr.Message, &errorCode)
	}

	return errs.NewStorageError(err.Error(), nil)
}

// HandleStateError builds the storage error for a failure reported by an
// HTTP data API (e.g. PostgREST) that passes the SQLSTATE through without a
// driver error. An empty sqlState gives the default "STORAGE_ERROR" code.
func HandleStateError(tableName, sqlState, message string) error {
	if sqlState == "" {
		return errs.NewStorageError(message, nil)
	}

	errorCode := generateErrorCode(tableName, MapCode(sqlState))
	return errs.NewStorageError(message, &errorCode)
}
