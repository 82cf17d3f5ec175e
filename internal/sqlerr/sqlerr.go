// Package sqlerr specifically handles database driver errors.
//
// It parses error codes from the database driver (SQLSTATE) and
// classifies them, so storage failures can be logged with a stable
// code while the client still receives the database's own message.
package sqlerr

import "fmt"

// Code is a driver-independent classification of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	InvalidText         Code = "invalid_text_representation"
	UndefinedTable      Code = "undefined_table"
	UndefinedColumn     Code = "undefined_column"
	ConnectionFailure   Code = "connection_failure"
)

// Severity mirrors the Postgres severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a classified database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE to a Code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidText
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	}

	// Class 08: connection exceptions.
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionFailure
	}
	return Other
}

// MapSeverity maps the severity string reported by Postgres.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}
