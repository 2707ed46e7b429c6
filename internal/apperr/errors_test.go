package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeTableNotFound, "missing")
	assert.Equal(t, CodeTableNotFound, err.Code)
	assert.Equal(t, "missing", err.Message)
	assert.Nil(t, err.Cause)
	assert.Contains(t, err.Error(), "TABLE_NOT_FOUND")
	assert.Contains(t, err.Error(), "missing")
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(CodeColumnNotFound, "column %q not found", "age")
	assert.Equal(t, `column "age" not found`, err.Message)
}

func TestWrapPreservesCauseInUnwrapChain(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeIO, "failed to write", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestGetCodeWalksUnwrapChain(t *testing.T) {
	inner := New(CodePrimaryKeyViolation, "dup")
	outer := Wrap(CodeInsertFailed, "insert failed", inner)

	assert.Equal(t, CodeInsertFailed, GetCode(outer))
	assert.Equal(t, CodePrimaryKeyViolation, GetCode(inner))
}

func TestGetCodeReturnsUnknownForPlainError(t *testing.T) {
	assert.Equal(t, Unknown, GetCode(errors.New("plain")))
	assert.Equal(t, Unknown, GetCode(nil))
}

func TestIsChecksCodeInChain(t *testing.T) {
	err := New(CodeSyntax, "bad token")
	assert.True(t, Is(err, CodeSyntax))
	assert.False(t, Is(err, CodeIO))
}

func TestCodeStringCoversKnownCodes(t *testing.T) {
	cases := map[Code]string{
		CodeSyntax:              "SYNTAX_ERROR",
		CodeTableNotFound:       "TABLE_NOT_FOUND",
		CodeTableAlreadyExists:  "TABLE_ALREADY_EXISTS",
		CodeColumnNotFound:      "COLUMN_NOT_FOUND",
		CodeInvalidTableName:    "INVALID_TABLE_NAME",
		CodeInvalidSchema:       "INVALID_SCHEMA",
		CodeInvalidQuery:        "INVALID_QUERY",
		CodePrimaryKeyViolation: "PRIMARY_KEY_VIOLATION",
		CodeMissingPrimaryKey:   "MISSING_PRIMARY_KEY",
		CodeOptimizationFailed:  "OPTIMIZATION_FAILED",
		CodeInsertFailed:        "INSERT_FAILED",
		CodeUpdateFailed:        "UPDATE_FAILED",
		CodeIO:                  "IO_ERROR",
		Unknown:                 "UNKNOWN",
	}
	for code, want := range cases {
		assert.Equal(t, want, code.String())
	}
}
