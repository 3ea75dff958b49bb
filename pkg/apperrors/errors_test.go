package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Parallel()

	plain := New(CodeNotFound, "entries", "Entry not found", http.StatusNotFound)
	assert.Equal(t, "[entries:NOT_FOUND] Entry not found", plain.Error())

	wrapped := Wrap(errors.New("sql: no rows"), CodeNotFound, "entries", "Entry not found", http.StatusNotFound)
	assert.Equal(t, "[entries:NOT_FOUND] Entry not found (sql: no rows)", wrapped.Error())
}

func TestAppError_MarshalJSON_HidesInternals(t *testing.T) {
	t.Parallel()

	appErr := Wrap(errors.New("connection refused"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "INTERNAL_ERROR", out["code"])
	assert.Equal(t, "system", out["domain"])
	// Err и HTTPCode не сериализуются
	assert.NotContains(t, string(data), "connection refused")
	assert.NotContains(t, out, "Err")
}

func TestWrap_UnwrapChain(t *testing.T) {
	t.Parallel()

	root := errors.New("root cause")
	appErr := Wrap(root, CodeInternalError, "system", "boom", http.StatusInternalServerError)
	outer := fmt.Errorf("service layer: %w", appErr)

	assert.True(t, Is(outer, root))

	got, ok := AsAppError(outer)
	require.True(t, ok)
	assert.Equal(t, CodeInternalError, got.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestDomainErrors_HTTPCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *AppError
		code int
	}{
		{ErrInvalidCredentials, http.StatusBadRequest},
		{ErrEmailNotVerified, http.StatusForbidden},
		{ErrEmailAlreadyExists, http.StatusConflict},
		{ErrWeakPassword, http.StatusBadRequest},
		{ErrInvalidToken, http.StatusBadRequest},
		{ErrNotOwner, http.StatusForbidden},
		{ErrNotEditor, http.StatusForbidden},
		{ErrEntryNotFound, http.StatusNotFound},
		{ErrCommentNotFound, http.StatusNotFound},
		{ErrCommentTooLong, http.StatusBadRequest},
		{ErrParentCommentInvalid, http.StatusBadRequest},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.HTTPCode, tc.err.Message)
	}
}

func TestValidationError_Details(t *testing.T) {
	t.Parallel()

	appErr := ValidationError(map[string]string{"email": "is required"})
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	data, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"email":"is required"`)
}
