package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tiffanyadora/storefront/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_MutationShape(t *testing.T) {
	resp := fakeResponse(http.StatusBadRequest, `{"success": false, "error": "Invalid quantity"}`)
	err := ParseResponseError(resp, "update cart item")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Invalid quantity", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestParseResponseError_ObjectShape(t *testing.T) {
	resp := fakeResponse(http.StatusNotFound, `{"error": {"code": "NOT_FOUND", "message": "Product not found"}}`)
	err := ParseResponseError(resp, "fetch product")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Product not found", appErr.Message)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestParseResponseError_ServerError(t *testing.T) {
	resp := fakeResponse(http.StatusInternalServerError, `{"success": false, "error": "database unavailable"}`)
	err := ParseResponseError(resp, "checkout")

	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := fakeResponse(http.StatusBadGateway, `<html>bad gateway</html>`)
	err := ParseResponseError(resp, "fetch cart")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch cart returned status 502")
}

func TestServerMessage(t *testing.T) {
	resp := fakeResponse(http.StatusBadRequest, `{"success": false, "error": "Item not in cart"}`)
	err := ParseResponseError(resp, "remove cart item")
	assert.Equal(t, "Item not in cart", ServerMessage(err))

	assert.Equal(t, "", ServerMessage(errors.New("connection refused")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(http.StatusBadRequest))
	assert.True(t, IsClientError(http.StatusNotFound))
	assert.False(t, IsClientError(http.StatusInternalServerError))
	assert.False(t, IsClientError(http.StatusOK))
}
