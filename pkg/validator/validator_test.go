package validator

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutForm struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	ShippingAddress string `json:"shipping_address" validate:"required,min=5"`
}

type reviewForm struct {
	Username string `json:"username" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"required"`
}

func TestValidate_Success(t *testing.T) {
	form := checkoutForm{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		ShippingAddress: "12 Analytical Way",
	}
	assert.NoError(t, Validate(form))
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(checkoutForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["FullName"])
	assert.Equal(t, "is required", fields["Email"])
	assert.Contains(t, err.Error(), "field 'FullName' is required")
}

func TestValidate_RangeMessages(t *testing.T) {
	err := Validate(reviewForm{Username: "tiff", Rating: 9, Comment: "great"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be less than or equal to 5", valErr.Fields()["Rating"])
}

func TestValidate_EmailMessage(t *testing.T) {
	err := Validate(checkoutForm{FullName: "Ada", Email: "not-an-email", ShippingAddress: "12 Analytical Way"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestDecodeAndValidate(t *testing.T) {
	body := `{"username":"tiff","rating":5,"comment":"love it"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var form reviewForm
	require.NoError(t, DecodeAndValidate(r, &form))
	assert.Equal(t, 5, form.Rating)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))

	var form reviewForm
	assert.Error(t, DecodeAndValidate(r, &form))
}
