package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/nexus/pkg/bind"
)

type signup struct {
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password" validate:"required,max=72"`
	Price    *float64 `json:"price"    validate:"required"`
	Stock    int      `json:"stock"    validate:"gte=0"`
}

func request(body string) (*httptest.ResponseRecorder, *http.Request) {
	return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSON_Valid(t *testing.T) {
	w, r := request(`{"email":"a@b.com","password":"pw123","price":0}`)

	var got signup
	require.NoError(t, bind.New(0).JSON(w, r, &got))
	assert.Equal(t, "a@b.com", got.Email)
	require.NotNil(t, got.Price)
	assert.Zero(t, *got.Price, "zero is a present value")
}

func TestJSON_FieldErrorsUseJSONNames(t *testing.T) {
	w, r := request(`{"email":"not-an-email","stock":-1}`)

	var got signup
	err := bind.New(0).JSON(w, r, &got)

	var fe bind.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "must be a valid email", fe["email"])
	assert.Equal(t, "is required", fe["password"])
	assert.Equal(t, "is required", fe["price"])
	assert.Equal(t, "must be greater than or equal to 0", fe["stock"])
}

func TestJSON_WrongType(t *testing.T) {
	w, r := request(`{"email":"a@b.com","password":"pw","price":"cheap"}`)

	var got signup
	err := bind.New(0).JSON(w, r, &got)

	var fe bind.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "must be of type number", fe["price"])
}

func TestJSON_Malformed(t *testing.T) {
	w, r := request(`{"email":`)

	var got signup
	err := bind.New(0).JSON(w, r, &got)
	assert.ErrorIs(t, err, bind.ErrMalformedBody)
}

func TestJSON_TooLarge(t *testing.T) {
	w, r := request(`{"email":"` + strings.Repeat("a", 64) + `@b.com"}`)

	var got signup
	err := bind.New(16).JSON(w, r, &got)
	assert.ErrorIs(t, err, bind.ErrBodyTooLarge)
}

func TestStruct(t *testing.T) {
	price := 1.0
	b := bind.New(0)

	assert.NoError(t, b.Struct(signup{Email: "a@b.com", Password: "x", Price: &price}))

	err := b.Struct(signup{Email: "a@b.com", Password: strings.Repeat("x", 73), Price: &price})
	var fe bind.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "must be at most 72 characters long", fe["password"])
	assert.Contains(t, fe.Error(), "password")
}
