package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/nexus/app/models"
)

func TestParseProductID(t *testing.T) {
	id := models.NewProductID()

	parsed, err := models.ParseProductID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Len(t, parsed.String(), 24)
}

func TestParseProductID_Invalid(t *testing.T) {
	for _, raw := range []string{
		"not-an-id",
		"",
		"65f0c0ffee",                 // too short
		"65f0c0ffee65f0c0ffee65zz",   // not hex
		"65f0c0ffee65f0c0ffee65f0c0", // too long
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := models.ParseProductID(raw)
			assert.ErrorIs(t, err, models.ErrInvalidIdentifier)
		})
	}
}

func TestProductID_JSON(t *testing.T) {
	p := models.Product{ID: models.NewProductID(), Title: "Mug", Attributes: models.Attributes{}}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, p.ID.String(), wire["_id"])

	var back models.Product
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p.ID, back.ID)

	err = json.Unmarshal([]byte(`{"_id":"nope"}`), &back)
	assert.ErrorIs(t, err, models.ErrInvalidIdentifier)
}

func TestProductID_BSONRejectsForeignIDs(t *testing.T) {
	data, err := bson.Marshal(bson.D{
		{Key: "_id", Value: "legacy-sku-1"},
		{Key: "title", Value: "Mug"},
	})
	require.NoError(t, err)

	var out models.Product
	err = bson.Unmarshal(data, &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInvalidIdentifier, "stored data is not client input")
}

func TestNewProduct_DefaultsAttributes(t *testing.T) {
	p := models.NewProduct(models.ProductInput{Title: "Mug", Price: 9.5})

	assert.True(t, p.ID.IsZero())
	assert.NotNil(t, p.Attributes)
	assert.Equal(t, 0, p.Stock)
}

func TestProduct_NormalizeFillsMissingAttributes(t *testing.T) {
	data, err := bson.Marshal(bson.D{
		{Key: "_id", Value: models.NewProductID()},
		{Key: "title", Value: "Mug"},
	})
	require.NoError(t, err)

	var p models.Product
	require.NoError(t, bson.Unmarshal(data, &p))
	p.Normalize()
	assert.NotNil(t, p.Attributes)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"attributes":{}`)

	p.Attributes = models.Attributes{"ram": models.StringValue("8GB")}
	p.Normalize()
	assert.Len(t, p.Attributes, 1)
}
