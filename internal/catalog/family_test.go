package catalog

import (
	"testing"

	"catalog-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"iphone", "android", "accessory", "product"} {
		fam, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, fam.Name)
		assert.NotEmpty(t, fam.Collection)
		assert.NotEmpty(t, fam.PluralPathName)
	}

	_, ok := ByName("tablet")
	assert.False(t, ok)
}

func TestValidateAttributes(t *testing.T) {
	fam, _ := ByName("accessory")

	err := fam.ValidateAttributes(map[string]interface{}{
		"name":          "Leather Case",
		"type":          "case",
		"releaseYear":   "2022",
		"compatibility": "iPhone 13",
	})
	assert.NoError(t, err)

	err = fam.ValidateAttributes(map[string]interface{}{
		"name":        "Leather Case",
		"releaseYear": "2022",
	})
	require.Error(t, err)
	assert.Equal(t, "type is required", err.Error())

	// empty string counts as missing
	err = fam.ValidateAttributes(map[string]interface{}{
		"name":          "",
		"type":          "case",
		"releaseYear":   "2022",
		"compatibility": "iPhone 13",
	})
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())
}

func TestValidateVariantCheckOrder(t *testing.T) {
	fam, _ := ByName("iphone")
	qty := 3

	// Everything missing: color is checked first.
	err := fam.ValidateVariant(models.VariantInput{})
	require.Error(t, err)
	assert.Equal(t, "color is required", err.Error())

	// storage comes before batteryHealth even though both are missing
	err = fam.ValidateVariant(models.VariantInput{
		Color:         "Black",
		Price:         "800",
		OriginalPrice: "1000",
		Quantity:      &qty,
	})
	require.Error(t, err)
	assert.Equal(t, "storage is required", err.Error())

	err = fam.ValidateVariant(models.VariantInput{
		Color:         "Black",
		Storage:       "128GB",
		Price:         "800",
		OriginalPrice: "1000",
		Quantity:      &qty,
		BatteryHealth: "95%",
	})
	assert.NoError(t, err)
}

func TestValidateVariantQuantityPresence(t *testing.T) {
	fam, _ := ByName("product")
	zero := 0

	err := fam.ValidateVariant(models.VariantInput{
		Color: "Red",
		Price: "50",
	})
	require.Error(t, err)
	assert.Equal(t, "quantity is required", err.Error())

	// explicit zero is present, not missing
	err = fam.ValidateVariant(models.VariantInput{
		Color:    "Red",
		Price:    "50",
		Quantity: &zero,
	})
	assert.NoError(t, err)
}

func TestFamiliesAreDistinctByCollection(t *testing.T) {
	seen := make(map[string]bool)
	for _, fam := range Families() {
		assert.False(t, seen[fam.Collection], fam.Collection)
		seen[fam.Collection] = true
	}
}
