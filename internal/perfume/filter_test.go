package perfume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var shopSet = []Perfume{
	{ID: "1", Name: "Nuit Mystérieuse", Category: "Oriental", Description: "Smoldering amber and spice"},
	{ID: "2", Name: "Jardin Secret", Category: "Fresh", Description: "Crisp green leaves"},
	{ID: "3", Name: "Rose Éternelle", Category: "Floral", Description: "A timeless rose"},
	{ID: "4", Name: "Bois d'Automne", Category: "Woody", Description: "Warm sandalwood and amber"},
}

func TestFilter(t *testing.T) {
	t.Run("wildcard category matches everything", func(t *testing.T) {
		assert.Len(t, Filter(shopSet, CategoryAll, ""), len(shopSet))
		assert.Len(t, Filter(shopSet, "", ""), len(shopSet))
	})

	t.Run("category equality", func(t *testing.T) {
		got := Filter(shopSet, "Floral", "")
		assert.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		got := Filter(shopSet, CategoryAll, "JARDIN")
		assert.Len(t, got, 1)
		assert.Equal(t, "2", got[0].ID)
	})

	t.Run("search matches description", func(t *testing.T) {
		got := Filter(shopSet, CategoryAll, "amber")
		assert.Len(t, got, 2)
	})

	t.Run("category and search intersect", func(t *testing.T) {
		got := Filter(shopSet, "Woody", "amber")
		assert.Len(t, got, 1)
		assert.Equal(t, "4", got[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Filter(shopSet, "Fresh", "amber"))
	})
}

func TestFilterIdempotent(t *testing.T) {
	once := Filter(shopSet, "Oriental", "spice")
	twice := Filter(once, "Oriental", "spice")
	assert.Equal(t, once, twice)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	original := make([]Perfume, len(shopSet))
	copy(original, shopSet)

	Filter(shopSet, "Floral", "rose")

	assert.Equal(t, original, shopSet)
}
