package catalog

import (
	"encoding/json/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
)

func writeCatalogFile(t *testing.T, dir, name string, camps []domain.Camp) {
	t.Helper()
	data, err := json.Marshal(camps)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func testCamps() []domain.Camp {
	return []domain.Camp{
		{ID: "cmp-1", Name: "Forest Rangers", Category: "Nature", MinAge: 6, MaxAge: 12, MinPrice: 350},
		{ID: "cmp-2", Name: "Robotics Lab", Category: "STEM", MinAge: 9, MaxAge: 14, MinPrice: 550},
		{ID: "cmp-3", Name: "Art & Craft Studio", Category: "Arts & Crafts", MinAge: 5, MaxAge: 10, MinPrice: 300},
	}
}

func newTestCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	dir := t.TempDir()
	writeCatalogFile(t, dir, "camps.json", testCamps())

	c, err := New(dir, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, dir
}

func TestLoadAndGet(t *testing.T) {
	c, _ := newTestCatalog(t)

	assert.Equal(t, 3, c.Len())

	camp, err := c.Get("cmp-2")
	require.NoError(t, err)
	assert.Equal(t, "Robotics Lab", camp.Name)

	_, err = c.Get("cmp-missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestAllSortedByName(t *testing.T) {
	c, _ := newTestCatalog(t)

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Art & Craft Studio", all[0].Name)
	assert.Equal(t, "Forest Rangers", all[1].Name)
	assert.Equal(t, "Robotics Lab", all[2].Name)
}

func TestMissingDirectoryIsEmptyCatalog(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "nope"), nil, nil)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 0, c.Len())
}

func TestMalformedFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "good.json", testCamps()[:1])
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	c, err := New(dir, nil, nil)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 1, c.Len())
}

func TestSearchByName(t *testing.T) {
	c, _ := newTestCatalog(t)

	hits, err := c.Search(t.Context(), SearchParams{Query: "robotics"})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "cmp-2", hits[0].ID)
}

func TestSearchWithAgeFilter(t *testing.T) {
	c, _ := newTestCatalog(t)

	// A five year old fits only the art studio.
	hits, err := c.Search(t.Context(), SearchParams{Age: 5})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "cmp-3", hits[0].ID)
}

func TestSearchWithPriceFilter(t *testing.T) {
	c, _ := newTestCatalog(t)

	hits, err := c.Search(t.Context(), SearchParams{MaxPrice: 400})
	require.NoError(t, err)

	var ids []string
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	assert.ElementsMatch(t, []string{"cmp-1", "cmp-3"}, ids)
}

func TestSearchCategoryNormalization(t *testing.T) {
	c, _ := newTestCatalog(t)

	hits, err := c.Search(t.Context(), SearchParams{Category: "arts-crafts"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "cmp-3", hits[0].ID)
}

func TestReloadPicksUpNewCamps(t *testing.T) {
	c, dir := newTestCatalog(t)

	writeCatalogFile(t, dir, "more.json", []domain.Camp{
		{ID: "cmp-4", Name: "Swim School", Category: "Sports", MinAge: 4, MaxAge: 12, MinPrice: 250},
	})
	require.NoError(t, c.Reload())

	assert.Equal(t, 4, c.Len())
	camp, err := c.Get("cmp-4")
	require.NoError(t, err)
	assert.Equal(t, "Swim School", camp.Name)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "arts-crafts", normalizeCategory("Arts & Crafts"))
	assert.Equal(t, "stem", normalizeCategory("STEM"))
	assert.Equal(t, "nature", normalizeCategory("  Nature  "))
}
