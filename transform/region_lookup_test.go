package transform

import (
	"testing"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionLookupResolve(t *testing.T) {
	lookup := NewRegionLookup([]models.RegionRecord{
		{Region: " north ", State: "CA", City: "LA", Zipcode: "90001"},
		{Region: "south", State: "tx ", City: " houston", Zipcode: "77001"},
	})

	// Поиск нечувствителен к регистру и окружающим пробелам
	region, ok := lookup.Resolve("la", "ca")
	require.True(t, ok)
	assert.Equal(t, "north", region)

	region, ok = lookup.Resolve("  Houston ", "TX")
	require.True(t, ok)
	assert.Equal(t, "south", region)

	// Отсутствующая пара — промах, а не ошибка
	region, ok = lookup.Resolve("miami", "fl")
	assert.False(t, ok)
	assert.Empty(t, region)

	misses := lookup.Misses()
	require.Len(t, misses, 1)
	assert.Equal(t, RegionMiss{City: "miami", State: "fl"}, misses[0])
}

func TestRegionLookupFirstEntryWins(t *testing.T) {
	lookup := NewRegionLookup([]models.RegionRecord{
		{Region: "north", State: "ca", City: "la"},
		{Region: "west", State: "ca", City: "la"},
	})

	region, ok := lookup.Resolve("la", "ca")
	require.True(t, ok)
	assert.Equal(t, "north", region)
}
