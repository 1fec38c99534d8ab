package database

import (
	"testing"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryFilterNoInput(t *testing.T) {
	where, err := BuildQueryFilter(nil)
	require.NoError(t, err)
	assert.Nil(t, where)

	where, err = BuildQueryFilter(&types.QueryMetadata{})
	require.NoError(t, err)
	assert.Nil(t, where)
}

func TestBuildQueryFilterTagsOnly(t *testing.T) {
	where, err := BuildQueryFilter(&types.QueryMetadata{Tags: []string{"a", "b"}})
	require.NoError(t, err)
	assert.NotNil(t, where)
}

func TestBuildQueryFilterTagsAndDates(t *testing.T) {
	where, err := BuildQueryFilter(&types.QueryMetadata{
		Tags:  []string{"a"},
		Date1: "2024-01-01",
		Date2: "2024-01-10",
	})
	require.NoError(t, err)
	assert.NotNil(t, where)
}

func TestBuildQueryFilterInvalidDate(t *testing.T) {
	_, err := BuildQueryFilter(&types.QueryMetadata{Date1: "01/15/2024"})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)

	_, err = BuildQueryFilter(&types.QueryMetadata{Date1: "2024-01-15", Date2: "soon"})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestQueryDateRangeSingleDateWidens(t *testing.T) {
	from, to, err := queryDateRange("2024-01-15", "")
	require.NoError(t, err)

	// 2024-01-15T00:00:00Z is 1705276800000 ms; the window is ±30 days.
	assert.Equal(t, int64(1705276800000-30*86400000), from)
	assert.Equal(t, int64(1705276800000+30*86400000), to)
	assert.Equal(t, int64(60*86400000), to-from)
}

func TestQueryDateRangeBothDates(t *testing.T) {
	from, to, err := queryDateRange("2024-01-01", "2024-01-10")
	require.NoError(t, err)

	// 2024-01-01T00:00:00Z through 2024-01-10T23:59:59Z, both inclusive.
	assert.Equal(t, int64(1704067200000), from)
	assert.Equal(t, int64(1704931199000), to)
}
