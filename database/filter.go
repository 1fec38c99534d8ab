package database

import (
	"fmt"
	"time"

	"github.com/ayala-manuel/rag-containers/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
)

const dateLayout = "2006-01-02"

// queryDateWidening is applied on both sides of date_1 when no date_2 is
// given, so a single date still matches a useful window.
const queryDateWidening = 30 * 24 * time.Hour

// BuildQueryFilter translates query metadata into the vector database's
// native where-filter:
//   - tags: match any of the given tags
//   - date range: inclusive bounds on the normalized date field, in UTC
//     milliseconds (the same canonical form the ingestion path writes)
//
// Returns nil (no filter) when metadata is absent or carries no conditions.
func BuildQueryFilter(metadata *types.QueryMetadata) (*filters.WhereBuilder, error) {
	if metadata == nil {
		return nil, nil
	}

	var conditions []*filters.WhereBuilder

	if len(metadata.Tags) > 0 {
		conditions = append(conditions, filters.Where().
			WithPath([]string{"tags"}).
			WithOperator(filters.ContainsAny).
			WithValueText(metadata.Tags...))
	}

	if metadata.Date1 != "" {
		from, to, err := queryDateRange(metadata.Date1, metadata.Date2)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions,
			filters.Where().
				WithPath([]string{"date"}).
				WithOperator(filters.GreaterThanEqual).
				WithValueInt(from),
			filters.Where().
				WithPath([]string{"date"}).
				WithOperator(filters.LessThanEqual).
				WithValueInt(to))
	}

	switch len(conditions) {
	case 0:
		return nil, nil
	case 1:
		return conditions[0], nil
	default:
		return filters.Where().
			WithOperator(filters.And).
			WithOperands(conditions), nil
	}
}

// queryDateRange resolves the [from, to] bounds in UTC milliseconds. With
// both dates the range runs from the start of date1 through the end of day
// (23:59:59) of date2. With only date1 the range widens to ±30 days around
// it.
func queryDateRange(date1, date2 string) (int64, int64, error) {
	d1, err := time.ParseInLocation(dateLayout, date1, time.UTC)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid date_1 %q", types.ErrInvalidFilter, date1)
	}

	if date2 == "" {
		from := d1.Add(-queryDateWidening)
		to := d1.Add(queryDateWidening)
		return from.UnixMilli(), to.UnixMilli(), nil
	}

	d2, err := time.ParseInLocation(dateLayout, date2, time.UTC)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid date_2 %q", types.ErrInvalidFilter, date2)
	}
	endOfDay := d2.Add(24*time.Hour - time.Second)
	return d1.UnixMilli(), endOfDay.UnixMilli(), nil
}
