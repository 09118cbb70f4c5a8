package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeroom/internal/domain/filter"
	"storeroom/internal/domain/listing"
)

var testSpec = listing.Spec{
	Table:        "orders",
	Columns:      []string{"id", "invoice_no", "total", "month", "year", "created_at"},
	SearchFields: []string{"invoice_no"},
	DefaultSort:  listing.Sort{Field: "created_at", Desc: true},
	SummaryExprs: map[string]string{
		"grandTotal": "SUM(total)",
	},
}

func TestApplyFiltersOperators(t *testing.T) {
	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Equal",
			item:     filter.Eq("month", 3),
			wantSQL:  "SELECT id FROM orders WHERE month = $1",
			wantArgs: []any{3},
		},
		{
			name:     "Greater",
			item:     filter.Item{Field: "total", Operator: filter.Greater, Value: 100},
			wantSQL:  "SELECT id FROM orders WHERE total > $1",
			wantArgs: []any{100},
		},
		{
			name:     "Less",
			item:     filter.Item{Field: "total", Operator: filter.Less, Value: 50},
			wantSQL:  "SELECT id FROM orders WHERE total < $1",
			wantArgs: []any{50},
		},
		{
			name:     "Contains",
			item:     filter.Item{Field: "invoice_no", Operator: filter.Contains, Value: "00"},
			wantSQL:  "SELECT id FROM orders WHERE invoice_no ILIKE $1",
			wantArgs: []any{"%00%"},
		},
		{
			name:    "IsNull",
			item:    filter.Item{Field: "invoice_no", Operator: filter.IsNull},
			wantSQL: "SELECT id FROM orders WHERE invoice_no IS NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Builder().Select("id").From("orders")
			q, err := applyFilters(base, []filter.Item{tt.item})
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestApplyFiltersUnknownOperator(t *testing.T) {
	base := Builder().Select("id").From("orders")
	_, err := applyFilters(base, []filter.Item{{Field: "month", Operator: "between", Value: 1}})
	require.Error(t, err)
}

func TestApplySearchCoversAllSearchFields(t *testing.T) {
	spec := testSpec
	spec.SearchFields = []string{"invoice_no", "phone"}

	b := applySearch(Builder().Select("id").From("orders"), spec, "017")
	sql, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM orders WHERE (invoice_no ILIKE $1 OR phone ILIKE $2)", sql)
	assert.Equal(t, []any{"%017%", "%017%"}, args)
}

// An operator looks up a sale by invoice number or by either party's phone;
// the phones live inside the frozen jsonb snapshots.
func TestOrderSearchReachesSnapshotPhones(t *testing.T) {
	b := applySearch(Builder().Select("id").From(orderSpec.Table), orderSpec, "017")
	sql, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id FROM orders WHERE (invoice_no ILIKE $1 OR customer->>'phone' ILIKE $2 OR salesman->>'phone' ILIKE $3)",
		sql)
	assert.Equal(t, []any{"%017%", "%017%", "%017%"}, args)

	// Returns search the same way.
	assert.Equal(t, orderSpec.SearchFields, returnSpec.SearchFields)
}

func TestApplySearchEmptyIsNoop(t *testing.T) {
	b := applySearch(Builder().Select("id").From("orders"), testSpec, "")
	sql, _, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM orders", sql)
}

func TestOrderByDefaultAndExplicit(t *testing.T) {
	assert.Equal(t, "created_at DESC", orderBy(testSpec, listing.Query{}))

	q := listing.Query{Sort: []listing.Sort{{Field: "year", Desc: true}, {Field: "month"}}}
	assert.Equal(t, "year DESC, month ASC", orderBy(testSpec, q))
}

func TestProjectionDefaultsToSpecColumns(t *testing.T) {
	assert.Equal(t, testSpec.Columns, projection(testSpec, listing.Query{}))
	assert.Equal(t, []string{"id", "total"}, projection(testSpec, listing.Query{Select: []string{"id", "total"}}))
}

// The row query and the summary query must share the identical predicate: a
// month filter narrowing the page also narrows the figures.
func TestRowAndSummaryQueriesSharePredicate(t *testing.T) {
	q := listing.Query{
		Filters: []filter.Item{filter.Eq("month", 3), filter.Eq("year", 2025)},
		Search:  "00",
	}

	build := func(cols []string) (string, []any) {
		b := Builder().Select(cols...).From(testSpec.Table)
		b = applySearch(b, testSpec, q.Search)
		b, err := applyFilters(b, q.Filters)
		require.NoError(t, err)
		sql, args, err := b.ToSql()
		require.NoError(t, err)
		return sql, args
	}

	rowsSQL, rowsArgs := build(testSpec.Columns)
	summarySQL, summaryArgs := build([]string{"COALESCE(SUM(total), 0)"})

	wantWhere := " WHERE (invoice_no ILIKE $1) AND month = $2 AND year = $3"
	assert.Contains(t, rowsSQL, wantWhere)
	assert.Contains(t, summarySQL, wantWhere)

	// The predicates must be identical, not merely both filtered.
	assert.Equal(t, rowsSQL[strings.Index(rowsSQL, " WHERE"):], summarySQL[strings.Index(summarySQL, " WHERE"):])
	assert.Equal(t, rowsArgs, summaryArgs)
}

func TestPaginationOffset(t *testing.T) {
	p := listing.Pagination{PageSize: 20, CurrentPage: 0}
	assert.Equal(t, 0, p.Offset())

	p.CurrentPage = 3
	assert.Equal(t, 60, p.Offset())
}

func TestSpecValidateQueryRejectsUnknownColumns(t *testing.T) {
	err := testSpec.ValidateQuery(listing.Query{Filters: []filter.Item{filter.Eq("password", "x")}})
	require.Error(t, err)

	err = testSpec.ValidateQuery(listing.Query{Sort: []listing.Sort{{Field: "evil"}}})
	require.Error(t, err)

	err = testSpec.ValidateQuery(listing.Query{Select: []string{"secret"}})
	require.Error(t, err)

	err = testSpec.ValidateQuery(listing.Query{
		Filters: []filter.Item{filter.Eq("month", 1)},
		Sort:    []listing.Sort{{Field: "total", Desc: true}},
		Select:  []string{"id", "total"},
	})
	require.NoError(t, err)
}
