package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"storeroom/internal/core/types"
	"storeroom/internal/domain/filter"
	"storeroom/internal/domain/listing"
)

// Builder returns a squirrel builder with PostgreSQL placeholder format.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// List runs the shared list pipeline for one entity: the paged row set, the
// total count and the summary figures, all over the identical predicate.
// The summary is computed only when at least one row matches; an empty set
// yields a nil Summary.
//
// extra carries repo-side predicates (document kind, soft-delete guards)
// that are ANDed in front of the client's filters.
func List[T any](
	ctx context.Context,
	txm *TxManager,
	spec listing.Spec,
	q listing.Query,
	extra ...squirrel.Sqlizer,
) (listing.Result[T], error) {
	var result listing.Result[T]

	if err := spec.ValidateQuery(q); err != nil {
		return result, err
	}

	base := Builder().Select(projection(spec, q)...).From(spec.Table)
	for _, cond := range extra {
		base = base.Where(cond)
	}
	base = applySearch(base, spec, q.Search)

	var err error
	base, err = applyFilters(base, q.Filters)
	if err != nil {
		return result, err
	}

	querier := txm.GetQuerier(ctx)

	// Count over the filtered set, before ordering and pagination.
	countSQL, countArgs, err := Builder().
		Select("COUNT(*)").
		FromSelect(base, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count %s: %w", spec.Table, err)
	}

	rows := base.OrderBy(orderBy(spec, q))
	if q.Page != nil {
		rows = rows.Limit(uint64(q.Page.PageSize)).Offset(uint64(q.Page.Offset()))
	}

	rowsSQL, rowsArgs, err := rows.ToSql()
	if err != nil {
		return result, fmt.Errorf("build list query: %w", err)
	}
	if err := pgxscan.Select(ctx, querier, &result.Rows, rowsSQL, rowsArgs...); err != nil {
		return result, fmt.Errorf("list %s: %w", spec.Table, err)
	}

	if len(spec.SummaryExprs) == 0 || result.TotalCount == 0 {
		return result, nil
	}

	summary, err := querySummary(ctx, querier, spec, q, extra)
	if err != nil {
		return result, err
	}
	result.Summary = summary
	return result, nil
}

// querySummary computes the aggregate figures over the same predicate the
// row query used. The predicate is rebuilt rather than shared so the
// aggregate projection replaces the column list.
func querySummary(
	ctx context.Context,
	querier Querier,
	spec listing.Spec,
	q listing.Query,
	extra []squirrel.Sqlizer,
) (map[string]types.Money, error) {
	names := make([]string, 0, len(spec.SummaryExprs))
	for name := range spec.SummaryExprs {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]string, len(names))
	for i, name := range names {
		cols[i] = fmt.Sprintf("COALESCE(%s, 0)", spec.SummaryExprs[name])
	}

	agg := Builder().Select(cols...).From(spec.Table)
	for _, cond := range extra {
		agg = agg.Where(cond)
	}
	agg = applySearch(agg, spec, q.Search)

	var err error
	agg, err = applyFilters(agg, q.Filters)
	if err != nil {
		return nil, err
	}

	aggSQL, aggArgs, err := agg.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summary query: %w", err)
	}

	values := make([]decimal.Decimal, len(names))
	dests := make([]any, len(names))
	for i := range values {
		dests[i] = &values[i]
	}
	if err := querier.QueryRow(ctx, aggSQL, aggArgs...).Scan(dests...); err != nil {
		return nil, fmt.Errorf("summary %s: %w", spec.Table, err)
	}

	summary := make(map[string]types.Money, len(names))
	for i, name := range names {
		summary[name] = values[i]
	}
	return summary, nil
}

func projection(spec listing.Spec, q listing.Query) []string {
	if len(q.Select) > 0 {
		return q.Select
	}
	return spec.Columns
}

func orderBy(spec listing.Spec, q listing.Query) string {
	keys := q.Sort
	if len(keys) == 0 {
		keys = []listing.Sort{spec.DefaultSort}
	}
	clause := ""
	for i, key := range keys {
		if i > 0 {
			clause += ", "
		}
		clause += key.Field
		if key.Desc {
			clause += " DESC"
		} else {
			clause += " ASC"
		}
	}
	return clause
}

func applySearch(b squirrel.SelectBuilder, spec listing.Spec, search string) squirrel.SelectBuilder {
	if search == "" || len(spec.SearchFields) == 0 {
		return b
	}
	pattern := "%" + search + "%"
	or := make(squirrel.Or, 0, len(spec.SearchFields))
	for _, field := range spec.SearchFields {
		or = append(or, squirrel.ILike{field: pattern})
	}
	return b.Where(or)
}

// applyFilters translates predicate items into squirrel conditions. Fields
// are already allow-listed by Spec.ValidateQuery.
func applyFilters(b squirrel.SelectBuilder, items []filter.Item) (squirrel.SelectBuilder, error) {
	for _, item := range items {
		switch item.Operator {
		case filter.Equal:
			b = b.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotEqual:
			b = b.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.Less:
			b = b.Where(squirrel.Lt{item.Field: item.Value})
		case filter.Greater:
			b = b.Where(squirrel.Gt{item.Field: item.Value})
		case filter.LessOrEqual:
			b = b.Where(squirrel.LtOrEq{item.Field: item.Value})
		case filter.GreaterOrEqual:
			b = b.Where(squirrel.GtOrEq{item.Field: item.Value})
		case filter.InList:
			b = b.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotInList:
			b = b.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.Contains:
			b = b.Where(squirrel.ILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.NotContains:
			b = b.Where(squirrel.NotILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.IsNull:
			b = b.Where(squirrel.Eq{item.Field: nil})
		case filter.IsNotNull:
			b = b.Where(squirrel.NotEq{item.Field: nil})
		default:
			return b, fmt.Errorf("unsupported filter operator: %s", item.Operator)
		}
	}
	return b, nil
}
