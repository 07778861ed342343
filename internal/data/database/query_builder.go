// Package database builds parameterized list queries for repositories
// that need dynamic filtering and sorting. Identifiers are sanitized
// before they reach SQL; values always travel as bind parameters.
package database

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ConditionType is the comparison operator of a WHERE condition.
type ConditionType string

const (
	Equal              ConditionType = "="
	NotEqual           ConditionType = "!="
	GreaterThan        ConditionType = ">"
	LessThan           ConditionType = "<"
	LessThanOrEqual    ConditionType = "<="
	GreaterThanOrEqual ConditionType = ">="
	Like               ConditionType = "LIKE"
	ILike              ConditionType = "ILIKE"
)

const (
	limitUnset  = -1
	offsetUnset = -1
)

// Condition is a single column comparison in a WHERE clause.
type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

// WhereCond builds a condition comparing a column against a value.
func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// ListQueryOptions describes one SELECT over a single table.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

// ListQueryOption mutates ListQueryOptions during construction.
type ListQueryOption func(*ListQueryOptions)

// NewListQueryOptions builds options for a list query over table.
func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:      table,
		Columns:    []string{},
		Conditions: []Condition{},
		Limit:      limitUnset,
		Offset:     offsetUnset,
	}

	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select. Empty means SELECT *.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition appends a single WHERE condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithConditions replaces the full list of conditions.
func WithConditions(conds ...Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = conds
	}
}

// WithOrderBy sets the ordering column and direction. Directions other
// than ASC or DESC are dropped.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// sanitizeIdentifier quotes a single identifier.
func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// sanitizeQualifiedIdentifier quotes identifiers like "column" or
// "table.column", splitting on '.' so each part gets quoted.
func sanitizeQualifiedIdentifier(ident string) string {
	parts := strings.Split(ident, ".")
	return pgx.Identifier(parts).Sanitize()
}

// BuildListQuery constructs a SQL query string and bind arguments from
// options.
//
// Example usage:
//
//	options := NewListQueryOptions("jobs",
//		WithColumns("id", "title", "status"),
//		WithCondition(WhereCond("title", ILike, "%engineer%")),
//		WithCondition(WhereCond("status", Equal, "live")),
//		WithOrderBy("created_at", "DESC"),
//		WithLimit(10),
//		WithOffset(0),
//	)
//
//	query, args := BuildListQuery(options)
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder

	query.WriteString(buildSelectClause(options))
	query.WriteString("FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	whereClause, whereArgs, nextParamCount := buildWhereClause(options.Conditions, 1)
	if whereClause != "" {
		query.WriteString(" ")
		query.WriteString(whereClause)
	}

	paginationOrderClause, finalArgs := buildPaginationAndOrderClause(
		options,
		nextParamCount,
		whereArgs,
	)
	if paginationOrderClause != "" {
		query.WriteString(paginationOrderClause)
	}

	return query.String(), finalArgs
}

// buildSelectClause generates the SELECT part with sanitized columns.
func buildSelectClause(options *ListQueryOptions) string {
	if len(options.Columns) == 0 {
		return "SELECT * "
	}

	sanitized := make([]string, len(options.Columns))
	for i, col := range options.Columns {
		sanitized[i] = sanitizeQualifiedIdentifier(col)
	}
	return fmt.Sprintf("SELECT %s ", strings.Join(sanitized, ", "))
}

// buildWhereClause generates the WHERE part, sanitizing fields and
// numbering bind parameters from startParamIndex. Conditions with an
// empty field or an unknown operator are skipped.
func buildWhereClause(inputConditions []Condition, startParamIndex int) (string, []any, int) {
	conditions := make([]string, 0, len(inputConditions))
	args := make([]any, 0, len(inputConditions))
	paramCount := startParamIndex

	for _, cond := range inputConditions {
		if cond.Field == "" || !validConditionType(cond.Type) {
			continue
		}
		conditions = append(conditions,
			fmt.Sprintf("%s %s $%d", sanitizeIdentifier(cond.Field), cond.Type, paramCount))
		args = append(args, cond.Value)
		paramCount++
	}

	if len(conditions) == 0 {
		return "", args, paramCount
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, paramCount
}

func validConditionType(t ConditionType) bool {
	switch t {
	case Equal, NotEqual, GreaterThan, LessThan, LessThanOrEqual, GreaterThanOrEqual, Like, ILike:
		return true
	}
	return false
}

// buildPaginationAndOrderClause generates ORDER BY, LIMIT, and OFFSET
// with a sanitized order column and a validated direction.
func buildPaginationAndOrderClause(
	options *ListQueryOptions,
	startParamIndex int,
	initialArgs []any,
) (string, []any) {
	var clause strings.Builder
	args := initialArgs
	paramCount := startParamIndex

	if options.OrderBy != "" {
		clause.WriteString(" ORDER BY ")
		clause.WriteString(sanitizeQualifiedIdentifier(options.OrderBy))
		upperOrderDir := strings.ToUpper(options.OrderDir)
		if upperOrderDir == "ASC" || upperOrderDir == "DESC" {
			clause.WriteString(" ")
			clause.WriteString(upperOrderDir)
		}
	}

	if options.Limit != limitUnset {
		clause.WriteString(fmt.Sprintf(" LIMIT $%d", paramCount))
		args = append(args, options.Limit)
		paramCount++
	}

	if options.Offset != offsetUnset {
		clause.WriteString(fmt.Sprintf(" OFFSET $%d", paramCount))
		args = append(args, options.Offset)
	}

	return clause.String(), args
}
