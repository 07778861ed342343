package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_NilOptions(t *testing.T) {
	query, args := BuildListQuery(nil)

	assert.Empty(t, query)
	assert.Nil(t, args)
}

func TestBuildListQuery_DefaultsToSelectStar(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("jobs"))

	assert.Equal(t, `SELECT * FROM "jobs"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_ColumnsAndPagination(t *testing.T) {
	options := NewListQueryOptions("jobs",
		WithColumns("id", "title", "status"),
		WithLimit(10),
		WithOffset(20),
	)

	query, args := BuildListQuery(options)

	assert.Equal(t, `SELECT "id", "title", "status" FROM "jobs" LIMIT $1 OFFSET $2`, query)
	assert.Equal(t, []any{10, 20}, args)
}

func TestBuildListQuery_ConditionsNumberParameters(t *testing.T) {
	options := NewListQueryOptions("jobs",
		WithColumns("id", "title"),
		WithCondition(WhereCond("title", ILike, "%engineer%")),
		WithCondition(WhereCond("status", Equal, "live")),
		WithOrderBy("created_at", "desc"),
		WithLimit(50),
		WithOffset(0),
	)

	query, args := BuildListQuery(options)

	assert.Equal(t,
		`SELECT "id", "title" FROM "jobs" WHERE "title" ILIKE $1 AND "status" = $2`+
			` ORDER BY "created_at" DESC LIMIT $3 OFFSET $4`,
		query)
	assert.Equal(t, []any{"%engineer%", "live", 50, 0}, args)
}

func TestBuildListQuery_WithConditionsReplacesList(t *testing.T) {
	options := NewListQueryOptions("blog_posts",
		WithCondition(WhereCond("author", Equal, "someone")),
		WithConditions(WhereCond("category", Equal, "engineering")),
	)

	query, args := BuildListQuery(options)

	assert.Equal(t, `SELECT * FROM "blog_posts" WHERE "category" = $1`, query)
	assert.Equal(t, []any{"engineering"}, args)
}

func TestBuildListQuery_QuotesHostileIdentifiers(t *testing.T) {
	options := NewListQueryOptions("jobs",
		WithColumns(`title";DROP TABLE jobs;--`),
		WithCondition(WhereCond(`status";--`, Equal, "live")),
		WithOrderBy(`created_at";--`, "DESC"),
	)

	query, _ := BuildListQuery(options)

	// Embedded quotes get doubled inside the quoted identifier, so the
	// payload never terminates it.
	assert.Contains(t, query, `"title"";DROP TABLE jobs;--"`)
	assert.Contains(t, query, `WHERE "status"";--" = $1`)
	assert.Contains(t, query, `ORDER BY "created_at"";--" DESC`)
}

func TestBuildListQuery_DropsInvalidOrderDirection(t *testing.T) {
	options := NewListQueryOptions("jobs",
		WithOrderBy("created_at", "desc; DROP TABLE jobs"),
	)

	query, _ := BuildListQuery(options)

	assert.Equal(t, `SELECT * FROM "jobs" ORDER BY "created_at"`, query)
}

func TestBuildListQuery_SkipsMalformedConditions(t *testing.T) {
	options := NewListQueryOptions("jobs",
		WithCondition(WhereCond("", Equal, "x")),
		WithCondition(WhereCond("status", ConditionType("UNION SELECT"), "x")),
		WithCondition(WhereCond("status", Equal, "live")),
	)

	query, args := BuildListQuery(options)

	assert.Equal(t, `SELECT * FROM "jobs" WHERE "status" = $1`, query)
	assert.Equal(t, []any{"live"}, args)
}

func TestBuildListQuery_QualifiedColumns(t *testing.T) {
	options := NewListQueryOptions("jobs",
		WithColumns("jobs.id", "jobs.title"),
		WithOrderBy("jobs.created_at", "ASC"),
	)

	query, _ := BuildListQuery(options)

	assert.Equal(t, `SELECT "jobs"."id", "jobs"."title" FROM "jobs" ORDER BY "jobs"."created_at" ASC`, query)
}

func TestBuildListQuery_ZeroLimitIsExplicit(t *testing.T) {
	options := NewListQueryOptions("jobs", WithLimit(0))

	query, args := BuildListQuery(options)

	assert.Equal(t, `SELECT * FROM "jobs" LIMIT $1`, query)
	assert.Equal(t, []any{0}, args)
}

func TestBuildListQuery_ComparisonOperators(t *testing.T) {
	tests := []struct {
		name string
		cond ConditionType
		want string
	}{
		{"not equal", NotEqual, `"department" != $1`},
		{"greater than", GreaterThan, `"department" > $1`},
		{"less than or equal", LessThanOrEqual, `"department" <= $1`},
		{"like", Like, `"department" LIKE $1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := NewListQueryOptions("jobs",
				WithCondition(WhereCond("department", tt.cond, "Engineering")),
			)

			query, args := BuildListQuery(options)

			assert.Contains(t, query, "WHERE "+tt.want)
			assert.Equal(t, []any{"Engineering"}, args)
		})
	}
}
