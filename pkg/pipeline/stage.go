// Package pipeline composes paginated read queries from an ordered list of
// stages: match, join, derive, project, sort and paginate.
//
// A Pipeline never executes user-supplied SQL. Column expressions come from
// code, user input only reaches the query as bound arguments, and sort
// columns must be looked up through an allow-list before a Sort stage is
// built.
package pipeline

import "strings"

// Stage mutates the query under construction. Stages are applied in order.
type Stage interface {
	apply(q *query)
}

type expr struct {
	sql  string
	args []interface{}
}

type query struct {
	joins   []expr
	wheres  []expr
	selects []expr
	orders  []string
	offset  int
	limit   int
}

// counts reports whether the stage takes part in the total count query.
// Only match and join stages shape the set of matching entities.
type counted interface {
	counts() bool
}

type matchStage struct{ e expr }

// Match filters rows. cond is an SQL boolean expression, args are bound.
func Match(cond string, args ...interface{}) Stage {
	return matchStage{e: expr{sql: cond, args: args}}
}

func (s matchStage) apply(q *query) { q.wheres = append(q.wheres, s.e) }
func (matchStage) counts() bool     { return true }

type joinStage struct{ e expr }

// Join resolves a reference, e.g. "JOIN users AS u ON u.id = v.owner_id".
// An inner join drops rows whose reference can not be resolved.
func Join(clause string, args ...interface{}) Stage {
	return joinStage{e: expr{sql: clause, args: args}}
}

func (s joinStage) apply(q *query) { q.joins = append(q.joins, s.e) }
func (joinStage) counts() bool     { return true }

// Field is one projected output column.
type Field struct {
	Expr  string
	Alias string
}

// Col projects column expr under alias.
func Col(expr, alias string) Field {
	return Field{Expr: expr, Alias: alias}
}

type projectStage struct{ fields []Field }

// Project whitelists the output columns. Anything not listed here or added by
// a Derive stage is not selected.
func Project(fields ...Field) Stage {
	return projectStage{fields: fields}
}

func (s projectStage) apply(q *query) {
	for _, f := range s.fields {
		q.selects = append(q.selects, expr{sql: f.Expr + " AS " + f.Alias})
	}
}

type deriveStage struct {
	alias string
	e     expr
}

// Derive adds a computed column, typically a correlated sub-select.
func Derive(alias, sql string, args ...interface{}) Stage {
	return deriveStage{alias: alias, e: expr{sql: sql, args: args}}
}

func (s deriveStage) apply(q *query) {
	q.selects = append(q.selects, expr{sql: "(" + s.e.sql + ") AS " + s.alias, args: s.e.args})
}

// CountOf derives the number of rows of table matching cond.
func CountOf(alias, table, cond string, args ...interface{}) Stage {
	return Derive(alias, "SELECT COUNT(*) FROM "+table+" WHERE "+cond, args...)
}

// ExistsIn derives a boolean flag telling whether any row of table matches cond.
func ExistsIn(alias, table, cond string, args ...interface{}) Stage {
	return Derive(alias, "CASE WHEN EXISTS (SELECT 1 FROM "+table+" WHERE "+cond+") THEN 1 ELSE 0 END", args...)
}

type sortStage struct{ orders []string }

// Sort orders by column. column must come from code or an allow-list lookup.
func Sort(column string, desc bool) Stage {
	return sortStage{orders: []string{orderBy(column, desc)}}
}

func (s sortStage) apply(q *query) { q.orders = append(q.orders, s.orders...) }

func orderBy(column string, desc bool) string {
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

type paginateStage struct{ page Page }

// Paginate skips (page-1)*limit rows and takes limit.
func Paginate(page Page) Stage {
	return paginateStage{page: page}
}

func (s paginateStage) apply(q *query) {
	q.offset = s.page.Offset()
	q.limit = s.page.Limit
}

func joinSelects(selects []expr) (string, []interface{}) {
	parts := make([]string, 0, len(selects))
	args := make([]interface{}, 0)
	for _, s := range selects {
		parts = append(parts, s.sql)
		args = append(args, s.args...)
	}
	return strings.Join(parts, ", "), args
}
