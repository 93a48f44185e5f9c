package pipeline

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoProjection = errors.New("pipeline: no projected fields")

// Pipeline is an ordered list of stages over a base table.
type Pipeline struct {
	from   string
	stages []Stage
}

// New starts a pipeline reading from the given table expression, e.g. "videos AS v".
func New(from string, stages ...Stage) *Pipeline {
	return &Pipeline{from: from, stages: stages}
}

// Then appends stages and returns the pipeline.
func (p *Pipeline) Then(stages ...Stage) *Pipeline {
	p.stages = append(p.stages, stages...)
	return p
}

func (p *Pipeline) build(counting bool) *query {
	q := &query{}
	for _, s := range p.stages {
		if counting {
			if c, ok := s.(counted); !ok || !c.counts() {
				continue
			}
		}
		s.apply(q)
	}
	return q
}

func (p *Pipeline) base(ctx context.Context, db *gorm.DB, q *query) *gorm.DB {
	tx := db.WithContext(ctx).Table(p.from)
	for _, j := range q.joins {
		tx = tx.Joins(j.sql, j.args...)
	}
	for _, w := range q.wheres {
		tx = tx.Where(w.sql, w.args...)
	}
	return tx
}

func (p *Pipeline) query(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	q := p.build(false)
	if len(q.selects) == 0 {
		return nil, ErrNoProjection
	}
	tx := p.base(ctx, db, q)
	sql, args := joinSelects(q.selects)
	tx = tx.Clauses(clause.Select{Expression: clause.Expr{SQL: sql, Vars: args}})
	for _, o := range q.orders {
		tx = tx.Order(o)
	}
	if q.limit > 0 {
		tx = tx.Offset(q.offset).Limit(q.limit)
	}
	return tx, nil
}

// Run executes the pipeline and scans the rows into dest, a pointer to a
// slice of read models.
func (p *Pipeline) Run(ctx context.Context, db *gorm.DB, dest interface{}) error {
	tx, err := p.query(ctx, db)
	if err != nil {
		return err
	}
	return tx.Scan(dest).Error
}

// RunOne scans the first row into dest and reports whether a row was found.
func (p *Pipeline) RunOne(ctx context.Context, db *gorm.DB, dest interface{}) (bool, error) {
	tx, err := p.query(ctx, db)
	if err != nil {
		return false, err
	}
	res := tx.Limit(1).Scan(dest)
	return res.RowsAffected > 0, res.Error
}

// Count returns the number of entities matched by the match and join stages,
// independent of the pagination window.
func (p *Pipeline) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := p.base(ctx, db, p.build(true)).Count(&total).Error
	return total, err
}
