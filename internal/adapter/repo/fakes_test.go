package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"charityfund/internal/infra"
)

type execCall struct {
	query string
	args  []any
}

// fakeSQL records Exec calls and answers them from tags, in order.
type fakeSQL struct {
	tags      []pgconn.CommandTag
	execErr   error
	calls     []execCall
	rows      [][]any
	row       []any
	rowErr    error
	txBegun   int
	txRolled  int
	txCommits int
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if len(f.tags) == 0 {
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	tag := f.tags[0]
	f.tags = f.tags[1:]
	return tag, nil
}

func (f *fakeSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{values: f.row, err: f.rowErr}
}

func (f *fakeSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return &fakeRows{rows: f.rows}, nil
}

func (f *fakeSQL) InTx(_ context.Context, fn func(tx infra.SQLExecutor) error) error {
	f.txBegun++
	if err := fn(f); err != nil {
		f.txRolled++
		return err
	}
	f.txCommits++
	return nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.values == nil {
		return pgx.ErrNoRows
	}
	return assign(r.values, dest)
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return pgx.ErrNoRows
	}
	return assign(r.rows[r.idx-1], dest)
}

func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) Close()                                       {}
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("unexpected scan args: got %d want %d", len(dest), len(values))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *string:
			*d = v.(string)
		case *bool:
			*d = v.(bool)
		case *time.Time:
			*d = v.(time.Time)
		case **string:
			if v == nil {
				*d = nil
			} else {
				s := v.(string)
				*d = &s
			}
		case **time.Time:
			if v == nil {
				*d = nil
			} else {
				t := v.(time.Time)
				*d = &t
			}
		default:
			return fmt.Errorf("unsupported scan target %T", dest[i])
		}
	}
	return nil
}
