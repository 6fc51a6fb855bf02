package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"crowdfund/internal/infra"
)

type execCall struct {
	query string
	args  []any
}

type fakeExecutor struct {
	execs     []execCall
	execErr   error
	rows      [][]any
	queries   []execCall
	head      int64
	begins    int
	commits   int
	rollbacks int
}

func (f *fakeExecutor) InTx(_ context.Context, fn func(tx infra.SQLExecutor) error) error {
	f.begins++
	if err := fn(f); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

func (f *fakeExecutor) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeExecutor) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	f.queries = append(f.queries, execCall{query: query, args: args})
	return fakeRow{vals: []any{f.head}}
}

func (f *fakeExecutor) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, execCall{query: query, args: args})
	return &fakeRows{data: f.rows, idx: -1}, nil
}

type fakeRow struct {
	vals []any
}

func (r fakeRow) Scan(dest ...any) error {
	if len(r.vals) == 0 {
		return pgx.ErrNoRows
	}
	return scanInto(r.vals, dest)
}

type fakeRows struct {
	data [][]any
	idx  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(r.data[r.idx], dest)
}

func scanInto(row, dest []any) error {
	if len(row) != len(dest) {
		return fmt.Errorf("scan: %d columns into %d targets", len(row), len(dest))
	}
	for i, v := range row {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(v))
	}
	return nil
}
