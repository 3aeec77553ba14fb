package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/reschool/internal/db"
)

// FailOnNthExec wraps a DBTX and returns Err from the Nth ExecContext
// call, counting from 1. Reads pass through. It lets service tests
// simulate a failed write at a precise point.
type FailOnNthExec struct {
	db.DBTX
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
