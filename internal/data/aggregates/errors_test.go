package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/shopcore-backend/internal/domain"
	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{
			name: "validation_sentinel",
			err:  ValidationError("bad input"),
			want: domainagg.CodeValidation,
		},
		{
			name: "invariant_sentinel",
			err:  InvariantError("rule broken"),
			want: domainagg.CodeInvariantViolation,
		},
		{
			name: "insufficient_stock",
			err:  domain.ErrInsufficientStock,
			want: domainagg.CodeInvariantViolation,
		},
		{
			name: "already_delivered",
			err:  domain.ErrAlreadyDelivered,
			want: domainagg.CodeInvariantViolation,
		},
		{
			name: "conflict_sentinel",
			err:  ConflictError("cas lost"),
			want: domainagg.CodeConflict,
		},
		{
			name: "record_not_found",
			err:  gorm.ErrRecordNotFound,
			want: domainagg.CodeNotFound,
		},
		{
			name: "context_cancelled",
			err:  context.Canceled,
			want: domainagg.CodeRetryable,
		},
		{
			name: "pg_unique_violation",
			err:  &pgconn.PgError{Code: "23505"},
			want: domainagg.CodeConflict,
		},
		{
			name: "pg_foreign_key_violation",
			err:  &pgconn.PgError{Code: "23503"},
			want: domainagg.CodePreconditionFailed,
		},
		{
			name: "pg_deadlock",
			err:  &pgconn.PgError{Code: "40P01"},
			want: domainagg.CodeRetryable,
		},
		{
			name: "unknown_internal",
			err:  errors.New("boom"),
			want: domainagg.CodeInternal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError("test.op", tc.err)
			if got := domainagg.CodeOf(mapped); got != tc.want {
				t.Fatalf("MapError code=%q, want %q (err=%v)", got, tc.want, mapped)
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	if err := MapError("test.op", nil); err != nil {
		t.Fatalf("MapError(nil)=%v, want nil", err)
	}
}

func TestMapErrorPassesThroughTypedErrors(t *testing.T) {
	orig := domainagg.NewError(domainagg.CodeNotFound, "test.op", "missing", nil)
	mapped := MapError("other.op", orig)
	if mapped != orig {
		t.Fatalf("typed error should pass through unchanged, got %v", mapped)
	}
}

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "ignored"); err != nil {
		t.Fatalf("successful CAS should return nil, got %v", err)
	}
	err := RequireCASSuccess(false, "order already cancelled")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("failed CAS err=%v, want ErrConflict", err)
	}
}

func TestRequireStatusAllowed(t *testing.T) {
	if err := RequireStatusAllowed("placed", "placed", "pending"); err != nil {
		t.Fatalf("allowed status rejected: %v", err)
	}
	if err := RequireStatusAllowed("cancelled", "placed"); !errors.Is(err, ErrConflict) {
		t.Fatalf("disallowed status err=%v, want ErrConflict", err)
	}
}
