package earnings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/chordline/backend/internal/apperr"
	"github.com/chordline/backend/internal/domain/earning"
	"github.com/chordline/backend/internal/storage/memory"
)

func TestService_CreateWithSplits(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), "band-1", "user-1", CreateInput{
		TotalAmount: "150",
		Splits: []SplitInput{
			{MemberID: "member-1", Amount: "75.50"},
			{MemberID: "member-2", Amount: "74.50"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %s", created.Currency)
	}
	if created.TotalAmount.StringFixed(2) != "150.00" {
		t.Fatalf("expected exact total 150.00, got %s", created.TotalAmount.StringFixed(2))
	}
	if len(created.Splits) != 2 {
		t.Fatalf("expected 2 splits created atomically, got %d", len(created.Splits))
	}
	for _, sp := range created.Splits {
		if sp.Status != earning.SplitPending {
			t.Fatalf("expected default split status PENDING, got %s", sp.Status)
		}
		if sp.EarningID != created.ID {
			t.Fatalf("expected split bound to earning %s, got %s", created.ID, sp.EarningID)
		}
	}

	splits, err := svc.ListSplits(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("list splits: %v", err)
	}
	if len(splits) != 2 {
		t.Fatalf("expected 2 persisted splits, got %d", len(splits))
	}
}

// Cents survive round trips that would corrupt a binary float.
func TestService_ExactDecimalArithmetic(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), "band-1", "user-1", CreateInput{TotalAmount: "0.1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sum := decimal.Zero
	for i := 0; i < 3; i++ {
		sum = sum.Add(created.TotalAmount)
	}
	if !sum.Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("expected 0.1 added three times to equal 0.3 exactly, got %s", sum)
	}
}

// Split sums are deliberately not reconciled against the total.
func TestService_SplitSumNotReconciled(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.Create(context.Background(), "band-1", "user-1", CreateInput{
		TotalAmount: "100.00",
		Splits: []SplitInput{
			{MemberID: "member-1", Amount: "999.99"},
		},
	})
	if err != nil {
		t.Fatalf("expected mismatched splits accepted, got %v", err)
	}
}

func TestService_AddSplit(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "band-1", "user-1", CreateInput{TotalAmount: "200.00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sp, err := svc.AddSplit(ctx, created.ID, SplitInput{MemberID: "member-1", Amount: "50.00"})
	if err != nil {
		t.Fatalf("add split: %v", err)
	}
	if sp.Status != earning.SplitPending {
		t.Fatalf("expected PENDING, got %s", sp.Status)
	}
	if !sp.Amount.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected amount 50.00, got %s", sp.Amount)
	}
}

func TestService_AddSplitNotFound(t *testing.T) {
	svc := New(memory.New(), nil)

	_, err := svc.AddSplit(context.Background(), "nope", SplitInput{MemberID: "member-1", Amount: "10.00"})
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_Validation(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing total", CreateInput{}},
		{"float garbage", CreateInput{TotalAmount: "1.2.3"}},
		{"bad paidAt", CreateInput{TotalAmount: "10.00", PaidAt: "today"}},
		{"split missing member", CreateInput{TotalAmount: "10.00", Splits: []SplitInput{{Amount: "5.00"}}}},
		{"split bad amount", CreateInput{TotalAmount: "10.00", Splits: []SplitInput{{MemberID: "m", Amount: "x"}}}},
		{"split bad status", CreateInput{TotalAmount: "10.00", Splits: []SplitInput{{MemberID: "m", Amount: "5.00", Status: "REFUNDED"}}}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, "band-1", "user-1", tc.in); !apperr.IsCode(err, apperr.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}
