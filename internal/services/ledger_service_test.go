package services

import (
	"context"
	"errors"
	"testing"

	"hourly/internal/core"
	"hourly/internal/kvstore/memory"
)

func newLedgerFixture(t *testing.T) (*LedgerService, *memory.Store, context.Context) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	err := store.SaveAll(ctx, map[string]core.User{
		"alice": {Username: "alice", Password: "pw", Expenses: []core.Expense{}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewLedgerService(store), store, ctx
}

func balanceOf(t *testing.T, store *memory.Store, ctx context.Context, username string) int64 {
	t.Helper()
	users, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	return users[username].Balance.Cents
}

func TestCreateExpenseDeductsBalance(t *testing.T) {
	svc, store, ctx := newLedgerFixture(t)

	coffee, err := svc.CreateExpense(ctx, "alice", core.Expense{
		Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 5000}, Description: "Coffee",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if coffee.ID == "" {
		t.Fatalf("expected generated ID")
	}

	_, err = svc.CreateExpense(ctx, "alice", core.Expense{
		Date: core.NewDate(2024, 3, 5), Hour: 13, Amount: core.Money{Cents: 20000}, Description: "Lunch",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if got := balanceOf(t, store, ctx, "alice"); got != -25000 {
		t.Fatalf("balance = %d, want -25000", got)
	}
}

func TestUpdateExpenseAppliesDelta(t *testing.T) {
	svc, store, ctx := newLedgerFixture(t)

	coffee, err := svc.CreateExpense(ctx, "alice", core.Expense{
		Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 5000}, Description: "Coffee",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if _, err := svc.CreateExpense(ctx, "alice", core.Expense{
		Date: core.NewDate(2024, 3, 5), Hour: 13, Amount: core.Money{Cents: 20000}, Description: "Lunch",
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	edited := *coffee
	edited.Amount = core.Money{Cents: 7500}
	if _, err := svc.UpdateExpense(ctx, "alice", edited); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}

	if got := balanceOf(t, store, ctx, "alice"); got != -27500 {
		t.Fatalf("balance = %d, want -27500", got)
	}
}

func TestUpdateExpenseUnknownID(t *testing.T) {
	svc, store, ctx := newLedgerFixture(t)

	_, err := svc.UpdateExpense(ctx, "alice", core.Expense{
		ID: "missing", Date: core.NewDate(2024, 3, 5), Hour: 9,
		Amount: core.Money{Cents: 100}, Description: "Ghost",
	})
	if !errors.Is(err, core.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
	if got := balanceOf(t, store, ctx, "alice"); got != 0 {
		t.Fatalf("balance must be untouched, got %d", got)
	}
}

func TestDeleteExpenseRefundsBalance(t *testing.T) {
	svc, store, ctx := newLedgerFixture(t)

	coffee, err := svc.CreateExpense(ctx, "alice", core.Expense{
		Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 5000}, Description: "Coffee",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if err := svc.DeleteExpense(ctx, "alice", coffee.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}

	if got := balanceOf(t, store, ctx, "alice"); got != 0 {
		t.Fatalf("balance = %d, want 0 after refund", got)
	}
	users, _ := store.LoadAll(ctx)
	if len(users["alice"].Expenses) != 0 {
		t.Fatalf("expense must be removed")
	}
}

func TestDeleteExpenseUnknownID(t *testing.T) {
	svc, store, ctx := newLedgerFixture(t)

	if _, err := svc.CreateExpense(ctx, "alice", core.Expense{
		Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 5000}, Description: "Coffee",
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	err := svc.DeleteExpense(ctx, "alice", "missing")
	if !errors.Is(err, core.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
	if got := balanceOf(t, store, ctx, "alice"); got != -5000 {
		t.Fatalf("failed delete must leave balance unchanged, got %d", got)
	}
	users, _ := store.LoadAll(ctx)
	if len(users["alice"].Expenses) != 1 {
		t.Fatalf("failed delete must leave the collection unchanged")
	}
}

func TestSetBalanceThenDeltas(t *testing.T) {
	svc, store, ctx := newLedgerFixture(t)

	if err := svc.SetBalance(ctx, "alice", core.Money{Cents: 100000}); err != nil {
		t.Fatalf("SetBalance: %v", err)
	}
	if _, err := svc.CreateExpense(ctx, "alice", core.Expense{
		Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 2500}, Description: "Coffee",
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if got := balanceOf(t, store, ctx, "alice"); got != 97500 {
		t.Fatalf("balance = %d, want 97500", got)
	}

	// Negative overrides are fine.
	if err := svc.SetBalance(ctx, "alice", core.Money{Cents: -500}); err != nil {
		t.Fatalf("SetBalance: %v", err)
	}
	if got := balanceOf(t, store, ctx, "alice"); got != -500 {
		t.Fatalf("balance = %d, want -500", got)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	svc, store, ctx := newLedgerFixture(t)

	cases := []core.Expense{
		{Date: core.NewDate(2024, 3, 5), Hour: 24, Amount: core.Money{Cents: 100}, Description: "x"},
		{Date: core.NewDate(2024, 3, 5), Hour: -1, Amount: core.Money{Cents: 100}, Description: "x"},
		{Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 0}, Description: "x"},
		{Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 100}, Description: "   "},
	}
	for i, exp := range cases {
		_, err := svc.CreateExpense(ctx, "alice", exp)
		var verr *core.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
	}

	if got := balanceOf(t, store, ctx, "alice"); got != 0 {
		t.Fatalf("rejected expenses must not touch the balance, got %d", got)
	}
}

func TestMutateUnknownUser(t *testing.T) {
	svc, _, ctx := newLedgerFixture(t)

	_, err := svc.CreateExpense(ctx, "nobody", core.Expense{
		Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 100}, Description: "x",
	})
	if !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
