package services

import (
	"context"
	"fmt"
	"log/slog"

	"hourly/internal/core"
	"hourly/internal/kvstore"
	"hourly/internal/log"

	"github.com/google/uuid"
)

// LedgerService owns the expense CRUD lifecycle for a user and the
// reconciliation rule keeping the stored balance in step with expense
// mutations. Every mutation follows the same discipline: load the full
// collection, apply the change in memory, write the full collection back.
// Nothing is batched or deferred; persistence failure means the mutation
// did not happen.
type LedgerService struct {
	store kvstore.Store
}

func NewLedgerService(store kvstore.Store) *LedgerService {
	return &LedgerService{store: store}
}

// CreateExpense validates the input, assigns a unique id, appends the
// expense and subtracts its amount from the balance.
func (s *LedgerService) CreateExpense(ctx context.Context, username string, e core.Expense) (*core.Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.ID = uuid.NewString()

	err := s.mutate(ctx, username, func(user *core.User) error {
		user.Expenses = append(user.Expenses, e)
		user.Balance = user.Balance.Sub(e.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := log.NewFields().
		WithComponent(log.ComponentLedger).
		WithOperation(log.OpCreate).
		WithUsername(username).
		WithExpense(e.ID, e.Description, e.Amount.Cents).
		ToSlice()
	fields = append(fields, log.FieldDate, e.Date.String(), log.FieldHour, e.Hour)

	slog.InfoContext(ctx, "Expense created", fields...)
	return &e, nil
}

// UpdateExpense replaces the fields of the expense with the given id. The
// balance moves by exactly the change in amount; date, hour, description
// and notes edits have no balance effect. A missing id is
// ErrExpenseNotFound, never a silent insert.
func (s *LedgerService) UpdateExpense(ctx context.Context, username string, e core.Expense) (*core.Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, username, func(user *core.User) error {
		idx := user.FindExpense(e.ID)
		if idx < 0 {
			return core.ErrExpenseNotFound
		}
		delta := e.Amount.Sub(user.Expenses[idx].Amount)
		user.Expenses[idx] = e
		user.Balance = user.Balance.Sub(delta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := log.NewFields().
		WithComponent(log.ComponentLedger).
		WithOperation(log.OpUpdate).
		WithUsername(username).
		WithExpense(e.ID, e.Description, e.Amount.Cents)

	slog.InfoContext(ctx, "Expense updated", fields.ToSlice()...)
	return &e, nil
}

// DeleteExpense removes the expense with the given id and adds its amount
// back to the balance. A missing id is ErrExpenseNotFound and leaves both
// the collection and the balance untouched.
func (s *LedgerService) DeleteExpense(ctx context.Context, username, id string) error {
	err := s.mutate(ctx, username, func(user *core.User) error {
		idx := user.FindExpense(id)
		if idx < 0 {
			return core.ErrExpenseNotFound
		}
		user.Balance = user.Balance.Add(user.Expenses[idx].Amount)
		user.Expenses = append(user.Expenses[:idx], user.Expenses[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	fields := log.NewFields().
		WithComponent(log.ComponentLedger).
		WithOperation(log.OpDelete).
		WithUsername(username).
		ToSlice()
	fields = append(fields, log.FieldExpenseID, id)

	slog.InfoContext(ctx, "Expense deleted", fields...)
	return nil
}

// SetBalance overrides the balance with an arbitrary caller-supplied value,
// bypassing reconciliation. Later expense mutations apply their deltas on
// top of whatever value is current.
func (s *LedgerService) SetBalance(ctx context.Context, username string, balance core.Money) error {
	err := s.mutate(ctx, username, func(user *core.User) error {
		user.Balance = balance
		return nil
	})
	if err != nil {
		return err
	}

	fields := log.NewFields().
		WithComponent(log.ComponentLedger).
		WithOperation(log.OpUpdate).
		WithUsername(username).
		ToSlice()
	fields = append(fields, log.FieldAmountCents, balance.Cents)

	slog.InfoContext(ctx, "Balance overridden", fields...)
	return nil
}

// mutate runs the read-entire / change / write-entire cycle for one user.
func (s *LedgerService) mutate(ctx context.Context, username string, fn func(*core.User) error) error {
	users, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	user, ok := users[username]
	if !ok {
		return core.ErrUserNotFound
	}

	if err := fn(&user); err != nil {
		return err
	}

	users[username] = user
	if err := s.store.SaveAll(ctx, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
