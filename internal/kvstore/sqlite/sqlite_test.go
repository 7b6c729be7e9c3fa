package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"hourly/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	store, err := New(filepath.Join(s.T().TempDir(), "hourly.db"))
	require.NoError(s.T(), err, "failed to open test database")
	s.store = store
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoreTestSuite) TestLoadAllEmpty() {
	users, err := s.store.LoadAll(s.ctx)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), users)
}

func (s *StoreTestSuite) TestSaveAllRoundTrip() {
	users := map[string]core.User{
		"alice": {
			Username: "alice",
			Password: "secret",
			Balance:  core.Money{Cents: -500},
			Expenses: []core.Expense{
				{ID: "e1", Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 5000}, Description: "Coffee"},
			},
		},
	}
	require.NoError(s.T(), s.store.SaveAll(s.ctx, users))

	loaded, err := s.store.LoadAll(s.ctx)
	require.NoError(s.T(), err)
	require.Contains(s.T(), loaded, "alice")
	assert.Equal(s.T(), int64(-500), loaded["alice"].Balance.Cents)
	require.Len(s.T(), loaded["alice"].Expenses, 1)
	assert.Equal(s.T(), "2024-03-05", loaded["alice"].Expenses[0].Date.String())
}

func (s *StoreTestSuite) TestSaveAllOverwrites() {
	require.NoError(s.T(), s.store.SaveAll(s.ctx, map[string]core.User{
		"a": {Username: "a"},
		"b": {Username: "b"},
	}))
	require.NoError(s.T(), s.store.SaveAll(s.ctx, map[string]core.User{
		"c": {Username: "c"},
	}))

	users, err := s.store.LoadAll(s.ctx)
	require.NoError(s.T(), err)
	assert.Len(s.T(), users, 1)
	assert.Contains(s.T(), users, "c")
}

func (s *StoreTestSuite) TestCorruptUsersSlotRecoversEmpty() {
	require.NoError(s.T(), s.store.writeSlot(s.ctx, "users", "{not json"))

	users, err := s.store.LoadAll(s.ctx)
	require.NoError(s.T(), err, "corrupt slot must not surface an error")
	assert.Empty(s.T(), users)
}

func (s *StoreTestSuite) TestSessionSlotLifecycle() {
	current, err := s.store.CurrentSession(s.ctx)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), current)

	require.NoError(s.T(), s.store.SetCurrentSession(s.ctx, "bob"))
	current, err = s.store.CurrentSession(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "bob", current)

	require.NoError(s.T(), s.store.ClearCurrentSession(s.ctx))
	current, err = s.store.CurrentSession(s.ctx)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), current)

	require.NoError(s.T(), s.store.ClearCurrentSession(s.ctx), "clearing twice is a no-op")
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
