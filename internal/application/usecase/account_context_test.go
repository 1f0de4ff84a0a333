package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/aws-cost-console/internal/domain/entity"
	"github.com/diillson/aws-cost-console/internal/shared/types"
)

func TestAccountContext_LoadSelectsFirst(t *testing.T) {
	api := &fakeAPI{accounts: listing(testAccounts, nil)}
	ac := NewAccountContext(api, nil)

	assert.True(t, ac.Loading())
	require.NoError(t, ac.Load(context.Background()))
	assert.False(t, ac.Loading())

	assert.Equal(t, "a1", ac.Selected())
	assert.Equal(t, "prod", ac.SelectedAccount().Name)
	assert.Len(t, ac.Accounts(), 2)
}

func TestAccountContext_LoadsOnce(t *testing.T) {
	api := &fakeAPI{accounts: listing(testAccounts, nil)}
	ac := NewAccountContext(api, nil)

	require.NoError(t, ac.Load(context.Background()))
	require.NoError(t, ac.Load(context.Background()))

	assert.Equal(t, []string{"GetAwsAccounts"}, api.Calls())
}

func TestAccountContext_LoadFailure(t *testing.T) {
	boom := errors.New("boom")
	ac := NewAccountContext(&fakeAPI{accounts: listing(nil, boom)}, nil)

	err := ac.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, ac.Loading())
	assert.Empty(t, ac.Selected())
	assert.Nil(t, ac.SelectedAccount())

	_, err = ac.RequireSelected()
	assert.ErrorIs(t, err, types.ErrNoAccountsFound)
}

func TestAccountContext_EmptyList(t *testing.T) {
	ac := NewAccountContext(&fakeAPI{accounts: listing(nil, nil)}, nil)

	require.NoError(t, ac.Load(context.Background()))
	assert.Empty(t, ac.Selected())
	assert.Empty(t, ac.Accounts())
}

func TestAccountContext_Select(t *testing.T) {
	ac := NewAccountContext(&fakeAPI{accounts: listing(testAccounts, nil)}, nil)
	require.NoError(t, ac.Load(context.Background()))

	require.NoError(t, ac.Select("dev"))
	assert.Equal(t, "a2", ac.Selected())

	require.NoError(t, ac.Select("a1"))
	assert.Equal(t, "a1", ac.Selected())

	err := ac.Select("staging")
	assert.ErrorIs(t, err, types.ErrAccountNotFound)
	assert.Equal(t, "a1", ac.Selected())

	acc, err := ac.RequireSelected()
	require.NoError(t, err)
	assert.Equal(t, "AK1", acc.AccessKey)
}

func TestAccountContext_Replace(t *testing.T) {
	ac := NewAccountContext(&fakeAPI{accounts: listing(testAccounts, nil)}, nil)
	require.NoError(t, ac.Load(context.Background()))
	require.NoError(t, ac.Select("dev"))

	ac.Replace([]entity.AwsAccount{testAccounts[0], testAccounts[1], {ID: "a3", Name: "stage"}})
	assert.Equal(t, "a2", ac.Selected())
	assert.Len(t, ac.Accounts(), 3)

	ac.Replace(testAccounts[:1])
	assert.Equal(t, "a1", ac.Selected())

	ac.Replace(nil)
	assert.Empty(t, ac.Selected())
}
