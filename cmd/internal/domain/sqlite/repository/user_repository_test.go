package repository

import (
	"testing"

	"radarcnpj/cmd/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindActiveByEmailSkipsInactiveUsers(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(&entity.User{
		Name: "Maria", Email: "maria@example.com", PasswordHash: "x",
		Role: entity.RoleUser, Active: true, CanBatch: true,
	}))
	require.NoError(t, repo.Create(&entity.User{
		Name: "José", Email: "jose@example.com", PasswordHash: "x",
		Role: entity.RoleUser, Active: false, CanBatch: true,
	}))

	got, err := repo.FindActiveByEmail("maria@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Maria", got.Name)

	got, err = repo.FindActiveByEmail("jose@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateDetectsDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(&entity.User{
		Name: "Maria", Email: "maria@example.com", PasswordHash: "x",
		Role: entity.RoleUser, Active: true, CanBatch: true,
	}))

	err := repo.Create(&entity.User{
		Name: "Outra Maria", Email: "maria@example.com", PasswordHash: "x",
		Role: entity.RoleUser, Active: true, CanBatch: true,
	})
	require.Error(t, err)
	assert.True(t, IsDuplicateEmail(err))
}

func TestFindByIDReturnsNilWhenMissing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	got, err := repo.FindByID(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}
