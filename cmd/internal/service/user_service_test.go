package service

import (
	"errors"
	"testing"

	"radarcnpj/cmd/internal/contract"
	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubAdminRepo struct {
	byEmail   *entity.User
	byID      *entity.User
	createErr error
	saved     []*entity.User
	created   []*entity.User
}

func (s *stubAdminRepo) FindAll() ([]*entity.User, error) {
	var out []*entity.User
	if s.byID != nil {
		out = append(out, s.byID)
	}
	return out, nil
}

func (s *stubAdminRepo) FindByID(id int64) (*entity.User, error) {
	return s.byID, nil
}

func (s *stubAdminRepo) FindActiveByEmail(email string) (*entity.User, error) {
	return s.byEmail, nil
}

func (s *stubAdminRepo) Save(user *entity.User) error {
	s.saved = append(s.saved, user)
	return nil
}

func (s *stubAdminRepo) Create(user *entity.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = int64(len(s.created) + 1)
	s.created = append(s.created, user)
	return nil
}

func newUserService(repo *stubAdminRepo) *UserService {
	return NewUserService(repo, validator.New(), "test-secret")
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginIssuesTokenForValidCredentials(t *testing.T) {
	repo := &stubAdminRepo{byEmail: &entity.User{
		ID: 7, Name: "Maria", Email: "maria@example.com",
		PasswordHash: hashFor(t, "senha123"), Role: entity.RoleUser, Active: true,
	}}
	svc := newUserService(repo)

	resp, apierr := svc.Login(&contract.LoginRequest{Email: "maria@example.com", Password: "senha123"})
	require.Nil(t, apierr)

	require.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, "Maria", resp.User.Name)

	data, err := utils.ValidateToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), data.ID)
	assert.Equal(t, "maria@example.com", data.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := &stubAdminRepo{byEmail: &entity.User{
		ID: 7, Email: "maria@example.com", PasswordHash: hashFor(t, "senha123"), Active: true,
	}}
	svc := newUserService(repo)

	_, apierr := svc.Login(&contract.LoginRequest{Email: "maria@example.com", Password: "errada123"})
	require.NotNil(t, apierr)
	assert.Equal(t, 401, apierr.Code())
}

func TestLoginRejectsUnknownOrInactiveUser(t *testing.T) {
	svc := newUserService(&stubAdminRepo{})

	_, apierr := svc.Login(&contract.LoginRequest{Email: "ninguem@example.com", Password: "senha123"})
	require.NotNil(t, apierr)
	assert.Equal(t, 401, apierr.Code())
}

func TestLoginValidatesRequestShape(t *testing.T) {
	svc := newUserService(&stubAdminRepo{})

	_, apierr := svc.Login(&contract.LoginRequest{Email: "nao-e-email", Password: "x"})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestCreateUserHashesPasswordAndDefaults(t *testing.T) {
	repo := &stubAdminRepo{}
	svc := newUserService(repo)

	resp, apierr := svc.CreateUser(&contract.CreateUserRequest{
		Name: "José", Email: "jose@example.com", Password: "senha123",
	})
	require.Nil(t, apierr)

	assert.Equal(t, entity.RoleUser, resp.Role)
	assert.True(t, resp.Active)
	assert.True(t, resp.CanBatch)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEqual(t, "senha123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("senha123")))
}

func TestCreateUserMapsDuplicateEmail(t *testing.T) {
	repo := &stubAdminRepo{createErr: errors.New("UNIQUE constraint failed: users.email")}
	svc := newUserService(repo)

	_, apierr := svc.CreateUser(&contract.CreateUserRequest{
		Name: "José", Email: "jose@example.com", Password: "senha123",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
	assert.Empty(t, repo.created)
}

func TestUpdateUserAppliesOnlyProvidedFields(t *testing.T) {
	repo := &stubAdminRepo{byID: &entity.User{
		ID: 3, Name: "Maria", Email: "maria@example.com",
		PasswordHash: "old-hash", Role: entity.RoleUser, Active: true, CanBatch: true,
	}}
	svc := newUserService(repo)

	canBatch := false
	resp, apierr := svc.UpdateUser("3", &contract.UpdateUserRequest{CanBatch: &canBatch})
	require.Nil(t, apierr)

	assert.False(t, resp.CanBatch)
	assert.Equal(t, "Maria", resp.Name)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "old-hash", repo.saved[0].PasswordHash)
}

func TestUpdateUserRejectsMalformedID(t *testing.T) {
	svc := newUserService(&stubAdminRepo{})

	_, apierr := svc.UpdateUser("abc", &contract.UpdateUserRequest{})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestUpdateUserReturnsNotFound(t *testing.T) {
	svc := newUserService(&stubAdminRepo{})

	_, apierr := svc.UpdateUser("42", &contract.UpdateUserRequest{})
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}

func TestDeactivateUserFlipsActiveFlag(t *testing.T) {
	repo := &stubAdminRepo{byID: &entity.User{
		ID: 3, Name: "Maria", Email: "maria@example.com", Active: true,
	}}
	svc := newUserService(repo)

	resp, apierr := svc.DeactivateUser("3")
	require.Nil(t, apierr)

	assert.False(t, resp.Active)
	require.Len(t, repo.saved, 1)
	assert.False(t, repo.saved[0].Active)
}
