package service

import (
	"strconv"

	"radarcnpj/cmd/internal/contract"
	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/domain/sqlite/repository"
	"radarcnpj/cmd/internal/utils"
	"radarcnpj/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type AdminUserRepository interface {
	FindAll() ([]*entity.User, error)
	FindByID(id int64) (*entity.User, error)
	FindActiveByEmail(email string) (*entity.User, error)
	Save(user *entity.User) error
	Create(user *entity.User) error
}

// UserService handles login and the admin user CRUD.
type UserService struct {
	UserRepo  AdminUserRepository
	Validate  *validator.Validate
	JWTSecret string
}

func NewUserService(userRepo AdminUserRepository, validate *validator.Validate, jwtSecret string) *UserService {
	return &UserService{
		UserRepo:  userRepo,
		Validate:  validate,
		JWTSecret: jwtSecret,
	}
}

func (u *UserService) Login(req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindActiveByEmail(req.Email)
	if err != nil {
		log.Errorf("login lookup failed for %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.CredentialsError
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierror.CredentialsError
	}

	token, err := utils.GenerateToken(u.JWTSecret, &utils.TokenData{
		ID:    user.ID,
		Nome:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		log.Errorf("failed to sign token for %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	return &contract.LoginResponse{
		Token: token,
		User:  toUserInfo(user),
	}, nil
}

func (u *UserService) GetUsers() ([]*contract.UserResponse, apierror.ErrorResponse) {
	users, err := u.UserRepo.FindAll()
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.UserResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user)
	}
	return resp, nil
}

func (u *UserService) CreateUser(req *contract.CreateUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         normalizeRole(req.Role),
		Active:       boolOrDefault(req.Active, true),
		CanBatch:     boolOrDefault(req.CanBatch, true),
	}

	if err := u.UserRepo.Create(user); err != nil {
		if repository.IsDuplicateEmail(err) {
			return nil, apierror.DuplicateEmailError
		}
		log.Errorf("failed to create user %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	return toUserResponse(user), nil
}

func (u *UserService) UpdateUser(rawID string, req *contract.UpdateUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	user, apierr := u.fetchByRawID(rawID)
	if apierr != nil {
		return nil, apierr
	}

	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Errorf("failed to hash password: %v", err)
			return nil, apierror.InternalServerError
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		user.Role = normalizeRole(*req.Role)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.CanBatch != nil {
		user.CanBatch = *req.CanBatch
	}

	if err := u.UserRepo.Save(user); err != nil {
		if repository.IsDuplicateEmail(err) {
			return nil, apierror.DuplicateEmailError
		}
		log.Errorf("failed to update user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return toUserResponse(user), nil
}

// DeactivateUser is the delete operation: accounts are switched off, not
// removed, so the audit trail keeps resolving.
func (u *UserService) DeactivateUser(rawID string) (*contract.UserResponse, apierror.ErrorResponse) {
	user, apierr := u.fetchByRawID(rawID)
	if apierr != nil {
		return nil, apierr
	}

	user.Active = false
	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to deactivate user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return toUserResponse(user), nil
}

func (u *UserService) fetchByRawID(rawID string) (*entity.User, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return nil, apierror.NewSimple(400, "ID inválido.")
	}

	user, err := u.UserRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.UserNotFoundError
	}
	return user, nil
}

func normalizeRole(role string) string {
	if role == entity.RoleAdmin {
		return entity.RoleAdmin
	}
	return entity.RoleUser
}

func boolOrDefault(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func toUserInfo(user *entity.User) *contract.UserInfo {
	return &contract.UserInfo{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CanBatch:  user.CanBatch,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
	}
}
