package handler

import (
	"net/http"

	"radarcnpj/cmd/internal/contract"
	"radarcnpj/cmd/internal/utils"
	"radarcnpj/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	Login(req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse)
	GetUsers() ([]*contract.UserResponse, apierror.ErrorResponse)
	CreateUser(req *contract.CreateUserRequest) (*contract.UserResponse, apierror.ErrorResponse)
	UpdateUser(rawID string, req *contract.UpdateUserRequest) (*contract.UserResponse, apierror.ErrorResponse)
	DeactivateUser(rawID string) (*contract.UserResponse, apierror.ErrorResponse)
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := u.UserService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// Me echoes the authenticated identity, used by the front end to verify
// a stored token is still valid.
func (u *DefaultUserRoute) Me(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp := echo.Map{"usuario": &contract.UserInfo{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUserRoute) GetUsers(c echo.Context) error {
	users, apierr := u.UserService.GetUsers()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, users)
}

func (u *DefaultUserRoute) CreateUser(c echo.Context) error {
	var req contract.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	user, apierr := u.UserService.CreateUser(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, user)
}

func (u *DefaultUserRoute) UpdateUser(c echo.Context) error {
	var req contract.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	user, apierr := u.UserService.UpdateUser(c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, user)
}

func (u *DefaultUserRoute) DeleteUser(c echo.Context) error {
	user, apierr := u.UserService.DeactivateUser(c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{
		"message": "Usuário desativado com sucesso.",
		"usuario": user,
	}
	return c.JSON(http.StatusOK, &resp)
}
