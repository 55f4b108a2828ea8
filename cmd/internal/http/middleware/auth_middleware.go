package middleware

import (
	"net/http"

	"radarcnpj/cmd/internal/domain/entity"
	"radarcnpj/cmd/internal/utils"
	"radarcnpj/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	JWTSecret string
	UserRepo  UserRepository
}

// NewAuthMiddleware validates the bearer token and loads the account it
// references, so a deactivated user is locked out even with a live token.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, apierror.TokenMissingError)
			}

			tokenData, err := utils.ValidateToken(cfg.JWTSecret, header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidTokenError)
			}

			user, err := cfg.UserRepo.FindByID(tokenData.ID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// User deleted in DB but still has a valid token???
				return c.JSON(http.StatusUnauthorized, apierror.InvalidTokenError)
			}

			if !user.Active {
				return c.JSON(http.StatusForbidden, apierror.InactiveUserError)
			}

			c.Set("user", user)
			return next(c)
		}
	}
}

// NewAdminMiddleware restricts a route to administrators. It must run
// after NewAuthMiddleware.
func NewAdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, apierr := utils.GetUserFromContext(c)
			if apierr != nil {
				return c.JSON(apierr.Code(), apierr)
			}

			if !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, apierror.AdminOnlyError)
			}
			return next(c)
		}
	}
}
