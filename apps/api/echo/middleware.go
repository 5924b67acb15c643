package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// tokenHeaderMiddleware copies a bare x-auth-token value into the
// Authorization header the JWT middleware reads. Registered globally so it
// runs before the JWT middleware on protected groups.
func tokenHeaderMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if token := ctx.Request().Header.Get(tokenHeader); token != "" {
				ctx.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			}
			return next(ctx)
		}
	}
}

func teacherMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsTeacher() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func studentMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsStudent() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
