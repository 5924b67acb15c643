package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/user"
)

type authApi struct {
	svc      user.Service
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{
		svc:      deps.UserSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	// TODO: rate limit `/login`
	ag.POST("/register", api.register)
	ag.POST("/login", api.login)

	// authed endpoints
	authed := ag.Group("", jwt)
	authed.GET("/user", api.retrieve)
	authed.POST("/token-refresh", api.refreshToken)

	ug := g.Group("/users", jwt)
	ug.GET("/students", api.queryStudents, teacherMiddleware())
}

// Handlers

func (api *authApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}

	return ctx.JSON(http.StatusCreated, RegisterResponse{
		UserID: usr.ID,
		Email:  usr.Email,
		Role:   usr.Role,
	})
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx, data.Email, data.Password, api.svc)
	if err != nil {
		if errors.Cause(err) == errAuthenticationFailed {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Role: claims.Role})
}

func (api *authApi) retrieve(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (api *authApi) queryStudents(ctx echo.Context) error {
	students, err := api.svc.ListStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []user.User{}
	}
	return ctx.JSON(http.StatusOK, students)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	RegisterResponse struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
