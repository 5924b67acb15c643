package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/coursework"
)

type courseworkApi struct {
	svc      coursework.Service
	validate *validator.Validate
}

func registerCourseworkAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := courseworkApi{
		svc:      deps.CourseSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/classes/:id", jwt, teacherMiddleware())
	cg.POST("/assignments", api.createAssignment)
	cg.GET("/assignments", api.queryAssignments)
	cg.POST("/notes", api.createNote)
	cg.GET("/notes", api.queryNotes)

	ag := g.Group("/assignments", jwt, teacherMiddleware())
	ag.PUT("/:id", api.updateAssignment)
	ag.DELETE("/:id", api.destroyAssignment)

	ng := g.Group("/notes", jwt, teacherMiddleware())
	ng.DELETE("/:noteId", api.destroyNote)
}

// Handlers

func (api *courseworkApi) createAssignment(ctx echo.Context) error {
	var data coursework.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	a, err := api.svc.CreateAssignment(ctx.Request().Context(), claims.Subject, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *courseworkApi) queryAssignments(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	assignments, err := api.svc.ListAssignments(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return err
	}
	if assignments == nil {
		assignments = []coursework.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *courseworkApi) updateAssignment(ctx echo.Context) error {
	var data coursework.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	a, err := api.svc.UpdateAssignment(ctx.Request().Context(), claims.Subject, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *courseworkApi) destroyAssignment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.DeleteAssignment(ctx.Request().Context(), claims.Subject, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, DetailResponse{Detail: "assignment deleted"})
}

func (api *courseworkApi) createNote(ctx echo.Context) error {
	var data coursework.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	n, err := api.svc.CreateNote(ctx.Request().Context(), claims.Subject, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *courseworkApi) queryNotes(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	notes, err := api.svc.ListNotes(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []coursework.Note{}
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *courseworkApi) destroyNote(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.DeleteNote(ctx.Request().Context(), claims.Subject, ctx.Param("noteId")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, DetailResponse{Detail: "note deleted"})
}
