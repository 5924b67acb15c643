package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/report"
)

type reportApi struct {
	svc report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := reportApi{svc: deps.ReportSvc}

	dg := g.Group("/dashboard", jwt, teacherMiddleware())
	dg.GET("/teacher-summary", api.teacherSummary)

	sg := g.Group("/student", jwt, studentMiddleware())
	sg.GET("/classes", api.studentClasses)
}

// Handlers

func (api *reportApi) teacherSummary(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	summary, err := api.svc.TeacherSummary(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "building teacher summary")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *reportApi) studentClasses(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classes, err := api.svc.StudentClasses(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying student classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}
