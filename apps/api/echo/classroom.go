package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/classroom"
)

type classroomApi struct {
	svc      classroom.Service
	validate *validator.Validate
}

func registerClassroomAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := classroomApi{
		svc:      deps.ClassSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/classes", jwt, teacherMiddleware())
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.DELETE("/:id", api.destroy)
	cg.GET("/:id/students", api.queryEnrolled)
	cg.POST("/:id/students", api.enroll)
	cg.POST("/:id/bulk-enroll", api.bulkEnroll)

	eg := g.Group("/enrollments", jwt, teacherMiddleware())
	eg.PUT("/:enrollmentId", api.updateEnrollment)
	eg.DELETE("/:enrollmentId", api.removeEnrollment)
}

// Handlers

func (api *classroomApi) create(ctx echo.Context) error {
	var data classroom.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	cls, err := api.svc.CreateClass(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classroomApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	classes, err := api.svc.ListClasses(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []classroom.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classroomApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	cls, err := api.svc.GetClass(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classroomApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.DeleteClass(ctx.Request().Context(), claims.Subject, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, DetailResponse{Detail: "class deleted"})
}

func (api *classroomApi) queryEnrolled(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	students, err := api.svc.ListEnrolled(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		return err
	}
	if students == nil {
		students = []classroom.EnrolledStudent{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *classroomApi) enroll(ctx echo.Context) error {
	var data classroom.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	enrolled, err := api.svc.AddEnrollment(ctx.Request().Context(), claims.Subject, ctx.Param("id"), data.StudentID)
	if err != nil {
		if errors.Cause(err) == classroom.ErrAlreadyEnrolled {
			return core.NewValidationError(classroom.ErrAlreadyEnrolled)
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, enrolled)
}

func (api *classroomApi) bulkEnroll(ctx echo.Context) error {
	var data classroom.BulkEnroll
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkEnroll")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	res, err := api.svc.BulkEnroll(ctx.Request().Context(), claims.Subject, ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *classroomApi) updateEnrollment(ctx echo.Context) error {
	var data classroom.UpdateEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEnrollment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	enr, err := api.svc.UpdateEnrollmentStatus(ctx.Request().Context(), claims.Subject, ctx.Param("enrollmentId"), data.Status)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, enr)
}

func (api *classroomApi) removeEnrollment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.RemoveEnrollment(ctx.Request().Context(), claims.Subject, ctx.Param("enrollmentId")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, DetailResponse{Detail: "enrollment removed"})
}

type DetailResponse struct {
	Detail string `json:"detail"`
}
