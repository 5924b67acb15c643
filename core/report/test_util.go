package report

import (
	"time"

	"github.com/darasahq/darasa/core/classroom"
)

// NewServiceMock returns a Service with an overridable clock.
func NewServiceMock(repo Repository, classSvc classroom.Service, nowFunc func() time.Time) Service {
	return &service{
		repo:     repo,
		classSvc: classSvc,
		nowFunc:  nowFunc,
	}
}
