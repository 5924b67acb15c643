package user

import (
	"github.com/darasahq/darasa/core"
)

type serviceMock struct {
	service
}

func NewServiceMock(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &serviceMock{
		service: service{
			repo:    repo,
			mailSvc: mailSvc,
			conf:    conf,
		},
	}
}
