package main

import (
	"context"
	"time"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/user"
)

// addTeacher creates a teacher account.
func (cli *commandLine) addTeacher(name, email, teacherID, pwd string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	teacherID = core.CleanString(teacherID)

	if err := cli.usrRepo.CheckUserUniqueness(ctx, email, ""); err != nil {
		return err
	}

	now := time.Now().UTC()
	usr := user.User{
		FullName:  name,
		Email:     email,
		Role:      user.RoleTeacher,
		TeacherID: teacherID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.usrRepo.CreateUser(ctx, usr)
	return err
}
