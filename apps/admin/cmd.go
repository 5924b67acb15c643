package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/darasahq/darasa/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *sql.DB
	usrRepo user.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addteacher -name NAME -email EMAIL [-teacherid ID] - create a teacher account")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (goose passthrough)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addTeacherCmd := flag.NewFlagSet("addteacher", flag.ExitOnError)
	addTeacherName := addTeacherCmd.String("name", "", "The teacher's full name.")
	addTeacherEmail := addTeacherCmd.String("email", "", "The teacher's email. The password will be prompted next.")
	addTeacherID := addTeacherCmd.String("teacherid", "", "The institutional teacher ID.")

	switch args[1] {
	case "addteacher":
		if err := addTeacherCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addTeacherName == "" || *addTeacherEmail == "" {
			addTeacherCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addTeacherCmd.Usage()
			return errHelp
		}
		return cli.addTeacher(*addTeacherName, *addTeacherEmail, *addTeacherID, string(pwd))
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
