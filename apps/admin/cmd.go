package main

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studysync/storage/localdata"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db    *localdata.DB
	sqlDB *sqlx.DB // nil when the file store is in use
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed        - load the demo group and preferences")
	fmt.Println("  reset       - clear all portal data back to the demo defaults")
	fmt.Println("  migrate CMD - run database migrations (up|down|status|...)")
	fmt.Println("  setpassword - set the portal password (prompted)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "seed":
		return cli.seed()
	case "reset":
		return cli.reset()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "setpassword":
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.setPassword(string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
