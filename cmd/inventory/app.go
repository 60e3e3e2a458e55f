package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"mini-inventory/internal/auth"
	"mini-inventory/internal/catalog"
	"mini-inventory/internal/config"
	"mini-inventory/internal/ledger"
	"mini-inventory/internal/model"
	"mini-inventory/internal/service"
	"mini-inventory/internal/storage"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const defaultCost = bcrypt.DefaultCost

// app holds the global flags and the collaborators shared by every command.
type app struct {
	file     string
	user     string
	password string
	logLevel string

	out    io.Writer
	cost   int
	logger zerolog.Logger
}

func (a *app) registerFlags(f *flag.FlagSet) {
	f.StringVar(&a.file, "file", "inventory.txt", "Path to the inventory file")
	f.StringVar(&a.user, "user", "", "Username for commands that require a login")
	f.StringVar(&a.password, "password", "", "Password for -user")
	f.StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func (a *app) commands() []subcommands.Command {
	return []subcommands.Command{
		&listCmd{app: a},
		&addCmd{app: a},
		&updateCmd{app: a},
		&removeCmd{app: a},
		&recordCmd{app: a},
		&reportCmd{app: a},
	}
}

func newLogger(level string) zerolog.Logger {
	return config.NewLoggerTo(os.Stderr, config.LoggerConfig{Level: level, Format: "console"})
}

func (a *app) newService() service.InventoryService {
	return service.NewInventoryService(
		catalog.New(),
		ledger.New(ledger.DefaultPolicy()),
		storage.NewFileStore("", a.logger),
		nil,
		a.logger,
	)
}

// open returns a service holding the products of the inventory file. A
// missing file yields an empty inventory.
func (a *app) open(ctx context.Context) (service.InventoryService, error) {
	svc := a.newService()
	if _, err := svc.Load(ctx, a.file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn().Str("file", a.file).Msg("inventory file does not exist, starting empty")
			return svc, nil
		}
		return nil, err
	}
	return svc, nil
}

// login checks -user and -password against the user directory. When admin is
// set the user must also hold the ADMIN role.
func (a *app) login(admin bool) (model.User, error) {
	users, err := auth.NewDirectory(auth.DefaultSeeds(), a.cost)
	if err != nil {
		return model.User{}, err
	}

	user, ok := users.Login(a.user, a.password)
	if !ok {
		return model.User{}, model.ErrUnauthorised
	}
	if admin && !user.IsAdmin() {
		return model.User{}, model.ErrForbidden
	}
	return user, nil
}

// fail reports err on stderr and maps it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, model.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
