package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/taskmaster/internal/client/api"
	"github.com/dmitrijs2005/taskmaster/internal/client/config"
)

type App struct {
	config    *config.Config
	api       api.Client
	reader    *bufio.Reader
	out       io.Writer
	userEmail string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run greets the user, checks the server and starts the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to TaskMaster CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userEmail)
}
