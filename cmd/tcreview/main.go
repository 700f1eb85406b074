package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tcreview/internal/api"
	"tcreview/internal/config"
	"tcreview/internal/ui"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin so the
	// OSC 11 reply cannot leak into the search box.
	_ = lipgloss.HasDarkBackground()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cli{
		out:       os.Stdout,
		errOut:    os.Stderr,
		newClient: newHTTPClient,
		program: func(app *ui.App) programRunner {
			return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
		},
	}
	if err := newRootCmd(c).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries what every subcommand shares. Tests replace the client
// constructor and the program factory.
type cli struct {
	out       io.Writer
	errOut    io.Writer
	newClient func(config.Settings) (api.Client, error)
	program   programFactory

	flags    rootFlags
	settings config.Settings
	client   api.Client
}

func newHTTPClient(s config.Settings) (api.Client, error) {
	return api.NewHTTPClient(s.ServerURL,
		api.WithTimeout(s.ServerTimeout),
		api.WithUserAgent("tcreview/"+Version),
	)
}

// apiClient builds the client on first use so commands that never talk to
// the server do not need a valid server.url.
func (c *cli) apiClient() (api.Client, error) {
	if c.client != nil {
		return c.client, nil
	}
	client, err := c.newClient(c.settings)
	if err != nil {
		return nil, err
	}
	c.client = client
	return client, nil
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) (*ui.App, error) {
	app, err := builder(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return nil, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return nil, fmt.Errorf("run UI: %w", err)
	}
	return app, nil
}
