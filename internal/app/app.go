package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samvad-hq/ems-client/internal/config"
	"github.com/samvad-hq/ems-client/internal/logger"
	"github.com/samvad-hq/ems-client/pkg/ems"
	"github.com/samvad-hq/ems-client/pkg/httpclient"
	"github.com/urfave/cli/v3"
)

// App holds the state shared by every emsctl command. The HTTP client is built
// once in the root Before hook and never replaced afterwards.
type App struct {
	cfg *config.Config
	log logger.Logger
	out io.Writer

	http   *httpclient.Client
	api    *ems.Client
	render *Renderer
}

// New builds an App from loaded configuration. Output is written to out.
func New(cfg *config.Config, log logger.Logger, out io.Writer) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &App{cfg: cfg, log: log, out: out}, nil
}

// Command returns the root emsctl command.
func (a *App) Command() *cli.Command {
	return &cli.Command{
		Name:      a.cfg.AppName,
		Usage:     "command line client for the EMS exception management API",
		UsageText: "emsctl [--api-base URL] [--output json|yaml] <command> ...",
		Writer:    a.out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-base",
				Usage: "base URL prepended to every request path",
				Value: a.cfg.APIBase,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format ('json', 'yaml')",
				Value:   a.cfg.OutputFormat,
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.healthCommand(),
			a.usersCommand(),
			a.typesCommand(),
			a.exceptionsCommand(),
			a.attachmentsCommand(),
			a.requestCommand(),
		},
	}
}

// Run executes the command line in args (args[0] is the program name).
func (a *App) Run(ctx context.Context, args []string) error {
	return a.Command().Run(ctx, args)
}

func (a *App) before(ctx context.Context, c *cli.Command) (context.Context, error) {
	base := strings.TrimSpace(c.String("api-base"))
	if err := config.ValidateBaseURL(base); err != nil {
		return ctx, err
	}

	render, err := NewRenderer(a.out, strings.ToLower(c.String("output")))
	if err != nil {
		return ctx, err
	}

	a.http = httpclient.New(base)
	a.api = ems.NewClient(a.http, a.log)
	a.render = render

	a.log.DebugObj("client configured", "client", map[string]any{
		"api_base": base,
		"output":   render.format,
	})
	return ctx, nil
}
