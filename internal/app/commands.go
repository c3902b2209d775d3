package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samvad-hq/ems-client/pkg/ems"
	"github.com/samvad-hq/ems-client/pkg/httpclient"
	"github.com/urfave/cli/v3"
)

func (a *App) healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "checks that the API is up",
		Action: func(ctx context.Context, c *cli.Command) error {
			h, err := a.api.Health(ctx)
			if err != nil {
				return err
			}
			return a.render.Render(h)
		},
	}
}

func (a *App) usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "lists or creates users",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "lists all users",
				Action: func(ctx context.Context, c *cli.Command) error {
					users, err := a.api.ListUsers(ctx)
					if err != nil {
						return err
					}
					return a.render.Render(users)
				},
			},
			{
				Name:  "create",
				Usage: "creates a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "full-name"},
					&cli.BoolFlag{Name: "inactive", Usage: "create the user disabled"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					u, err := a.api.CreateUser(ctx, ems.UserCreate{
						Username: c.String("username"),
						Email:    c.String("email"),
						FullName: optString(c, "full-name"),
						IsActive: !c.Bool("inactive"),
					})
					if err != nil {
						return err
					}
					return a.render.Render(u)
				},
			},
		},
	}
}

func (a *App) typesCommand() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "lists or creates exception types",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "lists all exception types",
				Action: func(ctx context.Context, c *cli.Command) error {
					types, err := a.api.ListExceptionTypes(ctx)
					if err != nil {
						return err
					}
					return a.render.Render(types)
				},
			},
			{
				Name:  "create",
				Usage: "creates an exception type",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "code", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.IntFlag{Name: "sla-hours", Value: 72},
					&cli.IntFlag{Name: "approval-levels", Value: 1},
					&cli.BoolFlag{Name: "inactive"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					in := ems.NewExceptionTypeCreate(c.String("code"), c.String("name"))
					in.Description = optString(c, "description")
					in.DefaultSLAHours = int(c.Int("sla-hours"))
					in.ApprovalLevels = int(c.Int("approval-levels"))
					in.Active = !c.Bool("inactive")

					et, err := a.api.CreateExceptionType(ctx, in)
					if err != nil {
						return err
					}
					return a.render.Render(et)
				},
			},
		},
	}
}

func (a *App) exceptionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "exceptions",
		Usage: "lists or creates exceptions",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "lists exceptions, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "only exceptions in this status (e.g. IN_PROGRESS)"},
					&cli.IntFlag{Name: "type-id", Usage: "only exceptions of this type"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					excs, err := a.api.ListExceptions(ctx, ems.ExceptionFilter{
						Status: strings.ToUpper(c.String("status")),
						TypeID: int(c.Int("type-id")),
					})
					if err != nil {
						return err
					}
					return a.render.Render(excs)
				},
			},
			{
				Name:  "create",
				Usage: "raises a new exception",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "type-id", Required: true},
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "severity"},
					&cli.StringFlag{Name: "bu-id"},
					&cli.IntFlag{Name: "created-by"},
					&cli.IntFlag{Name: "assigned-to"},
					&cli.IntFlag{Name: "priority"},
					&cli.StringFlag{Name: "due-at", Usage: "RFC 3339 timestamp"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					in := ems.ExceptionCreate{
						TypeID:      int(c.Int("type-id")),
						Title:       c.String("title"),
						Description: optString(c, "description"),
						Severity:    optString(c, "severity"),
						BUID:        optString(c, "bu-id"),
						CreatedBy:   optInt(c, "created-by"),
						AssignedTo:  optInt(c, "assigned-to"),
						Priority:    optInt(c, "priority"),
					}
					if c.IsSet("due-at") {
						due, err := time.Parse(time.RFC3339, c.String("due-at"))
						if err != nil {
							return fmt.Errorf("invalid --due-at: %w", err)
						}
						in.DueAt = &due
					}

					exc, err := a.api.CreateException(ctx, in)
					if err != nil {
						return err
					}
					return a.render.Render(exc)
				},
			},
		},
	}
}

func (a *App) attachmentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "attachments",
		Usage: "manages exception attachments",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "lists attachments of an exception",
				ArgsUsage: "<exception-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := intArg(c, "exception-id")
					if err != nil {
						return err
					}
					atts, err := a.api.ListAttachments(ctx, id)
					if err != nil {
						return err
					}
					return a.render.Render(atts)
				},
			},
			{
				Name:  "presign-upload",
				Usage: "registers an attachment and prints its upload URL",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "exception-id", Required: true},
					&cli.StringFlag{Name: "filename", Required: true},
					&cli.StringFlag{Name: "mime"},
					&cli.IntFlag{Name: "uploaded-by"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					up, err := a.api.PresignUpload(ctx, ems.PresignUploadRequest{
						ExceptionID: int(c.Int("exception-id")),
						Filename:    c.String("filename"),
						Mime:        optString(c, "mime"),
						UploadedBy:  optInt(c, "uploaded-by"),
					})
					if err != nil {
						return err
					}
					return a.render.Render(up)
				},
			},
			{
				Name:      "presign-download",
				Usage:     "prints a download URL for an attachment",
				ArgsUsage: "<attachment-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := intArg(c, "attachment-id")
					if err != nil {
						return err
					}
					dl, err := a.api.PresignDownload(ctx, id)
					if err != nil {
						return err
					}
					return a.render.Render(dl)
				},
			},
		},
	}
}

func (a *App) requestCommand() *cli.Command {
	return &cli.Command{
		Name:        "request",
		Usage:       "sends a raw request and prints the decoded JSON response",
		ArgsUsage:   "<path>",
		Description: "the path is appended to the api base as is, so it should start with '/' and be URL encoded.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "method", Aliases: []string{"X"}, Value: http.MethodGet},
			&cli.StringSliceFlag{Name: "header", Aliases: []string{"H"}, Usage: "extra header as 'Key: Value'"},
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "raw request body"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("request takes exactly one <path> argument")
			}
			path := c.Args().First()

			headers, err := parseHeaders(c.StringSlice("header"))
			if err != nil {
				return err
			}
			opts := &httpclient.Options{
				Method:  strings.ToUpper(c.String("method")),
				Headers: headers,
			}
			if c.IsSet("data") {
				opts.Body = []byte(c.String("data"))
			}

			a.log.DebugObj("raw request", "request", map[string]any{"method": opts.Method, "path": path})
			out, err := httpclient.Do[any](ctx, a.http, path, opts)
			if err != nil {
				return err
			}
			return a.render.Render(out)
		},
	}
}

// parseHeaders accepts "Key: Value" or "Key=Value" entries.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	for _, h := range raw {
		key, val, ok := strings.Cut(h, ":")
		if !ok {
			key, val, ok = strings.Cut(h, "=")
		}
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q (expected 'Key: Value')", h)
		}
		out[key] = strings.TrimSpace(val)
	}
	return out, nil
}

func intArg(c *cli.Command, name string) (int, error) {
	if c.Args().Len() != 1 {
		return 0, fmt.Errorf("expected exactly one <%s> argument", name)
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Args().First())
	}
	return id, nil
}

func optString(c *cli.Command, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	s := c.String(name)
	return &s
}

func optInt(c *cli.Command, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	n := int(c.Int(name))
	return &n
}
