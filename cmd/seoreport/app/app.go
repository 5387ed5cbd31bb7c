package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/user/seo-report/internal/client"
	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/report"
	"github.com/user/seo-report/internal/view"
	"github.com/user/seo-report/pkg/logger"
)

const defaultBackend = "http://localhost:8080/"

var errMissingURL = errors.New("a URL is required")

// Run executes the CLI. The analyze command posts the URL to the backend,
// renders the report into an in-memory page and prints its regions.
func Run(args []string, stdout, stderr io.Writer, httpClient *http.Client) error {
	app := cli.NewApp()
	app.Name = "seoreport"
	app.Usage = "render an SEO report for a URL"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Commands = []cli.Command{
		{
			Name:      "analyze",
			Usage:     "analyze a URL and print the rendered report regions",
			ArgsUsage: "<url>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "backend",
					Usage:  "analysis endpoint",
					Value:  defaultBackend,
					EnvVar: "BACKEND_URL",
				},
				cli.DurationFlag{
					Name:  "timeout",
					Usage: "request timeout",
					Value: 2 * time.Minute,
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "print the view snapshot as JSON",
				},
				cli.StringFlag{
					Name:  "log-level",
					Usage: "log level written to stderr",
					Value: "error",
				},
			},
			Action: func(c *cli.Context) error {
				return analyze(c, stdout, httpClient)
			},
		},
	}

	return app.Run(args)
}

func analyze(c *cli.Context, stdout io.Writer, httpClient *http.Client) error {
	rawURL := c.Args().First()
	if rawURL == "" {
		_ = cli.ShowCommandHelp(c, "analyze")
		return errMissingURL
	}

	log, err := logger.New(c.String("log-level"))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	v := view.New(client.New(c.String("backend"), httpClient), render.MustNewRegistry(), log, nil, view.Options{
		RequestTimeout: c.Duration("timeout"),
	})
	defer v.Close()

	submitErr := v.Submit(context.Background(), rawURL)
	if err := printSnapshot(stdout, v.Snapshot(), c.Bool("json")); err != nil {
		return err
	}
	if submitErr != nil {
		log.Debug("analysis failed", zap.Error(submitErr))
		return fmt.Errorf("analyze %s: %w", rawURL, submitErr)
	}
	return nil
}

func printSnapshot(w io.Writer, snap view.Snapshot, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	if _, err := fmt.Fprintf(w, "state: %s\nurl: %s\n", snap.State, snap.URL); err != nil {
		return err
	}
	for _, id := range report.Regions {
		r, ok := snap.Regions[id]
		if !ok {
			continue
		}
		content := r.Text
		if content == "" {
			content = r.HTML
		}
		if content == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n[%s]\n%s\n", id, content); err != nil {
			return err
		}
	}
	return nil
}
