package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/shepherdjay/gwg-bot/app"
	"github.com/shepherdjay/gwg-bot/config"
)

func main() {
	cliApp := &cli.App{
		Name:  "gwg-bot",
		Usage: "scores guess-the-winning-goal rounds and keeps the season leaderboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
			&cli.BoolFlag{
				Name:  "prod",
				Usage: "run against NATS JetStream",
			},
			&cli.BoolFlag{
				Name:  "test",
				Usage: "run with the in-memory event bus",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "once",
				Usage: "run a single poll pass and exit",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("prod") && c.Bool("test") {
		return errors.New("--prod and --test are mutually exclusive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.NewApp(ctx, cfg, app.Options{
		InMemory: c.Bool("test"),
		Debug:    c.Bool("debug"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	if c.Bool("once") {
		return application.RunOnce(ctx)
	}
	return application.Run(ctx)
}
