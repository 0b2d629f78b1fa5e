/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suparena/docrepo/internal/config"
	"github.com/suparena/docrepo/internal/items"
	"github.com/suparena/docrepo/internal/logger"
)

// app carries the state shared by the subcommands. The service is built on
// first use so that commands such as version never touch a backend.
type app struct {
	configPath string
	out        io.Writer
	errOut     io.Writer

	service *items.Service
	closer  closeFunc
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, a *app, args []string, stderr io.Writer) int {
	a.errOut = stderr

	root := rootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if closeErr := a.close(ctx); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(stderr, describeError(err))
		return exitCode(err)
	}
	return exitOK
}

func rootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "itemctl",
		Short:         "Manage items in a document store",
		Long:          "itemctl creates, reads, updates and deletes items stored in MongoDB, DynamoDB or memory.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")

	root.AddCommand(
		createCmd(a),
		getCmd(a),
		listCmd(a),
		updateCmd(a),
		deleteCmd(a),
		versionCmd(a),
	)

	return root
}

// itemService returns the service, opening the configured backend on first call.
func (a *app) itemService(ctx context.Context) (*items.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, a.errOut)
	if err != nil {
		return nil, err
	}

	itemsCtx, closer, err := openBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("backend", cfg.Backend).Msg("backend opened")

	a.closer = closer
	a.service = items.NewService(itemsCtx, log.With().Str("component", "items").Logger())
	return a.service, nil
}

func (a *app) close(ctx context.Context) error {
	if a.closer == nil {
		return nil
	}
	closer := a.closer
	a.closer = nil
	return closer(context.WithoutCancel(ctx))
}
