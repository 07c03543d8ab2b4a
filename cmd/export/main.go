// Command export writes a CSV snapshot of the account roster with
// per-currency balances, for hand-off to the finance team.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/blexpay/backoffice/internal/account"
	"github.com/blexpay/backoffice/internal/config"
	"github.com/blexpay/backoffice/internal/export"
	"github.com/blexpay/backoffice/internal/infra"
	"github.com/blexpay/backoffice/internal/logging"
	"github.com/blexpay/backoffice/internal/wallet"
)

func main() {
	var (
		out       = flag.String("out", "accounts.csv", "output file path, - for stdout")
		delimiter = flag.String("delimiter", ",", "field delimiter: , or ;")
		all       = flag.Bool("all", false, "include closed accounts (newest first); default exports active accounts ordered by name")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	if len(*delimiter) != 1 {
		logger.Error("delimiter must be a single character", "delimiter", *delimiter)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.StatementTimeout)
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	writer, err := export.NewWriter(
		account.NewPostgresRepository(db),
		wallet.NewPostgresRepository(db),
		rune((*delimiter)[0]),
	)
	if err != nil {
		logger.Error("build writer", "error", err)
		os.Exit(1)
	}

	dest := os.Stdout
	if *out != "-" {
		dest, err = os.Create(*out)
		if err != nil {
			logger.Error("create output file", "path", *out, "error", err)
			os.Exit(1)
		}
		defer dest.Close()
	}

	if *all {
		err = writer.WriteAll(ctx, dest)
	} else {
		err = writer.WriteActive(ctx, dest)
	}
	if err != nil {
		logger.Error("write snapshot", "error", err)
		os.Exit(1)
	}

	if *out != "-" {
		logger.Info("snapshot written", "path", *out, "all", *all)
	}
}
