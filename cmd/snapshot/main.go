package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/match-center/internal/app"
	"github.com/riskibarqy/match-center/internal/config"
	"github.com/riskibarqy/match-center/internal/platform/logging"
	"github.com/riskibarqy/match-center/internal/usecase"
)

type dateList []string

func (d *dateList) String() string {
	return strings.Join(*d, ",")
}

func (d *dateList) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	var (
		dates   dateList
		raw     bool
		timeout time.Duration
	)
	flag.Var(&dates, "date", "Date key forwarded to the listing page, e.g. 06/15/2024 (repeatable)")
	flag.BoolVar(&raw, "raw", false, "Include the raw extracted records in the output")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Overall deadline for all snapshots")
	flag.Parse()

	if len(dates) == 0 {
		fmt.Fprintln(os.Stderr, "at least one -date is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewConsole(os.Stderr, cfg.LogLevel).Named("snapshot")
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	service, err := app.NewMatchService(cfg, logger)
	if err != nil {
		logger.Error("build match service", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snapshots, err := service.GetMatchesForDates(ctx, dates)
	if err != nil {
		logger.Error("build snapshots", "error", err)
		os.Exit(1)
	}
	if !raw {
		for i := range snapshots {
			snapshots[i].RawMatchesJSON = ""
		}
	}

	if err := writeSnapshots(os.Stdout, snapshots); err != nil {
		logger.Error("write snapshots", "error", err)
		os.Exit(1)
	}
}

func writeSnapshots(w io.Writer, snapshots []usecase.MatchCenter) error {
	out, err := sonic.ConfigStd.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshots: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
