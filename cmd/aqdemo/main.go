// Command aqdemo runs alarm queue demonstration scenarios.
//
// Usage:
//
//	go run ./cmd/aqdemo -scenario alarm-blocking
//	go run ./cmd/aqdemo -config config.yaml -scenario file:///tmp/burst.yaml -seed 7
//	go run ./cmd/aqdemo -list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/viant/alarmq"
	"github.com/viant/alarmq/scenario"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "aqdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("aqdemo", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configURL := flags.String("config", "", "configuration URL (yaml)")
	scenarioName := flags.String("scenario", "mixed", "builtin scenario name or scenario URL")
	seed := flags.Uint64("seed", 0, "random seed, 0 uses the scenario seed or current time")
	list := flags.Bool("list", false, "list builtin scenarios")
	logLevel := flags.String("log-level", "", "log level overriding configuration")
	timeout := flags.Duration("timeout", time.Minute, "maximum run duration")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *list {
		for _, name := range scenario.Builtins() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	cfg := alarmq.DefaultConfig()
	if *configURL != "" {
		var err error
		if cfg, err = alarmq.LoadConfig(ctx, *configURL); err != nil {
			return err
		}
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	srv, err := alarmq.New(alarmq.WithConfig(cfg), alarmq.WithLogWriter(stderr))
	if err != nil {
		return err
	}
	queue, err := alarmq.QueueOf[int](srv)
	if err != nil {
		return err
	}
	aScenario, err := scenario.NewLoader().Resolve(ctx, *scenarioName)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	runner := scenario.NewRunner(queue, scenario.WithLogger(srv.Logger()), scenario.WithSeed(*seed))
	report, runErr := runner.Run(ctx, aScenario)
	if report != nil {
		printReport(stdout, report)
	}
	return runErr
}

func printReport(w io.Writer, report *scenario.Report) {
	fmt.Fprintf(w, "scenario %v (run %v, seed %d) finished in %v\n", report.Scenario, report.RunID, report.Seed, report.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, delivery := range report.Received {
		fmt.Fprintf(w, "%8v  consumer %d  %-6v %d\n", delivery.Elapsed.Round(time.Millisecond), delivery.Worker, delivery.Kind, delivery.Payload)
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	progress := &report.Progress
	fmt.Fprintf(w, "sent: %d, received: %d (alarm: %d, normal: %d), rejected: %d, blocked: %d\n",
		progress.Sent, progress.Received, progress.Alarms, progress.Normals, progress.Rejected, progress.Blocked)
	fmt.Fprintf(w, "queue size: %d, alarm present: %v\n", report.Size, report.AlarmPresent)
}
