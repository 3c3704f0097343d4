package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"zbxreport/internal/archive"
	"zbxreport/internal/config"
	"zbxreport/internal/export"
	"zbxreport/internal/logger"
	"zbxreport/internal/report"
	"zbxreport/internal/types"
	"zbxreport/internal/version"
	"zbxreport/internal/zabbix"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	server := flag.String("server", "", "Zabbix server URL")
	username := flag.String("username", "", "Zabbix username")
	hosts := flag.String("hosts", "", "Comma-separated host display names")
	daysBack := flag.Int("days-back", 31, "Number of days to look back")
	timezone := flag.String("timezone", "", "IANA timezone for working hours")
	output := flag.String("output", "", "Report output path (.xlsx or .csv)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	// Show version if requested
	if *showVersion {
		info := version.GetInfo()
		fmt.Println(info.String())
		os.Exit(0)
	}

	// Load credentials from an optional .env beside the process
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		exitFailure(fmt.Errorf("failed to load config: %w", err))
	}

	// Apply command line overrides for flags that were actually set
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			cfg.Zabbix.Server = *server
		case "username":
			cfg.Zabbix.Username = *username
		case "hosts":
			cfg.Report.Hosts = splitHosts(*hosts)
		case "days-back":
			cfg.Report.DaysBack = *daysBack
		case "timezone":
			cfg.Report.Timezone = *timezone
		case "output":
			cfg.Report.Output = *output
		}
	})

	// Ask for the password last; there is no flag for it on purpose
	if cfg.Zabbix.Password == "" {
		if password, err := promptPassword(); err == nil {
			cfg.Zabbix.Password = password
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		exitFailure(err)
	}

	// Initialize logger
	zlog, err := logger.New(&cfg.Log)
	if err != nil {
		exitFailure(fmt.Errorf("failed to initialize logger: %w", err))
	}
	defer func() {
		_ = zlog.Sync()
	}()

	runID := uuid.New().String()
	zlog = zlog.Named("zbxreport").With(zap.String("run_id", runID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := run(ctx, cfg, runID, zlog)
	if err != nil {
		zlog.Error("Run failed", zap.Error(err))
		exitFailure(err)
	}

	_ = json.NewEncoder(os.Stdout).Encode(result)
}

// run executes the whole pipeline: connect, collect, export, archive
func run(ctx context.Context, cfg *config.Config, runID string, zlog *zap.Logger) (*types.Result, error) {
	startedAt := time.Now()

	client := zabbix.NewClient(cfg.Zabbix.Server, cfg.Zabbix.Timeout, zlog)
	zlog.Info("Connecting to Zabbix API",
		zap.String("url", client.URL()))

	// The version probe is unauthenticated; a failure here is not fatal,
	// the login below surfaces the real error
	if apiVersion, err := client.Version(ctx); err != nil {
		zlog.Warn("Failed to read API version", zap.Error(err))
	} else {
		zlog.Info("Zabbix API version", zap.String("version", apiVersion))
	}

	if err := client.Login(ctx, cfg.Zabbix.Username, cfg.Zabbix.Password); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	// Best-effort logout once the run is over
	defer func() {
		logoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Logout(logoutCtx); err != nil {
			zlog.Warn("Failed to logout", zap.Error(err))
		}
	}()

	rows, summaries, err := report.NewRunner(client, zlog).Run(ctx, cfg.Report.Hosts, cfg.Report.Timezone, cfg.Report.DaysBack)
	if err != nil {
		return nil, err
	}

	if err := export.NewWriter(zlog).WriteTable(cfg.Report.Output, rows); err != nil {
		return nil, err
	}

	if cfg.Archive.Enabled {
		if err := archiveRun(ctx, cfg, runID, startedAt, rows, summaries, zlog); err != nil {
			return nil, err
		}
	}

	metrics := make([][]any, 0, len(rows))
	for _, row := range rows {
		metrics = append(metrics, row.Values())
	}

	return &types.Result{
		Changed:   true,
		RunID:     runID,
		ExcelFile: cfg.Report.Output,
		Metrics:   metrics,
		Msg:       fmt.Sprintf("Successfully collected metrics for %d hosts", len(cfg.Report.Hosts)),
	}, nil
}

// archiveRun persists the finished run
func archiveRun(ctx context.Context, cfg *config.Config, runID string, startedAt time.Time, rows []types.Row, summaries []types.MetricSummary, zlog *zap.Logger) error {
	store, err := archive.New(&cfg.Archive, zlog)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			zlog.Warn("Failed to close archive", zap.Error(err))
		}
	}()

	rec := &archive.Run{
		RunID:     runID,
		StartedAt: startedAt,
		Hosts:     cfg.Report.Hosts,
		DaysBack:  cfg.Report.DaysBack,
		Timezone:  cfg.Report.Timezone,
		Output:    cfg.Report.Output,
		Rows:      rows,
		Summaries: summaries,
	}

	if err := store.SaveRun(ctx, rec); err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	return nil
}

// promptPassword reads the password without echoing it back.
// The prompt goes to stderr; stdout carries the result document.
func promptPassword() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Zabbix password: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// splitHosts splits a comma-separated host list
func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// exitFailure prints the failure document on stdout and exits
func exitFailure(err error) {
	result := types.Result{
		Failed: true,
		Msg:    fmt.Sprintf("Error collecting metrics: %s", err),
	}
	_ = json.NewEncoder(os.Stdout).Encode(&result)
	os.Exit(1)
}
