package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/goalpost/internal"
	"github.com/2beens/goalpost/internal/config"
	"github.com/2beens/goalpost/internal/logging"
)

func main() {
	env := flag.String("env", "development", "environment: development or production")
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	quotesCsvPath := flag.String("quotes", "assets/quotes.csv", "path to the quotes CSV file")
	logFileName := flag.String("logfile", "goalpost.log", "log file name, within the logs path")
	logToStdout := flag.Bool("o", false, "additionally write logs to stdout")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Printf("load config: %s\n", err)
		os.Exit(1)
	}

	if *logToStdout {
		cfg.LogToStdout = true
	}

	logFilePath := ""
	if cfg.LogsPath != "" {
		logFilePath = filepath.Join(cfg.LogsPath, *logFileName)
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      logFilePath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "goalpost-service",
	})

	adminUsername := os.Getenv("GOALPOST_ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("GOALPOST_ADMIN_PASSWORD_HASH")
	if adminUsername == "" || adminPasswordHash == "" {
		log.Fatalln("admin username or password hash not set, aborting")
	}

	redisPassword := os.Getenv("GOALPOST_REDIS_PASS")
	if redisPassword == "" && cfg.Environment == "production" {
		log.Warnln("redis password not set in production")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled && os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("honeycomb tracing enabled, but api key not set")
	}

	versionInfo := "unknown"
	if commitHash, err := tryGetLastCommitHash(); err != nil {
		log.Warnf("get last commit hash: %s", err)
	} else {
		versionInfo = commitHash
	}
	log.Debugf("running version: %s", versionInfo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:                  cfg,
		VersionInfo:             versionInfo,
		AdminUsername:           adminUsername,
		AdminPasswordHash:       adminPasswordHash,
		RedisPassword:           redisPassword,
		HoneycombTracingEnabled: honeycombEnabled,
		QuotesCsvPath:           *quotesCsvPath,
	})
	if err != nil {
		log.Fatalf("create server: %s", err)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, syscall.SIGINT, syscall.SIGTERM)

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
