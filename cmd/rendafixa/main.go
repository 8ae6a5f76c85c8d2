package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rendafixa-simulator/internal/config"
	"rendafixa-simulator/internal/report"
	"rendafixa-simulator/internal/server"
	"rendafixa-simulator/pkg/constants"
	"rendafixa-simulator/pkg/output"
	"rendafixa-simulator/pkg/simulation"
	"rendafixa-simulator/pkg/validation"
	"rendafixa-simulator/pkg/version"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "console"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Route logs to a file when configured so terminal output stays clean.
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rendafixa",
		Short:        "Fixed-income investment simulator",
		Long:         "Projects fixed-income product balances month by month under a constant CDI/IPCA scenario and compares net results after regressive income tax.",
		Version:      version.Formatted(),
		SilenceUsage: true,
		RunE:         runSimulate,
	}

	rootCmd.Flags().StringP("config", "c", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.Flags().StringP("output-format", "o", "", "type of output override: pretty, csv")
	rootCmd.Flags().StringP("log-level", "l", "", "log level override (debug, info, warn, error)")
	rootCmd.Flags().StringSliceP("report-type", "y", nil, "report files to write: csv, json, pdf")
	rootCmd.Flags().StringP("report-name", "n", "", "base name for report files (without extension)")
	rootCmd.Flags().StringP("dir", "d", "", "directory for report files (default: current directory)")

	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	configLocation, _ := cmd.Flags().GetString("config")
	outputFormatFlag, _ := cmd.Flags().GetString("output-format")
	logLevel, _ := cmd.Flags().GetString("log-level")
	reportTypes, _ := cmd.Flags().GetStringSlice("report-type")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportDir, _ := cmd.Flags().GetString("dir")

	conf, err := config.LoadConfiguration(configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	if err := validation.ValidateReportTypes(reportTypes); err != nil {
		return err
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	conf.ApplyDefaults()

	engine := simulation.NewEngine(logger)
	batch, err := engine.ProjectAll(conf.ToProducts(), conf.ToPlan(), conf.ToScenario())
	if err != nil {
		return fmt.Errorf("failed to run simulation: %w", err)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(batch)
	case constants.OutputFormatCSV:
		output.CsvFormat(batch)
	}

	for _, reportType := range reportTypes {
		var path string
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case constants.ReportTypeCSV:
			path, err = report.WriteCSV(batch, reportName, reportDir)
		case constants.ReportTypeJSON:
			path, err = report.WriteJSON(batch, reportName, reportDir)
		case constants.ReportTypePDF:
			path, err = report.WritePDF(batch, reportName, reportDir)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s report: %w", reportType, err)
		}
		logger.Info("report written",
			zap.String("op", "main"),
			zap.String("type", reportType),
			zap.String("path", path),
		)
	}

	return nil
}

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server with the web UI and simulation API",
		RunE:  runServe,
	}

	serveCmd.Flags().String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().String("listen", "", "listen address override (e.g., :8080)")
	serveCmd.Flags().String("log-level", "", "log level override (debug, info, warn, error)")
	return serveCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	serverConfigPath, _ := cmd.Flags().GetString("server-config")
	listen, _ := cmd.Flags().GetString("listen")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg, err := server.LoadConfig(serverConfigPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Address = listen
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, cfg.UploadSizeBytes(), version.Formatted())

	logger.Info("starting HTTP server",
		zap.String("op", "serve"),
		zap.String("address", cfg.Address),
	)
	return http.ListenAndServe(cfg.Address, handler)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
