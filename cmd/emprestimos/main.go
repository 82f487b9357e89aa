package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Gms006/emprestimos/internal/config"
	"github.com/Gms006/emprestimos/internal/excel"
	"github.com/Gms006/emprestimos/internal/report"
	"github.com/Gms006/emprestimos/pkg/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
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

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
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

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
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

func validateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatXLSX:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: expected %s, %s, or %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatXLSX)
	}
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx")
	outputFileFlag := flag.String("output-file", "", "destination file for xlsx output")
	filterFlag := flag.String("filter", string(report.FilterAll), "installment filter: all, current, non-current")
	journalFlag := flag.Bool("journal", false, "print suggested accounting entries after the pretty report")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	if err := validateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Parse the loan terms and the classification base date.
	terms, err := conf.Terms()
	if err != nil {
		logger.Fatal("failed to parse loan terms",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	baseDate, err := conf.ParseBaseDate()
	if err != nil {
		logger.Fatal("failed to parse base date",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Build the schedule and classify it.
	result, err := report.Build(terms, baseDate)
	if err != nil {
		logger.Fatal("failed to compute amortization schedule",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	filter := report.Filter(*filterFlag)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		report.PrettyFormat(result, filter)
		if *journalFlag {
			fmt.Println()
			fmt.Print(report.JournalEntries(result))
		}
	case constants.OutputFormatCSV:
		report.CsvFormat(result, filter)
	case constants.OutputFormatXLSX:
		outputFile := conf.Output.File
		if *outputFileFlag != "" {
			outputFile = *outputFileFlag
		}
		if outputFile == "" {
			outputFile = "tabela_amortizacao.xlsx"
		}
		data, err := excel.ScheduleXLSX(result.Terms, result.Schedule, result.Classification)
		if err != nil {
			logger.Fatal("failed to build workbook",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if err := os.WriteFile(outputFile, data, 0o644); err != nil {
			logger.Fatal("failed to write workbook",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("workbook written",
			zap.String("op", "main"),
			zap.String("file", outputFile),
		)
	}
}
