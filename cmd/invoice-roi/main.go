package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iwvelando/invoice-roi/internal/calculator"
	"github.com/iwvelando/invoice-roi/internal/config"
	"github.com/iwvelando/invoice-roi/internal/logging"
	"github.com/iwvelando/invoice-roi/internal/report"
	"github.com/iwvelando/invoice-roi/internal/scenario"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/iwvelando/invoice-roi/pkg/output"
	"github.com/iwvelando/invoice-roi/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	list := flag.Bool("list", false, "list saved scenarios and exit")
	loadID := flag.Int64("load", 0, "load the saved scenario with this id as the working input")
	save := flag.Bool("save", false, "save the working input as a new scenario")
	reportPath := flag.String("report", "", "write a PDF report to this path")
	email := flag.String("email", "", "email address required to download the report")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("{\"op\": \"main\", \"level\": \"warn\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
	}

	// A missing default config file means "use defaults"; an explicit path must exist.
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		if _, statErr := os.Stat(*configLocation); *configLocation == constants.DefaultConfigFile && errors.Is(statErr, fs.ErrNotExist) {
			conf, err = config.LoadEnvironment()
		}
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			os.Exit(1)
		}
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	ctx := context.Background()
	input := conf.Scenario

	needsStore := *list || *loadID != 0 || *save
	if needsStore {
		err = scenario.WithStore(ctx, conf.Database.Path, logger, func(store *scenario.Store) error {
			if *list {
				summaries, err := store.List(ctx)
				if err != nil {
					return err
				}
				return output.ScenarioList(os.Stdout, summaries)
			}

			if *loadID != 0 {
				record, err := store.Fetch(ctx, *loadID)
				if err != nil {
					return err
				}
				input = record.Input()
				logger.Info("scenario loaded",
					zap.String("op", "main"),
					zap.Int64("id", record.ID),
					zap.String("name", record.ScenarioName),
				)
			}

			if *save {
				if err := validation.ValidateScenarioName(input.ScenarioName); err != nil {
					return err
				}
				id, err := store.Create(ctx, input)
				if err != nil {
					return err
				}
				fmt.Printf("Scenario '%s' saved! (id %d)\n", input.ScenarioName, id)
			}
			return nil
		})
		if err != nil {
			logger.Fatal("scenario store operation failed",
				zap.String("op", "main"),
				zap.String("database", conf.Database.Path),
				zap.Error(err),
			)
		}
		if *list {
			return
		}
	}

	results := output.NewResults(input)
	for _, warning := range results.Warnings {
		logger.Warn("Input warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if err := output.Write(os.Stdout, outputFormat, results); err != nil {
		logger.Fatal("failed to write results",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *reportPath != "" {
		if err := writeReport(logger, *reportPath, *email, input, results.Result); err != nil {
			logger.Fatal("failed to write report",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

// writeReport renders the PDF report for the input. The report is only
// released once an email address has been provided.
func writeReport(logger *zap.Logger, path, email string, in calculator.ScenarioInput, result calculator.Result) error {
	if email == "" {
		return errors.New("enter your email address with -email to enable the report download")
	}

	doc, err := report.RenderPDF(report.Format(in, result))
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		path = filepath.Join(path, report.FileName(in))
	}
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}

	logger.Info("lead captured",
		zap.String("op", "main.writeReport"),
		zap.String("email", email),
		zap.String("report", path),
	)
	return nil
}
