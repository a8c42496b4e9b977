package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"freqfilter/pkg/config"
	"freqfilter/pkg/pipeline"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "freqfilter.yaml", "Path to the YAML configuration file")
	input := flag.String("input", "", "Grayscale image to filter (overrides config)")
	output := flag.String("output", "", "Directory for results (overrides config)")
	cutoff := flag.Float64("cutoff", 0, "Filter radius in frequency pixels (overrides config)")
	workers := flag.Int("workers", -1, "Goroutines used to build masks, 0 for all cores (overrides config)")
	sweep := flag.Bool("sweep", false, "Score every cutoff listed in the config sweep section")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags set on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output.Dir = *output
		case "cutoff":
			cfg.Filter.Cutoff = *cutoff
		case "workers":
			cfg.Filter.Workers = *workers
		case "sweep":
			cfg.Sweep.Enabled = *sweep
		case "verbose":
			cfg.Logging.Verbose = *verbose
		}
	})

	logger := initLogger(cfg.Logging.Verbose, cfg.Logging.JSON)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	params := &pipeline.Params{
		InputPath:   cfg.Input,
		OutputDir:   cfg.Output.Dir,
		Cutoff:      cfg.Filter.Cutoff,
		Workers:     cfg.Filter.Workers,
		SaveSpectra: cfg.Output.SaveSpectra,
		SavePanel:   cfg.Output.SavePanel,
		Logger:      logger,
	}
	if cfg.Sweep.Enabled {
		params.SweepCutoffs = cfg.Sweep.Cutoffs
	}

	p := pipeline.NewPipeline(params)

	startTime := time.Now()
	if err := p.Process(); err != nil {
		logger.WithError(err).Fatal("Filtering failed")
	}
	logger.WithField("elapsed", time.Since(startTime).String()).Debug("Pipeline finished")

	result := p.GetResult()
	fmt.Printf("Cutoff = %g\n", result.Cutoff)
	fmt.Printf("MSE low-pass: %.6f\n", result.LowMSE)
	fmt.Printf("MSE high-pass: %.6f\n", result.HighMSE)

	if len(result.Sweep) > 0 {
		fmt.Println("\nCutoff sweep:")
		for _, point := range result.Sweep {
			fmt.Printf("  cutoff %-8g low %.6f  high %.6f\n", point.Cutoff, point.LowMSE, point.HighMSE)
		}
	}
}

// initLogger initializes the logger with the appropriate level and formatter
func initLogger(verbose, json bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if json {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
