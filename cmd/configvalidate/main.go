package main

import (
	"fmt"
	"os"

	"github.com/larsks/pilab/internal/guessgame"
	"github.com/larsks/pilab/internal/hat"
	"github.com/larsks/pilab/internal/pulse"
	"github.com/larsks/pilab/internal/touchtoggle"
	"github.com/larsks/pilab/internal/version"
	"github.com/spf13/pflag"
)

// validatable is implemented by every program config.
type validatable interface {
	SetStrictMode(strict bool)
	LoadConfigWithFlagSet(fs *pflag.FlagSet) error
	Validate() error
}

var configTypes = map[string]func(configFile string) validatable{
	"guess": func(configFile string) validatable {
		cfg := guessgame.NewConfig()
		cfg.ConfigFile = configFile
		return cfg
	},
	"touch-toggle": func(configFile string) validatable {
		cfg := touchtoggle.NewConfig()
		cfg.ConfigFile = configFile
		return cfg
	},
	"pulse": func(configFile string) validatable {
		cfg := pulse.NewConfig()
		cfg.ConfigFile = configFile
		return cfg
	},
	"hat": func(configFile string) validatable {
		cfg := hat.NewConfig()
		cfg.ConfigFile = configFile
		return cfg
	},
}

func main() {
	var (
		versionFlag = pflag.Bool("version", false, "Show version and exit")
		configType  = pflag.String("type", "", "Configuration type: guess, touch-toggle, pulse or hat")
		configFile  = pflag.String("config", "", "Configuration file to validate")
		helpFlag    = pflag.BoolP("help", "h", false, "Show help")
	)

	pflag.Parse()

	if *versionFlag {
		version.ShowVersion()
		os.Exit(0)
	}

	if *helpFlag {
		usage()
		os.Exit(0)
	}

	if *configFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --config flag is required\n\n")
		usage()
		os.Exit(1)
	}

	if *configType == "" {
		fmt.Fprintf(os.Stderr, "Error: --type flag is required\n\n")
		usage()
		os.Exit(1)
	}

	if _, err := os.Stat(*configFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: Configuration file %s does not exist\n", *configFile)
		os.Exit(1)
	}

	if err := validate(*configType, *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Configuration file %s is valid for %s\n", *configFile, *configType)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s --type TYPE --config FILE\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "A tool for validating pilab configuration files.\n\n")

	fmt.Fprintf(os.Stderr, "Options:\n")
	pflag.PrintDefaults()

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s --type guess --config guess.toml\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s --type hat --config hat.toml\n", os.Args[0])
}

// validate loads configFile in strict mode, so unknown keys are errors, and
// then checks the values.
func validate(configType, configFile string) error {
	newConfig, ok := configTypes[configType]
	if !ok {
		return fmt.Errorf("unknown configuration type '%s'. Must be one of 'guess', 'touch-toggle', 'pulse' or 'hat'", configType)
	}

	cfg := newConfig(configFile)
	cfg.SetStrictMode(true)

	if err := cfg.LoadConfigWithFlagSet(nil); err != nil {
		return fmt.Errorf("failed to load %s configuration: %v", configType, err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s configuration validation failed: %v", configType, err)
	}

	return nil
}
