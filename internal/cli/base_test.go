package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// MockConfig implements Configurable for testing
type MockConfig struct {
	ConfigFile string
	LEDPin     string
	LoadErr    error
	Loaded     bool
}

func (m *MockConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&m.ConfigFile, "config", "", "Config file")
	fs.StringVar(&m.LEDPin, "led-pin", "PIN11", "LED pin")
}

func (m *MockConfig) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	m.Loaded = true
	return m.LoadErr
}

// MockHandler implements CommandHandler for testing
type MockHandler struct {
	StartCalled bool
	StartArgs   []string
	StartError  error
}

func (m *MockHandler) Start(config Configurable, args []string) error {
	m.StartCalled = true
	m.StartArgs = args
	return m.StartError
}

func TestParseArgsStandard_Version(t *testing.T) {
	cli := NewBaseCLI(&bytes.Buffer{}, &bytes.Buffer{})
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg := &MockConfig{}
	cmdArgs, err := cli.ParseArgsStandardWithFlagSet([]string{"--version"}, func() Configurable { return cfg }, fs)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cmdArgs.Command != "version" {
		t.Errorf("Expected command 'version', got '%s'", cmdArgs.Command)
	}
	if cfg.Loaded {
		t.Error("Config should not be loaded for version command")
	}
}

func TestParseArgsStandard_Start(t *testing.T) {
	cli := NewBaseCLI(&bytes.Buffer{}, &bytes.Buffer{})
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	args := []string{"--led-pin", "GPIO22", "letters", "Hi!"}
	cmdArgs, err := cli.ParseArgsStandardWithFlagSet(args, func() Configurable { return &MockConfig{} }, fs)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cmdArgs.Command != "start" {
		t.Errorf("Expected command 'start', got '%s'", cmdArgs.Command)
	}

	config, ok := cmdArgs.Config.(*MockConfig)
	if !ok {
		t.Fatal("Config is not of expected type")
	}
	if config.LEDPin != "GPIO22" {
		t.Errorf("Expected LEDPin 'GPIO22', got '%s'", config.LEDPin)
	}
	if !config.Loaded {
		t.Error("Config should have been loaded")
	}
	if strings.Join(cmdArgs.Args, " ") != "letters Hi!" {
		t.Errorf("Expected positional args [letters Hi!], got %v", cmdArgs.Args)
	}
}

func TestParseArgsStandard_LoadError(t *testing.T) {
	cli := NewBaseCLI(&bytes.Buffer{}, &bytes.Buffer{})
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	loadErr := errors.New("boom")
	_, err := cli.ParseArgsStandardWithFlagSet(nil, func() Configurable { return &MockConfig{LoadErr: loadErr} }, fs)
	if !errors.Is(err, loadErr) {
		t.Errorf("Expected wrapped load error, got %v", err)
	}
}

func TestExecute_Version(t *testing.T) {
	stdout := &bytes.Buffer{}
	cli := NewBaseCLI(stdout, &bytes.Buffer{})
	handler := &MockHandler{}

	err := cli.Execute(&CommandArgs{Command: "version", Config: &MockConfig{}}, handler)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if handler.StartCalled {
		t.Error("Start should not have been called for version command")
	}
	if stdout.Len() == 0 {
		t.Error("Expected version output")
	}
}

func TestExecute_Start(t *testing.T) {
	cli := NewBaseCLI(&bytes.Buffer{}, &bytes.Buffer{})
	handler := &MockHandler{}

	cmdArgs := &CommandArgs{
		Command: "start",
		Config:  &MockConfig{},
		Args:    []string{"led"},
	}

	if err := cli.Execute(cmdArgs, handler); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !handler.StartCalled {
		t.Error("Start should have been called for start command")
	}
	if len(handler.StartArgs) != 1 || handler.StartArgs[0] != "led" {
		t.Errorf("Expected args [led], got %v", handler.StartArgs)
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	cli := NewBaseCLI(&bytes.Buffer{}, &bytes.Buffer{})
	handler := &MockHandler{}

	err := cli.Execute(&CommandArgs{Command: "unknown", Config: &MockConfig{}}, handler)
	if err == nil {
		t.Fatal("Expected error for unknown command")
	}

	if handler.StartCalled {
		t.Error("Start should not have been called for unknown command")
	}
}
