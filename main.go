package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dataforge/pkg/logging"
)

// Configuration holds the settings shared by every command. Each field can
// come from a flag, a DATAFORGE_* environment variable or a config file, in
// that order of precedence.
type Configuration struct {
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	LogFile   string `mapstructure:"log-file"`
	Arrow     bool   `mapstructure:"arrow"`
	Limit     int    `mapstructure:"limit"`
}

var (
	v      = viper.New()
	config Configuration
)

func main() {
	root := newRootCommand()
	addCommands(root)

	err := root.Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dataforge",
		Short:         "Inspect and combine tabular data files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfiguration()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "WARN", "log level: DEBUG, INFO, WARN or ERROR")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.Bool("arrow", false, "print the Arrow schema of the result")
	flags.Int("limit", 20, "maximum rows to print (0 prints all)")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("DATAFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return root
}

func loadConfiguration() error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return fmt.Errorf("decode configuration: %w", err)
	}

	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	return logging.Init(logging.Config{
		Level:      level,
		OutputPath: config.LogFile,
		Format:     config.LogFormat,
	})
}
