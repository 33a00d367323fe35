// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ChainSafe/parachain-scheduler/dot/parachain/configuration"
	"github.com/ChainSafe/parachain-scheduler/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix   = "SCHEDULER"
	tablePrefix = "scheduler"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

// NewRootCommand creates the root command
func NewRootCommand() (*cobra.Command, error) {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Parachain core scheduler",
		Long: `Scheduler assigns parachain claims to availability cores block after block.
Usage:
	scheduler run --blocks 600 --session-length 100 --leases 1000,1001
	scheduler inspect --base-path ~/.scheduler
	scheduler export --output snapshot.bin`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return concatCobraCmdFuncs(
				func(cmd *cobra.Command, args []string) error {
					return configureViper(v)
				},
				func(cmd *cobra.Command, args []string) error {
					return configureLogger(v)
				},
			)(cmd, args)
		},
	}

	if err := addRootFlags(cmd, v); err != nil {
		return nil, err
	}

	cmd.AddCommand(
		newRunCommand(v),
		newInspectCommand(v),
		newExportCommand(v),
	)

	return cmd, nil
}

// addRootFlags adds the root flags to the command
func addRootFlags(cmd *cobra.Command, v *viper.Viper) error {
	if err := addStringFlagBindViper(cmd, v,
		"base-path",
		"",
		"Data directory holding the scheduler database and config file",
		"base-path"); err != nil {
		return fmt.Errorf("failed to add --base-path flag: %w", err)
	}
	if err := addStringFlagBindViper(cmd, v,
		"config",
		"",
		"Path to the config file, defaulting to config.toml in the base path",
		"config"); err != nil {
		return fmt.Errorf("failed to add --config flag: %w", err)
	}
	if err := addStringFlagBindViper(cmd, v,
		"log-level",
		log.Info.String(),
		"Global log level (trace, debug, info, warn, error, critical)",
		"log-level"); err != nil {
		return fmt.Errorf("failed to add --log-level flag: %w", err)
	}
	if err := addStringFlagBindViper(cmd, v,
		"log-format",
		log.FormatConsole.String(),
		"Log format (console, plain)",
		"log-format"); err != nil {
		return fmt.Errorf("failed to add --log-format flag: %w", err)
	}

	return addHostConfigurationFlags(cmd, v)
}

// addHostConfigurationFlags adds the host configuration flags,
// bound to the host.* viper keys.
func addHostConfigurationFlags(cmd *cobra.Command, v *viper.Viper) error {
	defaults := configuration.Default()

	flags := []struct {
		name         string
		defaultValue uint32
		usage        string
	}{
		{"group-rotation-frequency", uint32(defaults.GroupRotationFrequency),
			"Blocks between two rotations of the validator groups across cores"},
		{"paras-availability-period", uint32(defaults.ParasAvailabilityPeriod),
			"Blocks after which a candidate not yet available can time out"},
		{"scheduling-lookahead", defaults.SchedulingLookahead,
			"Number of claims queued ahead per core"},
		{"on-demand-ttl", uint32(defaults.OnDemandTTL),
			"Blocks an on-demand claim stays in the claim queue"},
		{"on-demand-retries", defaults.OnDemandRetries,
			"Number of availability timeouts tolerated for an on-demand claim"},
		{"max-validators-per-core", 0,
			"Maximum validators per core, 0 to let the assignment provider decide the core count"},
		{"coretime-cores", defaults.CoretimeCores,
			"Number of on-demand cores besides the leased cores"},
	}

	for _, flag := range flags {
		if err := addUint32FlagBindViper(cmd, v,
			flag.name,
			flag.defaultValue,
			flag.usage,
			"host."+flag.name); err != nil {
			return fmt.Errorf("failed to add --%s flag: %w", flag.name, err)
		}
	}
	return nil
}

// configureViper reads the config file if any, and the
// environment variables prefixed with SCHEDULER_.
func configureViper(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(v.GetString("base-path"))
	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func configureLogger(v *viper.Viper) error {
	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	format, err := log.ParseFormat(v.GetString("log-format"))
	if err != nil {
		return fmt.Errorf("failed to parse log format: %w", err)
	}

	log.Patch(log.SetLevel(level), log.SetFormat(format))
	return nil
}

// parseHostConfiguration returns the validated host configuration,
// built from the defaults overridden by the config file, environment
// variables and flags.
func parseHostConfiguration(v *viper.Viper) (config configuration.HostConfiguration, err error) {
	settings := struct {
		Host configuration.HostConfiguration `mapstructure:"host"`
	}{
		Host: configuration.Default(),
	}

	err = v.Unmarshal(&settings)
	if err != nil {
		return config, fmt.Errorf("failed to unmarshal host configuration: %w", err)
	}

	err = settings.Host.Validate()
	if err != nil {
		return config, err
	}
	return settings.Host, nil
}

// databasePath returns the path of the badger database
// in the base path.
func databasePath(v *viper.Viper) string {
	basePath := v.GetString("base-path")
	if basePath == "" {
		basePath = "."
	}
	return filepath.Join(basePath, "db")
}
