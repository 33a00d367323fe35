// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChainSafe/parachain-scheduler/dot/parachain/configuration"
	"github.com/ChainSafe/parachain-scheduler/dot/parachain/scheduler"
	schedulermetrics "github.com/ChainSafe/parachain-scheduler/dot/parachain/scheduler/metrics"
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/ChainSafe/parachain-scheduler/internal/database/badger"
	"github.com/ChainSafe/parachain-scheduler/internal/metrics"
	"github.com/ChainSafe/parachain-scheduler/internal/simulation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scheduler over simulated relay chain blocks",
		Long: `run plays relay chain blocks against the scheduler, backing candidates
on free cores and concluding or timing them out at random.
The scheduler state is persisted in the base path database, unless
--in-memory is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execRun(cmd, v)
		},
	}

	cmd.Flags().Uint32("first-block", 1, "Number of the first block played")
	cmd.Flags().Uint32("blocks", 100, "Number of blocks to play")
	cmd.Flags().Uint32("session-length", 50, "Number of blocks per session")
	cmd.Flags().Uint32("validators", 10, "Number of validators per session")
	cmd.Flags().Float64("backing-probability", 0.9, "Probability a scheduled para gets a candidate backed")
	cmd.Flags().Float64("availability-probability", 0.7, "Probability an occupied core becomes available")
	cmd.Flags().Float64("order-probability", 0.5, "Probability an on-demand order is placed in a block")
	cmd.Flags().UintSlice("leases", []uint{1000, 1001}, "Para ids leasing a bulk core each")
	cmd.Flags().UintSlice("on-demand-paras", []uint{2000, 2001, 2002}, "Para ids placing on-demand orders")
	cmd.Flags().Uint32("next-scheduling-lookahead", 0,
		"Scheduling lookahead activated at the first session change, 0 to keep it unchanged")
	cmd.Flags().Int64("seed", 1, "Seed of the pseudo random decisions")
	cmd.Flags().Bool("in-memory", false, "Keep the scheduler database in memory only")
	cmd.Flags().String("metrics-address", "", "Address to serve Prometheus metrics on, for example localhost:9876")

	return cmd
}

// execRun executes the run command
func execRun(cmd *cobra.Command, v *viper.Viper) (err error) {
	config, err := parseHostConfiguration(v)
	if err != nil {
		return err
	}

	settings, err := parseSimulationSettings(cmd)
	if err != nil {
		return err
	}

	leases, err := cmd.Flags().GetUintSlice("leases")
	if err != nil {
		return fmt.Errorf("failed to get --leases: %w", err)
	}

	inMemory, err := cmd.Flags().GetBool("in-memory")
	if err != nil {
		return fmt.Errorf("failed to get --in-memory: %w", err)
	}

	databaseSettings := badger.Settings{InMemory: &inMemory}
	if !inMemory {
		databaseSettings.Path = databasePath(v)
	}
	db, err := badger.New(databaseSettings)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		closeErr := db.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	configStore, err := configuration.NewStore(config)
	if err != nil {
		return err
	}
	provider := simulation.NewProvider(configStore, uintsToParaIDs(leases))

	registry := prometheus.NewRegistry()
	schedulerMetrics, err := schedulermetrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to create scheduler metrics: %w", err)
	}

	metricsAddress, err := cmd.Flags().GetString("metrics-address")
	if err != nil {
		return fmt.Errorf("failed to get --metrics-address: %w", err)
	}
	if metricsAddress != "" {
		server := metrics.NewServer(metricsAddress, registry)
		err = server.Start()
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			stopErr := server.Stop()
			if stopErr != nil {
				logger.Warnf("failed to stop metrics server: %s", stopErr)
			}
		}()
	}

	store := scheduler.NewStore(db.NewTable(tablePrefix))
	sched, err := scheduler.New(provider, configStore,
		scheduler.WithStore(store),
		scheduler.WithMetrics(schedulerMetrics))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	driver, err := simulation.NewDriver(settings, sched, configStore, provider)
	if err != nil {
		return err
	}

	nextLookahead, err := cmd.Flags().GetUint32("next-scheduling-lookahead")
	if err != nil {
		return fmt.Errorf("failed to get --next-scheduling-lookahead: %w", err)
	}
	if nextLookahead > 0 {
		nextConfig := config
		nextConfig.SchedulingLookahead = nextLookahead
		err = driver.SetPendingConfig(nextConfig)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("running %d blocks from block %d with %d leased cores and %d on-demand cores",
		settings.Blocks, settings.FirstBlock, len(leases), config.CoretimeCores)
	report, err := driver.Run(ctx)
	printReport(cmd.OutOrStdout(), report, provider.Processed())
	if err != nil {
		return fmt.Errorf("failed to run simulation: %w", err)
	}
	return nil
}

func parseSimulationSettings(cmd *cobra.Command) (settings simulation.Settings, err error) {
	firstBlock, err := cmd.Flags().GetUint32("first-block")
	if err != nil {
		return settings, fmt.Errorf("failed to get --first-block: %w", err)
	}
	settings.FirstBlock = parachaintypes.BlockNumber(firstBlock)

	uint32Flags := []struct {
		name string
		dst  *uint32
	}{
		{"blocks", &settings.Blocks},
		{"session-length", &settings.SessionLength},
		{"validators", &settings.Validators},
	}
	for _, flag := range uint32Flags {
		*flag.dst, err = cmd.Flags().GetUint32(flag.name)
		if err != nil {
			return settings, fmt.Errorf("failed to get --%s: %w", flag.name, err)
		}
	}

	float64Flags := []struct {
		name string
		dst  *float64
	}{
		{"backing-probability", &settings.BackingProbability},
		{"availability-probability", &settings.AvailabilityProbability},
		{"order-probability", &settings.OrderProbability},
	}
	for _, flag := range float64Flags {
		*flag.dst, err = cmd.Flags().GetFloat64(flag.name)
		if err != nil {
			return settings, fmt.Errorf("failed to get --%s: %w", flag.name, err)
		}
	}

	onDemandParas, err := cmd.Flags().GetUintSlice("on-demand-paras")
	if err != nil {
		return settings, fmt.Errorf("failed to get --on-demand-paras: %w", err)
	}
	settings.OnDemandParas = uintsToParaIDs(onDemandParas)

	settings.Seed, err = cmd.Flags().GetInt64("seed")
	if err != nil {
		return settings, fmt.Errorf("failed to get --seed: %w", err)
	}

	return settings, nil
}

func printReport(w io.Writer, report simulation.Report, processed []simulation.ParaProcessed) {
	fmt.Fprintf(w, "blocks played: %d (last block %d)\n", report.Blocks, report.LastBlock)
	fmt.Fprintf(w, "sessions: %d\n", report.Sessions)
	fmt.Fprintf(w, "candidates backed: %d\n", report.Backed)
	fmt.Fprintf(w, "candidates concluded: %d\n", report.Concluded)
	fmt.Fprintf(w, "candidates timed out: %d\n", report.TimedOut)
	fmt.Fprintf(w, "on-demand orders: %d\n", report.Orders)
	fmt.Fprintf(w, "max claim queue depth: %d\n", report.MaxClaimQueueDepth)
	for _, para := range processed {
		fmt.Fprintf(w, "para %d processed: %d\n", para.ParaID, para.Processed)
	}
}
