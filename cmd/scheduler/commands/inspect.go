// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/ChainSafe/parachain-scheduler/dot/parachain/scheduler"
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/ChainSafe/parachain-scheduler/internal/database"
	"github.com/ChainSafe/parachain-scheduler/internal/database/badger"
	"github.com/qdm12/gotree"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInspectCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the persisted scheduler state",
		Long: `inspect prints the scheduler state persisted in the base path database,
or in the snapshot file given with --snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execInspect(cmd, v)
		},
	}

	cmd.Flags().String("snapshot", "", "Snapshot file to inspect instead of the database")

	return cmd
}

// execInspect executes the inspect command
func execInspect(cmd *cobra.Command, v *viper.Viper) error {
	snapshotPath, err := cmd.Flags().GetString("snapshot")
	if err != nil {
		return fmt.Errorf("failed to get --snapshot: %w", err)
	}

	var decoder *stateDecoder
	if snapshotPath != "" {
		decoder, err = readSnapshotFile(snapshotPath)
	} else {
		decoder, err = readDatabase(cmd.Context(), databasePath(v))
	}
	if err != nil {
		return err
	}

	if decoder.unknown > 0 {
		logger.Warnf("skipped %d keys not belonging to the scheduler", decoder.unknown)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderState(decoder.state))
	return nil
}

func readSnapshotFile(path string) (*stateDecoder, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	entries, err := decodeSnapshot(blob)
	if err != nil {
		return nil, err
	}

	decoder := newStateDecoder()
	for _, entry := range entries {
		err = decoder.decode(entry.Key, entry.Value)
		if err != nil {
			return nil, err
		}
	}
	return decoder, nil
}

func readDatabase(ctx context.Context, path string) (decoder *stateDecoder, err error) {
	db, err := badger.New(badger.Settings{Path: path})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		closeErr := db.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	return readTable(ctx, db.NewTable(tablePrefix))
}

// readTable decodes the scheduler state from the storage
// entries streamed from the table given.
func readTable(ctx context.Context, table database.Streamer) (*stateDecoder, error) {
	decoder := newStateDecoder()
	err := table.Stream(ctx, decoder.decode)
	if err != nil {
		return nil, fmt.Errorf("failed to stream database: %w", err)
	}
	return decoder, nil
}

// renderState renders the scheduler state as a tree.
func renderState(state scheduler.State) string {
	root := gotree.New("Scheduler state")
	root.Appendf("Session start block: %d", state.SessionStartBlock)

	groups := root.Appendf("Validator groups: %d", len(state.ValidatorGroups))
	for i, group := range state.ValidatorGroups {
		groups.Appendf("Group %d: %v", i, group)
	}

	cores := root.Appendf("Availability cores: %d", len(state.AvailabilityCores))
	for i, core := range state.AvailabilityCores {
		cores.Appendf("%s: %s", parachaintypes.CoreIndex(i), core)
	}

	coreIndices := make([]parachaintypes.CoreIndex, 0, len(state.ClaimQueue))
	for core := range state.ClaimQueue {
		coreIndices = append(coreIndices, core)
	}
	sort.Slice(coreIndices, func(i, j int) bool { return coreIndices[i] < coreIndices[j] })

	claimQueue := root.Appendf("Claim queue")
	for _, core := range coreIndices {
		queue := state.ClaimQueue[core]
		coreNode := claimQueue.Appendf("%s: %d claims", core, len(queue))
		for position, entry := range queue {
			coreNode.Appendf("%d: %s", position, entry)
		}
	}

	return root.String()
}
