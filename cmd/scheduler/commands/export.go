// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/ChainSafe/parachain-scheduler/dot/parachain/scheduler"
	"github.com/ChainSafe/parachain-scheduler/internal/database"
	"github.com/ChainSafe/parachain-scheduler/internal/database/badger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newExportCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the persisted scheduler state to a snapshot file",
		Long: `export writes the scheduler storage entries of the base path database
to a zstd compressed snapshot file, which can be read with inspect --snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execExport(cmd, v)
		},
	}

	cmd.Flags().String("output", "scheduler-snapshot.bin", "Path of the snapshot file written")

	return cmd
}

// execExport executes the export command
func execExport(cmd *cobra.Command, v *viper.Viper) (err error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get --output: %w", err)
	}
	if output == "" {
		return fmt.Errorf("--output cannot be empty")
	}

	db, err := badger.New(badger.Settings{Path: databasePath(v)})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		closeErr := db.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close database: %w", closeErr)
		}
	}()

	entries, err := readStorageEntries(db.NewTable(tablePrefix))
	if err != nil {
		return err
	}

	blob, err := encodeSnapshot(entries)
	if err != nil {
		return err
	}

	const perms = 0o600
	err = os.WriteFile(output, blob, perms)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	logger.Infof("exported %d storage items to %s", len(entries), output)
	return nil
}

// readStorageEntries reads the raw scheduler storage entries,
// skipping the items never saved.
func readStorageEntries(reader database.Reader) (entries []snapshotEntry, err error) {
	for _, item := range scheduler.StorageItems() {
		key := scheduler.StorageKey(item)
		value, err := reader.Get(key)
		if errors.Is(err, database.ErrKeyNotFound) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", item, err)
		}
		entries = append(entries, snapshotEntry{Key: key, Value: value})
	}
	return entries, nil
}
