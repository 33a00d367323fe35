// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package badger implements the database interfaces on badger v3.
package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChainSafe/parachain-scheduler/internal/database"
	badger "github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/ristretto/z"
)

var _ database.Database = (*Database)(nil)

// Database is a badger v3 database. It is itself
// the table with an empty prefix.
type Database struct {
	table
}

// New opens a badger v3 database with the settings given.
func New(settings Settings) (*Database, error) {
	settings.SetDefaults()
	err := settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	options := badger.DefaultOptions(settings.Path).
		WithLogger(nil).
		WithInMemory(*settings.InMemory).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &Database{table: table{db: db}}, nil
}

// NewTable returns a table prefixing all its keys with the prefix given.
func (d *Database) NewTable(prefix string) database.Table {
	return &table{
		prefix: []byte(prefix),
		db:     d.db,
	}
}

// DropAll deletes all the keys of the database.
func (d *Database) DropAll() error {
	return transformError(d.db.DropAll())
}

// Close closes the database.
func (d *Database) Close() error {
	return transformError(d.db.Close())
}

type table struct {
	prefix []byte
	db     *badger.DB
}

// Get returns the value at the key given, or an error
// wrapping database.ErrKeyNotFound if the key is not set.
func (t *table) Get(key []byte) (value []byte, err error) {
	err = t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(database.PrefixKey(t.prefix, key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	} else if err != nil {
		return nil, transformError(err)
	}
	return value, nil
}

// Set sets the value at the key given.
func (t *table) Set(key, value []byte) error {
	err := t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(database.PrefixKey(t.prefix, key), value)
	})
	return transformError(err)
}

// Delete deletes the key given, and does not fail if it is not set.
func (t *table) Delete(key []byte) error {
	err := t.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(database.PrefixKey(t.prefix, key))
	})
	return transformError(err)
}

// NewWriteBatch returns a write batch for the table keys.
func (t *table) NewWriteBatch() database.WriteBatch {
	return &writeBatch{
		prefix: t.prefix,
		batch:  t.db.NewWriteBatch(),
	}
}

// Stream streams the key values of the table using a badger stream,
// which reads key ranges concurrently but sends them serially.
func (t *table) Stream(ctx context.Context, handle func(key, value []byte) error) error {
	stream := t.db.NewStream()
	stream.LogPrefix = "database.Stream"
	if len(t.prefix) > 0 {
		stream.Prefix = database.PrefixKey(t.prefix, nil)
	}

	stream.Send = func(buffer *z.Buffer) error {
		kvList, err := badger.BufferToKVList(buffer)
		if err != nil {
			return fmt.Errorf("decoding key values: %w", err)
		}

		for _, kv := range kvList.Kv {
			err = handle(kv.Key[len(t.prefix):], kv.Value)
			if err != nil {
				return err
			}
		}
		return nil
	}

	return transformError(stream.Orchestrate(ctx))
}

type writeBatch struct {
	prefix []byte
	batch  *badger.WriteBatch
}

func (wb *writeBatch) Set(key, value []byte) error {
	return transformError(wb.batch.Set(database.PrefixKey(wb.prefix, key), value))
}

func (wb *writeBatch) Delete(key []byte) error {
	return transformError(wb.batch.Delete(database.PrefixKey(wb.prefix, key)))
}

func (wb *writeBatch) Flush() error {
	return transformError(wb.batch.Flush())
}

func (wb *writeBatch) Cancel() {
	wb.batch.Cancel()
}

func transformError(err error) error {
	if errors.Is(err, badger.ErrDBClosed) {
		return fmt.Errorf("%w: %s", database.ErrClosed, err)
	}
	return err
}
