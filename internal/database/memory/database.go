// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package memory implements the database interfaces on a Go map,
// for tests and short lived runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ChainSafe/parachain-scheduler/internal/database"
)

var _ database.Database = (*Database)(nil)

// Database is an in-memory database. It is itself
// the table with an empty prefix.
type Database struct {
	table
}

type store struct {
	mutex     sync.RWMutex
	closed    bool
	keyValues map[string][]byte
}

// New returns an empty in-memory database.
func New() *Database {
	return &Database{
		table: table{
			store: &store{keyValues: make(map[string][]byte)},
		},
	}
}

// NewTable returns a table prefixing all its keys with the prefix given.
func (d *Database) NewTable(prefix string) database.Table {
	return &table{
		prefix: []byte(prefix),
		store:  d.store,
	}
}

// DropAll deletes all the keys of the database.
func (d *Database) DropAll() error {
	d.store.mutex.Lock()
	defer d.store.mutex.Unlock()
	if d.store.closed {
		return database.ErrClosed
	}
	d.store.keyValues = make(map[string][]byte)
	return nil
}

// Close closes the database, after which every operation
// fails with database.ErrClosed.
func (d *Database) Close() error {
	d.store.mutex.Lock()
	defer d.store.mutex.Unlock()
	d.store.closed = true
	d.store.keyValues = nil
	return nil
}

type table struct {
	prefix []byte
	store  *store
}

// Get returns a copy of the value at the key given, or an error
// wrapping database.ErrKeyNotFound if the key is not set.
func (t *table) Get(key []byte) ([]byte, error) {
	t.store.mutex.RLock()
	defer t.store.mutex.RUnlock()
	if t.store.closed {
		return nil, database.ErrClosed
	}

	value, ok := t.store.keyValues[string(database.PrefixKey(t.prefix, key))]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	}
	return copyBytes(value), nil
}

// Set sets a copy of the value at the key given.
func (t *table) Set(key, value []byte) error {
	return t.apply([]operation{t.setOperation(key, value)})
}

// Delete deletes the key given, and does not fail if it is not set.
func (t *table) Delete(key []byte) error {
	return t.apply([]operation{t.deleteOperation(key)})
}

// NewWriteBatch returns a write batch for the table keys.
// The batch itself is not safe for concurrent use.
func (t *table) NewWriteBatch() database.WriteBatch {
	return &writeBatch{table: t}
}

// Stream calls handle for every key of the table in ascending order.
// It works on a snapshot taken under lock, so handle can write
// to the database.
func (t *table) Stream(ctx context.Context, handle func(key, value []byte) error) error {
	t.store.mutex.RLock()
	if t.store.closed {
		t.store.mutex.RUnlock()
		return database.ErrClosed
	}
	prefix := string(t.prefix)
	snapshot := make(map[string][]byte)
	for key, value := range t.store.keyValues {
		if strings.HasPrefix(key, prefix) {
			snapshot[key[len(prefix):]] = copyBytes(value)
		}
	}
	t.store.mutex.RUnlock()

	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := handle([]byte(key), snapshot[key])
		if err != nil {
			return err
		}
	}
	return nil
}

type operation struct {
	key    string
	value  []byte
	delete bool
}

func (t *table) setOperation(key, value []byte) operation {
	return operation{
		key:   string(database.PrefixKey(t.prefix, key)),
		value: copyBytes(value),
	}
}

func (t *table) deleteOperation(key []byte) operation {
	return operation{
		key:    string(database.PrefixKey(t.prefix, key)),
		delete: true,
	}
}

func (t *table) apply(operations []operation) error {
	t.store.mutex.Lock()
	defer t.store.mutex.Unlock()
	if t.store.closed {
		return database.ErrClosed
	}

	for _, op := range operations {
		if op.delete {
			delete(t.store.keyValues, op.key)
			continue
		}
		t.store.keyValues[op.key] = op.value
	}
	return nil
}

// writeBatch records operations and applies them in order on Flush.
type writeBatch struct {
	table      *table
	operations []operation
}

func (wb *writeBatch) Set(key, value []byte) error {
	wb.operations = append(wb.operations, wb.table.setOperation(key, value))
	return nil
}

func (wb *writeBatch) Delete(key []byte) error {
	wb.operations = append(wb.operations, wb.table.deleteOperation(key))
	return nil
}

func (wb *writeBatch) Flush() error {
	err := wb.table.apply(wb.operations)
	wb.operations = nil
	return err
}

func (wb *writeBatch) Cancel() {
	wb.operations = nil
}

func copyBytes(b []byte) []byte {
	bCopy := make([]byte, len(b))
	copy(bCopy, b)
	return bCopy
}
