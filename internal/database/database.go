// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package database defines the key value storage interfaces used to
// persist the parachain scheduler state between block executions.
package database

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned when a key is not found in the database.
	ErrKeyNotFound = errors.New("key not found")
	// ErrClosed is returned when operating on a closed database.
	ErrClosed = errors.New("database closed")
)

// Reader reads values from the database.
type Reader interface {
	Get(key []byte) (value []byte, err error)
}

// Writer writes or deletes values in the database.
type Writer interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Streamer streams all the key values of a table, in no particular
// order, stopping at the first error returned by the handle function.
// Keys are given without the table prefix.
type Streamer interface {
	Stream(ctx context.Context, handle func(key, value []byte) error) error
}

// WriteBatch is a batch of writes applied atomically on Flush.
type WriteBatch interface {
	Writer
	Flush() error
	Cancel()
}

// Table is a database view where every key is prefixed
// with the table prefix.
type Table interface {
	Reader
	Writer
	Streamer
	NewWriteBatch() WriteBatch
}

// Database is a key value database, acting as a table without prefix.
type Database interface {
	Table
	NewTable(prefix string) Table
	DropAll() error
	Close() error
}

// PrefixKey returns a new slice holding the prefix followed by the key.
// It never appends to the prefix, which may be shared by several keys.
func PrefixKey(prefix, key []byte) []byte {
	prefixed := make([]byte, len(prefix)+len(key))
	copy(prefixed, prefix)
	copy(prefixed[len(prefix):], key)
	return prefixed
}
