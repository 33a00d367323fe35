// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/gossamer/pkg/scale"
	"github.com/ChainSafe/parachain-scheduler/dot/parachain/scheduler"
	"github.com/klauspost/compress/zstd"
)

// zstdPrefix marks a zstd compressed blob.
var zstdPrefix = []byte{82, 188, 83, 118, 70, 219, 142, 5}

// maxSnapshotSize is the maximum decompressed size of a snapshot.
const maxSnapshotSize = 16 * 1024 * 1024

var (
	errSnapshotTooShort   = errors.New("snapshot is too short")
	errSnapshotItemDouble = errors.New("snapshot storage item duplicated")
)

// snapshotEntry is a raw scheduler storage entry.
type snapshotEntry struct {
	Key   []byte
	Value []byte
}

// encodeSnapshot SCALE encodes the entries given and compresses them
// with zstd, prefixed with the zstd prefix.
func encodeSnapshot(entries []snapshotEntry) ([]byte, error) {
	encoded, err := scale.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot entries: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	defer encoder.Close()

	blob := make([]byte, len(zstdPrefix), len(zstdPrefix)+len(encoded))
	copy(blob, zstdPrefix)
	return encoder.EncodeAll(encoded, blob), nil
}

// decodeSnapshot decodes a snapshot blob, which may be compressed or not.
func decodeSnapshot(blob []byte) (entries []snapshotEntry, err error) {
	encoded, err := maybeCompressedBlobDecompress(blob, maxSnapshotSize)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}

	err = scale.Unmarshal(encoded, &entries)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot entries: %w", err)
	}
	return entries, nil
}

func maybeCompressedBlobDecompress(blob []byte, bombLimit uint64) ([]byte, error) {
	if len(blob) < len(zstdPrefix) {
		return nil, fmt.Errorf("%w: %d bytes", errSnapshotTooShort, len(blob))
	}

	if !bytes.Equal(blob[:len(zstdPrefix)], zstdPrefix) {
		return blob, nil
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(bombLimit))
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()
	return decoder.DecodeAll(blob[len(zstdPrefix):], nil)
}

// stateDecoder rebuilds the scheduler state from raw storage entries.
type stateDecoder struct {
	itemByKey map[string]string
	seen      map[string]struct{}
	state     scheduler.State
	unknown   int
}

func newStateDecoder() *stateDecoder {
	items := scheduler.StorageItems()
	itemByKey := make(map[string]string, len(items))
	for _, item := range items {
		itemByKey[string(scheduler.StorageKey(item))] = item
	}
	return &stateDecoder{
		itemByKey: itemByKey,
		seen:      make(map[string]struct{}, len(items)),
	}
}

// decode decodes the storage value of the key given into the state.
// Keys not belonging to a scheduler storage item are counted and skipped.
func (d *stateDecoder) decode(key, value []byte) error {
	item, ok := d.itemByKey[string(key)]
	if !ok {
		d.unknown++
		return nil
	}

	if _, ok := d.seen[item]; ok {
		return fmt.Errorf("%w: %s", errSnapshotItemDouble, item)
	}
	d.seen[item] = struct{}{}

	partial, err := scheduler.DecodeStorageValue(item, value)
	if err != nil {
		return err
	}

	if partial.ValidatorGroups != nil {
		d.state.ValidatorGroups = partial.ValidatorGroups
	}
	if partial.AvailabilityCores != nil {
		d.state.AvailabilityCores = partial.AvailabilityCores
	}
	if partial.ClaimQueue != nil {
		d.state.ClaimQueue = partial.ClaimQueue
	}
	if partial.SessionStartBlock != 0 {
		d.state.SessionStartBlock = partial.SessionStartBlock
	}
	return nil
}
