// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ChainSafe/gossamer/lib/common"
	"github.com/ChainSafe/gossamer/pkg/scale"

	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/ChainSafe/parachain-scheduler/internal/database"
)

const palletPrefix = "ParaScheduler"

// Storage item names, hashed into the storage keys.
const (
	validatorGroupsItem   = "ValidatorGroups"
	availabilityCoresItem = "AvailabilityCores"
	claimQueueItem        = "ClaimQueue"
	sessionStartBlockItem = "SessionStartBlock"
)

// StorageKey returns the storage key of the scheduler storage item,
// as twox128(pallet prefix) ++ twox128(item name).
// It panics if hashing fails, which xxhash never does.
func StorageKey(item string) []byte {
	key, err := storageKey(item)
	if err != nil {
		panic(fmt.Sprintf("computing storage key of %s: %s", item, err))
	}
	return key
}

func storageKey(item string) (key []byte, err error) {
	palletHash, err := common.Twox128Hash([]byte(palletPrefix))
	if err != nil {
		return nil, fmt.Errorf("hashing pallet prefix: %w", err)
	}

	itemHash, err := common.Twox128Hash([]byte(item))
	if err != nil {
		return nil, fmt.Errorf("hashing item name: %w", err)
	}

	key = make([]byte, 0, len(palletHash)+len(itemHash))
	key = append(key, palletHash...)
	key = append(key, itemHash...)
	return key, nil
}

// StorageItems returns the names of the storage items of the scheduler.
func StorageItems() []string {
	return []string{
		validatorGroupsItem,
		availabilityCoresItem,
		claimQueueItem,
		sessionStartBlockItem,
	}
}

// Table is the database table the scheduler state is stored in.
type Table interface {
	database.Reader
	NewWriteBatch() database.WriteBatch
}

// Store persists the scheduler state in a database table.
type Store struct {
	table Table
}

// NewStore creates a new store using the database table given.
func NewStore(table Table) *Store {
	return &Store{table: table}
}

// Load loads the scheduler state. Items never saved are
// left to their zero value.
func (s *Store) Load() (state State, err error) {
	var groups [][]uint32
	err = s.get(validatorGroupsItem, &groups)
	if err != nil {
		return state, err
	}

	var cores []*storedParasEntry
	err = s.get(availabilityCoresItem, &cores)
	if err != nil {
		return state, err
	}

	var claimQueue []storedCoreClaims
	err = s.get(claimQueueItem, &claimQueue)
	if err != nil {
		return state, err
	}

	var sessionStartBlock uint32
	err = s.get(sessionStartBlockItem, &sessionStartBlock)
	if err != nil {
		return state, err
	}

	state.ValidatorGroups = validatorGroupsFromStorage(groups)
	state.AvailabilityCores = availabilityCoresFromStorage(cores)
	state.ClaimQueue = claimQueueFromStorage(claimQueue)
	state.SessionStartBlock = parachaintypes.BlockNumber(sessionStartBlock)
	return state, nil
}

// Save saves the scheduler state atomically.
func (s *Store) Save(state State) error {
	values := []struct {
		item  string
		value any
	}{
		{item: validatorGroupsItem, value: validatorGroupsToStorage(state.ValidatorGroups)},
		{item: availabilityCoresItem, value: availabilityCoresToStorage(state.AvailabilityCores)},
		{item: claimQueueItem, value: claimQueueToStorage(state.ClaimQueue)},
		{item: sessionStartBlockItem, value: uint32(state.SessionStartBlock)},
	}

	batch := s.table.NewWriteBatch()
	for _, value := range values {
		encoded, err := scale.Marshal(value.value)
		if err != nil {
			batch.Cancel()
			return fmt.Errorf("encoding %s: %w", value.item, err)
		}

		err = batch.Set(StorageKey(value.item), encoded)
		if err != nil {
			batch.Cancel()
			return fmt.Errorf("writing %s: %w", value.item, err)
		}
	}

	err := batch.Flush()
	if err != nil {
		return fmt.Errorf("flushing write batch: %w", err)
	}
	return nil
}

func (s *Store) get(item string, dst any) error {
	encoded, err := s.table.Get(StorageKey(item))
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("reading %s: %w", item, err)
	}

	err = scale.Unmarshal(encoded, dst)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", item, err)
	}
	return nil
}

// DecodeStorageValue decodes the encoded value of the storage item
// into the part of the state it holds, leaving the other parts empty.
func DecodeStorageValue(item string, encoded []byte) (state State, err error) {
	switch item {
	case validatorGroupsItem:
		var groups [][]uint32
		err = scale.Unmarshal(encoded, &groups)
		state.ValidatorGroups = validatorGroupsFromStorage(groups)
	case availabilityCoresItem:
		var cores []*storedParasEntry
		err = scale.Unmarshal(encoded, &cores)
		state.AvailabilityCores = availabilityCoresFromStorage(cores)
	case claimQueueItem:
		var claimQueue []storedCoreClaims
		err = scale.Unmarshal(encoded, &claimQueue)
		state.ClaimQueue = claimQueueFromStorage(claimQueue)
	case sessionStartBlockItem:
		var sessionStartBlock uint32
		err = scale.Unmarshal(encoded, &sessionStartBlock)
		state.SessionStartBlock = parachaintypes.BlockNumber(sessionStartBlock)
	default:
		return state, fmt.Errorf("%w: %s", ErrStorageItemUnknown, item)
	}

	if err != nil {
		return state, fmt.Errorf("decoding %s: %w", item, err)
	}
	return state, nil
}

// ErrStorageItemUnknown is returned when decoding an unknown storage item.
var ErrStorageItemUnknown = errors.New("storage item unknown")

// storedParasEntry is the storage form of a paras entry.
type storedParasEntry struct {
	Kind                 uint8
	Para                 uint32
	Core                 uint32
	AvailabilityTimeouts uint32
	TTL                  uint32
}

// storedCoreClaims is the storage form of the claim queue of a core.
// The claim queue is stored as a list sorted by core index.
type storedCoreClaims struct {
	Core    uint32
	Entries []storedParasEntry
}

func parasEntryToStorage(entry parachaintypes.ParasEntry) storedParasEntry {
	return storedParasEntry{
		Kind:                 uint8(entry.Assignment.Kind),
		Para:                 uint32(entry.Assignment.Para),
		Core:                 uint32(entry.Assignment.Core),
		AvailabilityTimeouts: entry.AvailabilityTimeouts,
		TTL:                  uint32(entry.TTL),
	}
}

func parasEntryFromStorage(stored storedParasEntry) parachaintypes.ParasEntry {
	return parachaintypes.ParasEntry{
		Assignment: parachaintypes.Assignment{
			Kind: parachaintypes.AssignmentKind(stored.Kind),
			Para: parachaintypes.ParaID(stored.Para),
			Core: parachaintypes.CoreIndex(stored.Core),
		},
		AvailabilityTimeouts: stored.AvailabilityTimeouts,
		TTL:                  parachaintypes.BlockNumber(stored.TTL),
	}
}

func validatorGroupsToStorage(groups [][]parachaintypes.ValidatorIndex) [][]uint32 {
	stored := make([][]uint32, len(groups))
	for i, group := range groups {
		stored[i] = make([]uint32, len(group))
		for j, validator := range group {
			stored[i][j] = uint32(validator)
		}
	}
	return stored
}

func validatorGroupsFromStorage(stored [][]uint32) [][]parachaintypes.ValidatorIndex {
	groups := make([][]parachaintypes.ValidatorIndex, len(stored))
	for i, group := range stored {
		groups[i] = make([]parachaintypes.ValidatorIndex, len(group))
		for j, validator := range group {
			groups[i][j] = parachaintypes.ValidatorIndex(validator)
		}
	}
	return groups
}

func availabilityCoresToStorage(cores []parachaintypes.CoreOccupied) []*storedParasEntry {
	stored := make([]*storedParasEntry, len(cores))
	for i, core := range cores {
		entry, occupied := core.Entry()
		if !occupied {
			continue
		}
		storedEntry := parasEntryToStorage(entry)
		stored[i] = &storedEntry
	}
	return stored
}

func availabilityCoresFromStorage(stored []*storedParasEntry) []parachaintypes.CoreOccupied {
	cores := make([]parachaintypes.CoreOccupied, len(stored))
	for i, storedEntry := range stored {
		if storedEntry == nil {
			continue
		}
		cores[i] = parachaintypes.OccupiedBy(parasEntryFromStorage(*storedEntry))
	}
	return cores
}

func claimQueueToStorage(claimQueue map[parachaintypes.CoreIndex][]parachaintypes.ParasEntry) []storedCoreClaims {
	stored := make([]storedCoreClaims, 0, len(claimQueue))
	for core, queue := range claimQueue {
		claims := storedCoreClaims{
			Core:    uint32(core),
			Entries: make([]storedParasEntry, len(queue)),
		}
		for i, entry := range queue {
			claims.Entries[i] = parasEntryToStorage(entry)
		}
		stored = append(stored, claims)
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Core < stored[j].Core })
	return stored
}

func claimQueueFromStorage(stored []storedCoreClaims) map[parachaintypes.CoreIndex][]parachaintypes.ParasEntry {
	claimQueue := make(map[parachaintypes.CoreIndex][]parachaintypes.ParasEntry, len(stored))
	for _, claims := range stored {
		queue := make([]parachaintypes.ParasEntry, len(claims.Entries))
		for i, entry := range claims.Entries {
			queue[i] = parasEntryFromStorage(entry)
		}
		claimQueue[parachaintypes.CoreIndex(claims.Core)] = queue
	}
	return claimQueue
}
