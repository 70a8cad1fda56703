package storage

import (
	"encoding/json"

	"gameledger/internal/model"
)

// Changeset is the staged outcome of one record submission, computed in
// full before anything is written. The controller measures its storage
// delta, settles payment, and only then asks a Storage to apply it; an
// underpaid call discards the changeset without any observable effect.
type Changeset struct {
	// Record is stored under its GameID and appended to the player index
	Record *model.GameRecord
	// Stats replaces the player's previous stats entry
	Stats *model.PlayerStats
	// PrevStats is the entry being replaced, nil for a new player.
	// Used only to measure the storage delta.
	PrevStats *model.PlayerStats
	// NewPlayer increments the total player counter
	NewPlayer bool
}

// StorageDelta measures the net serialized bytes this changeset adds:
// the new record, its index entry, and the growth of the stats entry.
func (cs *Changeset) StorageDelta() (int64, error) {
	delta, err := encodedSize(cs.Record)
	if err != nil {
		return 0, err
	}

	// Index entry: the game id appended to the player's list
	delta += int64(len(cs.Record.GameID))

	statsSize, err := encodedSize(cs.Stats)
	if err != nil {
		return 0, err
	}
	delta += statsSize

	if cs.PrevStats != nil {
		prevSize, err := encodedSize(cs.PrevStats)
		if err != nil {
			return 0, err
		}
		delta -= prevSize
	}

	return delta, nil
}

// EncodedRecordSize returns the serialized size of a stored record.
// Used to release metered bytes when records are cleaned up.
func EncodedRecordSize(r *model.GameRecord) (int64, error) {
	return encodedSize(r)
}

func encodedSize(v any) (int64, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}
