package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// snapshotVersion is bumped whenever the envelope layout changes.
// Snapshots with an unknown version are discarded on load.
const snapshotVersion = 1

type snapshot struct {
	Version int        `json:"version"`
	Items   []CartItem `json:"items"`
	SavedAt time.Time  `json:"savedAt"`
}

func encodeSnapshot(items []CartItem, now time.Time) ([]byte, error) {
	if items == nil {
		items = []CartItem{}
	}
	return json.Marshal(snapshot{Version: snapshotVersion, Items: items, SavedAt: now.UTC()})
}

// decodeSnapshot accepts the versioned envelope and the bare item array
// written by browser-side carts. Lines without an id or with a quantity
// below one are dropped, repeated ids merged and quantities capped at
// MaxQuantity, so a decoded cart always satisfies the store invariants.
func decodeSnapshot(data []byte) ([]CartItem, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty snapshot")
	}

	var items []CartItem
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode legacy snapshot: %w", err)
		}
	case '{':
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		if snap.Version != snapshotVersion {
			return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
		}
		items = snap.Items
	default:
		return nil, fmt.Errorf("unrecognised snapshot payload")
	}

	out := make([]CartItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 || it.Price.IsNegative() {
			continue
		}
		it.Quantity = clampQuantity(it.Quantity)
		if i, ok := index[it.ID]; ok {
			out[i].Quantity = clampQuantity(out[i].Quantity + it.Quantity)
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}
	return out, nil
}
