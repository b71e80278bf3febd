package scoring

import (
	"sort"
)

// RecordHistory holds the finished games for one board shape, including the
// game currently being played.
type RecordHistory struct {
	Entries   []RecordEntry
	BestEntry *RecordEntry
	Current   *RecordEntry
	Attempts  int
}

// RecordEntry is a single finished game.
type RecordEntry struct {
	Board     string `json:"board"`
	Seconds   int    `json:"seconds"`
	Won       bool   `json:"won"`
	Timestamp string `json:"timestamp"`
}

// GetBestEntry returns the fastest win loaded from storage.
func (rh RecordHistory) GetBestEntry() *RecordEntry {
	return rh.BestEntry
}

// GetNRecordEntries returns up to n wins, fastest first, including the
// current game once it has been won.
func (rh RecordHistory) GetNRecordEntries(n int) []RecordEntry {
	wins := make([]RecordEntry, 0, len(rh.Entries)+1)
	for _, entry := range rh.Entries {
		if entry.Won {
			wins = append(wins, entry)
		}
	}
	if rh.Current != nil && rh.Current.Won {
		wins = append(wins, *rh.Current)
	}

	sort.SliceStable(wins, func(i, j int) bool {
		return wins[i].Seconds < wins[j].Seconds
	})

	if len(wins) < n {
		return wins
	}
	return wins[:n]
}

// GotBestTime reports whether the current game is a win at least as fast as
// every earlier win.
func (rh RecordHistory) GotBestTime() bool {
	if rh.Current == nil || !rh.Current.Won {
		return false
	}
	if rh.BestEntry == nil {
		return true
	}
	return rh.Current.Seconds <= rh.BestEntry.Seconds
}
