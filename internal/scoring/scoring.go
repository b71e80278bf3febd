package scoring

import (
	"fmt"
	"sort"
	"time"
)

// Scoring tracks the result of the current game against the stored history
// of games played on the same board shape.
type Scoring struct {
	// public
	Wins   int
	Losses int
	// private
	storage  RecordStorage
	history  RecordHistory
	boardKey string
	finished bool
}

// InitScoring loads the history for boardKey from storage.
func InitScoring(boardKey string, storage RecordStorage) (*Scoring, error) {
	s := &Scoring{
		storage:  storage,
		boardKey: boardKey,
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load game records: %w", err)
	}

	filtered := []RecordEntry{}
	for _, entry := range allEntries {
		if entry.Board != boardKey {
			continue
		}
		filtered = append(filtered, entry)
		if entry.Won {
			s.Wins++
		} else {
			s.Losses++
		}
	}

	// Fastest win first, losses after.
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Won != filtered[j].Won {
			return filtered[i].Won
		}
		return filtered[i].Seconds < filtered[j].Seconds
	})

	s.history.Entries = filtered
	s.history.Attempts = len(filtered)
	if len(filtered) > 0 && filtered[0].Won {
		s.history.BestEntry = &filtered[0]
	}
	s.history.Current = &RecordEntry{Board: boardKey}

	return s, nil
}

// Finish records the outcome of the current game. Only the first call counts.
func (s *Scoring) Finish(won bool, seconds int) {
	if s.finished {
		return
	}
	s.finished = true
	s.history.Current.Won = won
	s.history.Current.Seconds = seconds
	s.history.Current.Timestamp = time.Now().Format(time.RFC3339)
	if won {
		s.Wins++
	} else {
		s.Losses++
	}
}

// Finished reports whether Finish has been called.
func (s *Scoring) Finished() bool {
	return s.finished
}

// SaveEntries appends the finished game to storage. Records for other board
// shapes are carried over untouched.
func (s *Scoring) SaveEntries() error {
	if !s.finished {
		return nil
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return fmt.Errorf("could not load game records for saving: %w", err)
	}

	updated := make([]RecordEntry, 0, len(allEntries)+1)
	updated = append(updated, allEntries...)
	updated = append(updated, *s.history.Current)

	return s.storage.SaveAll(updated)
}

// Accessor methods for the record history.
func (s *Scoring) GetBestTime() *RecordEntry {
	return s.history.GetBestEntry()
}

func (s *Scoring) GetAttempts() int {
	return s.history.Attempts
}

func (s *Scoring) GotBestTime() bool {
	return s.history.GotBestTime()
}

func (s *Scoring) GetNRecordEntries(n int) []RecordEntry {
	return s.history.GetNRecordEntries(n)
}

func (s *Scoring) BoardKey() string {
	return s.boardKey
}
