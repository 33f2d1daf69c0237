package entities

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidMatchRecord = errors.New("invalid match record")

// MatchRecord is a finished two-player match. Results[i] is the score of
// PlayerIds[i].
type MatchRecord struct {
	MatchId   string
	PlayerIds [2]string
	Results   [2]float64
	EndedAt   time.Time
}

// Validate rejects records that must never reach storage. Each result must be
// a finite score in [0,1].
func (r MatchRecord) Validate() error {
	if r.MatchId == "" {
		return fmt.Errorf("%w: missing match id", ErrInvalidMatchRecord)
	}
	for _, userId := range r.PlayerIds {
		if userId == "" {
			return fmt.Errorf("%w: missing player id", ErrInvalidMatchRecord)
		}
	}
	if r.PlayerIds[0] == r.PlayerIds[1] {
		return fmt.Errorf("%w: player %s cannot play itself", ErrInvalidMatchRecord, r.PlayerIds[0])
	}
	for i, result := range r.Results {
		if math.IsNaN(result) || result < 0 || result > 1 {
			return fmt.Errorf("%w: result %d is %v", ErrInvalidMatchRecord, i, result)
		}
	}
	if r.EndedAt.IsZero() {
		return fmt.Errorf("%w: missing end time", ErrInvalidMatchRecord)
	}
	return nil
}
