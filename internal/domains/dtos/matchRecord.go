package dtos

import (
	"fmt"
	"time"

	"github.com/chess-vn/slrating/internal/domains/entities"
)

var ErrInvalidMatchRecord = entities.ErrInvalidMatchRecord

type MatchRecordRequest struct {
	MatchId string                `json:"matchId"`
	Players []PlayerRecordRequest `json:"players"`
	Results []float64             `json:"results"`
	EndedAt time.Time             `json:"endedAt"`
}

type PlayerRecordRequest struct {
	Id string `json:"id"`
}

func (req MatchRecordRequest) Validate() error {
	if req.MatchId == "" {
		return fmt.Errorf("%w: missing match id", ErrInvalidMatchRecord)
	}
	if len(req.Players) != 2 {
		return fmt.Errorf("%w: want 2 players, got %d", ErrInvalidMatchRecord, len(req.Players))
	}
	if len(req.Results) != 2 {
		return fmt.Errorf("%w: want 2 results, got %d", ErrInvalidMatchRecord, len(req.Results))
	}
	return MatchRecordRequestToEntity(req).Validate()
}

func MatchRecordRequestToEntity(req MatchRecordRequest) entities.MatchRecord {
	return entities.MatchRecord{
		MatchId:   req.MatchId,
		PlayerIds: [2]string{req.Players[0].Id, req.Players[1].Id},
		Results:   [2]float64{req.Results[0], req.Results[1]},
		EndedAt:   req.EndedAt,
	}
}

type EndGameResponse struct {
	MatchId string               `json:"matchId"`
	Ratings []UserRatingResponse `json:"ratings"`
}
