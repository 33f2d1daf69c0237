package dtos

import "github.com/chess-vn/slrating/internal/domains/entities"

type MatchResultResponse struct {
	MatchId        string  `json:"matchId"`
	OpponentId     string  `json:"opponentId"`
	OpponentRating float64 `json:"opponentRating"`
	OpponentRD     float64 `json:"opponentRD"`
	Result         float64 `json:"result"`
	Timestamp      string  `json:"timestamp"`
}

type MatchResultListResponse struct {
	Items []MatchResultResponse `json:"items"`
}

func MatchResultListResponseFromEntities(matchResults []entities.MatchResult) MatchResultListResponse {
	resp := MatchResultListResponse{
		Items: make([]MatchResultResponse, 0, len(matchResults)),
	}
	for _, matchResult := range matchResults {
		resp.Items = append(resp.Items, MatchResultResponse{
			MatchId:        matchResult.MatchId,
			OpponentId:     matchResult.OpponentId,
			OpponentRating: matchResult.OpponentRating,
			OpponentRD:     matchResult.OpponentRD,
			Result:         matchResult.Result,
			Timestamp:      matchResult.Timestamp,
		})
	}
	return resp
}
