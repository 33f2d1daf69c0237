package entities

import "time"

// MatchResult is one player's side of a finished match. Opponent rating and
// RD are taken when the match is recorded, before any rating update.
type MatchResult struct {
	UserId         string  `dynamodbav:"UserId"`
	MatchId        string  `dynamodbav:"MatchId"`
	OpponentId     string  `dynamodbav:"OpponentId"`
	OpponentRating float64 `dynamodbav:"OpponentRating"`
	OpponentRD     float64 `dynamodbav:"OpponentRD"`
	Result         float64 `dynamodbav:"Result"`
	Timestamp      string  `dynamodbav:"Timestamp"`
}

// TimestampFormat keeps timestamps lexically sortable as DynamoDB sort keys.
const TimestampFormat = time.RFC3339

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

type RatingPeriod struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t is inside the period, both ends included. A zero
// From or To leaves that side open.
func (p RatingPeriod) Contains(t time.Time) bool {
	if !p.From.IsZero() && t.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && t.After(p.To) {
		return false
	}
	return true
}
