package entities

import (
	"time"

	"github.com/chess-vn/slrating/pkg/rating"
)

type UserRating struct {
	UserId       string    `dynamodbav:"UserId"`
	PartitionKey string    `dynamodbav:"PartitionKey"`
	Rating       float64   `dynamodbav:"Rating"`
	RD           float64   `dynamodbav:"RD"`
	Volatility   float64   `dynamodbav:"Volatility"`
	UpdatedAt    time.Time `dynamodbav:"UpdatedAt"`
}

// NewUserRating returns the stored form of state for userId.
func NewUserRating(userId string, state rating.State, updatedAt time.Time) UserRating {
	return UserRating{
		UserId:       userId,
		PartitionKey: "UserRatings",
		Rating:       state.Rating,
		RD:           state.Deviation,
		Volatility:   state.Volatility,
		UpdatedAt:    updatedAt,
	}
}

func (r UserRating) State() rating.State {
	return rating.State{
		Rating:     r.Rating,
		Deviation:  r.RD,
		Volatility: r.Volatility,
	}
}

// Opponent returns the snapshot other players are rated against.
func (r UserRating) Opponent() rating.Opponent {
	return rating.Opponent{
		Rating:    r.Rating,
		Deviation: r.RD,
	}
}
