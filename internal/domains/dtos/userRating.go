package dtos

import (
	"time"

	"github.com/chess-vn/slrating/internal/domains/entities"
)

type UserRatingResponse struct {
	UserId     string    `json:"userId"`
	Rating     float64   `json:"rating"`
	RD         float64   `json:"rd"`
	Volatility float64   `json:"volatility"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type UserRatingListResponse struct {
	Items         []UserRatingResponse     `json:"items"`
	NextPageToken *NextUserRatingPageToken `json:"nextPageToken,omitempty"`
}

type NextUserRatingPageToken struct {
	UserId string `json:"userId"`
	Rating string `json:"rating"`
}

func UserRatingResponseFromEntity(userRating entities.UserRating) UserRatingResponse {
	return UserRatingResponse{
		UserId:     userRating.UserId,
		Rating:     userRating.Rating,
		RD:         userRating.RD,
		Volatility: userRating.Volatility,
		UpdatedAt:  userRating.UpdatedAt,
	}
}

func UserRatingListResponseFromEntities(userRatings []entities.UserRating) UserRatingListResponse {
	resp := UserRatingListResponse{
		Items: make([]UserRatingResponse, 0, len(userRatings)),
	}
	for _, userRating := range userRatings {
		resp.Items = append(resp.Items, UserRatingResponseFromEntity(userRating))
	}
	return resp
}
