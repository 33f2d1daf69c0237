package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chess-vn/slrating/internal/aws/auth"
	"github.com/chess-vn/slrating/internal/domains/dtos"
	"github.com/chess-vn/slrating/internal/domains/entities"
	"github.com/chess-vn/slrating/pkg/logging"
	"go.uber.org/zap"
)

const defaultListLimit = 10

type userRatingLister interface {
	FetchUserRatings(
		ctx context.Context,
		lastKey map[string]types.AttributeValue,
		limit int32,
	) ([]entities.UserRating, map[string]types.AttributeValue, error)
}

type UserRatingListHandler struct {
	lister userRatingLister
}

func NewUserRatingListHandler(lister userRatingLister) *UserRatingListHandler {
	return &UserRatingListHandler{
		lister: lister,
	}
}

func (h *UserRatingListHandler) Handle(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (
	events.APIGatewayProxyResponse,
	error,
) {
	if _, err := auth.UserIdFromAuthorizer(event.RequestContext.Authorizer); err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized}, nil
	}
	startKey, limit, err := extractScanParameters(event.QueryStringParameters)
	if err != nil {
		logging.Error("Failed to list user ratings", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}
	userRatings, lastEvaluatedKey, err := h.lister.FetchUserRatings(ctx, startKey, limit)
	if err != nil {
		logging.Error("Failed to list user ratings", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	userRatingListResp := dtos.UserRatingListResponseFromEntities(userRatings)
	if lastEvaluatedKey != nil {
		token := &dtos.NextUserRatingPageToken{}
		if v, ok := lastEvaluatedKey["UserId"].(*types.AttributeValueMemberS); ok {
			token.UserId = v.Value
		}
		if v, ok := lastEvaluatedKey["Rating"].(*types.AttributeValueMemberN); ok {
			token.Rating = v.Value
		}
		userRatingListResp.NextPageToken = token
	}

	userRatingListJson, err := json.Marshal(userRatingListResp)
	if err != nil {
		logging.Error("Failed to list user ratings", zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: string(userRatingListJson)}, nil
}

func extractScanParameters(params map[string]string) (map[string]types.AttributeValue, int32, error) {
	limit := int32(defaultListLimit)
	if limitStr, ok := params["limit"]; ok {
		limitInt64, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid limit: %w", err)
		}
		if limitInt64 <= 0 {
			return nil, 0, fmt.Errorf("invalid limit: %d", limitInt64)
		}
		limit = int32(limitInt64)
	}

	// Both parts of the index key are needed to resume a page.
	startUserId, hasUserId := params["startUserId"]
	startRating, hasRating := params["startRating"]
	if hasUserId != hasRating {
		return nil, 0, fmt.Errorf("startUserId and startRating must be given together")
	}
	if !hasUserId {
		return nil, limit, nil
	}
	if _, err := strconv.ParseFloat(startRating, 64); err != nil {
		return nil, 0, fmt.Errorf("invalid startRating: %w", err)
	}
	startKey := map[string]types.AttributeValue{
		"UserId":       &types.AttributeValueMemberS{Value: startUserId},
		"PartitionKey": &types.AttributeValueMemberS{Value: "UserRatings"},
		"Rating":       &types.AttributeValueMemberN{Value: startRating},
	}
	return startKey, limit, nil
}
