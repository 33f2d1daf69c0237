package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chess-vn/slrating/internal/aws/storage"
	"github.com/chess-vn/slrating/internal/handlers"
	"github.com/chess-vn/slrating/pkg/logging"
	"go.uber.org/zap"
)

var userRatingListHandler *handlers.UserRatingListHandler

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		logging.Fatal("unable to load SDK config", zap.Error(err))
	}
	userRatingListHandler = handlers.NewUserRatingListHandler(
		storage.NewClient(dynamodb.NewFromConfig(cfg)),
	)
}

func main() {
	lambda.Start(userRatingListHandler.Handle)
}
