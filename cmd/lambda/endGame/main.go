package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chess-vn/slrating/internal/aws/storage"
	"github.com/chess-vn/slrating/internal/handlers"
	"github.com/chess-vn/slrating/internal/usecases"
	"github.com/chess-vn/slrating/pkg/logging"
	"github.com/chess-vn/slrating/pkg/rating"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var endGameHandler *handlers.EndGameHandler

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		logging.Fatal("unable to load SDK config", zap.Error(err))
	}
	v := viper.New()
	v.SetDefault("RATING_TAU", rating.DefaultTau)
	v.AutomaticEnv()
	engine, err := rating.NewEngine(v.GetFloat64("RATING_TAU"))
	if err != nil {
		logging.Fatal("invalid rating config", zap.Error(err))
	}

	storageClient := storage.NewClient(dynamodb.NewFromConfig(cfg))
	ratingUsecase := usecases.NewRatingUsecase(storageClient, engine, rating.DefaultState())
	endGameHandler = handlers.NewEndGameHandler(ratingUsecase)
}

func main() {
	lambda.Start(endGameHandler.Handle)
}
