package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/viper"
)

// DynamoDB is the subset of the DynamoDB API the storage client uses.
type DynamoDB interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type Client struct {
	dynamodb DynamoDB
	cfg      config
}

type config struct {
	UserRatingsTableName  *string
	MatchResultsTableName *string
	RatingIndexName       *string
}

func NewClient(dynamoClient DynamoDB) *Client {
	return &Client{
		dynamodb: dynamoClient,
		cfg:      loadConfig(),
	}
}

func loadConfig() config {
	v := viper.New()
	v.SetDefault("USER_RATINGS_TABLE_NAME", "UserRatings")
	v.SetDefault("MATCH_RESULTS_TABLE_NAME", "MatchResults")
	v.SetDefault("RATING_INDEX_NAME", "RatingIndex")
	v.AutomaticEnv()

	return config{
		UserRatingsTableName:  aws.String(v.GetString("USER_RATINGS_TABLE_NAME")),
		MatchResultsTableName: aws.String(v.GetString("MATCH_RESULTS_TABLE_NAME")),
		RatingIndexName:       aws.String(v.GetString("RATING_INDEX_NAME")),
	}
}
