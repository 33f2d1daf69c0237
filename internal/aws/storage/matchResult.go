package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chess-vn/slrating/internal/domains/entities"
)

func (client *Client) PutMatchResult(ctx context.Context, matchResult entities.MatchResult) error {
	av, err := attributevalue.MarshalMap(matchResult)
	if err != nil {
		return fmt.Errorf("failed to marshal match result map: %w", err)
	}
	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: client.cfg.MatchResultsTableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put match result: %w", err)
	}
	return nil
}

// FetchMatchResults returns every result of userId inside period, oldest
// first, following pagination until the query is exhausted.
func (client *Client) FetchMatchResults(
	ctx context.Context,
	userId string,
	period entities.RatingPeriod,
) (
	[]entities.MatchResult,
	error,
) {
	keyCondition := "UserId = :userId"
	values := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userId},
	}
	var names map[string]string
	switch {
	case !period.From.IsZero() && !period.To.IsZero():
		keyCondition += " AND #ts BETWEEN :from AND :to"
	case !period.From.IsZero():
		keyCondition += " AND #ts >= :from"
	case !period.To.IsZero():
		keyCondition += " AND #ts <= :to"
	}
	if !period.From.IsZero() {
		values[":from"] = &types.AttributeValueMemberS{Value: entities.FormatTimestamp(period.From)}
	}
	if !period.To.IsZero() {
		values[":to"] = &types.AttributeValueMemberS{Value: entities.FormatTimestamp(period.To)}
	}
	if !period.From.IsZero() || !period.To.IsZero() {
		names = map[string]string{"#ts": "Timestamp"}
	}

	var (
		matchResults []entities.MatchResult
		lastKey      map[string]types.AttributeValue
	)
	for {
		output, err := client.dynamodb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 client.cfg.MatchResultsTableName,
			KeyConditionExpression:    aws.String(keyCondition),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         lastKey,
			ScanIndexForward:          aws.Bool(true),
		})
		if err != nil {
			return nil, err
		}
		var page []entities.MatchResult
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return nil, err
		}
		matchResults = append(matchResults, page...)
		if len(output.LastEvaluatedKey) == 0 {
			return matchResults, nil
		}
		lastKey = output.LastEvaluatedKey
	}
}
