package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GetItemAPI is the slice of the DynamoDB client the store reads through.
type GetItemAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

type Store struct {
	Client GetItemAPI
	Table  string
}

func New(client GetItemAPI, table string) *Store {
	return &Store{Client: client, Table: table}
}

func (s *Store) TableName() string {
	return s.Table
}

func (s *Store) GetItem(ctx context.Context, pk, sk string) (map[string]types.AttributeValue, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.Table,
		Key: map[string]types.AttributeValue{
			"PK": S(pk),
			"SK": S(sk),
		},
	})
	if err != nil {
		return nil, err
	}
	return out.Item, nil
}

func S(value string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: value}
}
