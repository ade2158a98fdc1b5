package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

const (
	PrefixFlags = "FLAGS#"
	flagsSK     = "FLAGS"
)

func FlagsPK(key string) string {
	return PrefixFlags + key
}

type flagItem struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	Value string `dynamodbav:"value"`
}

// FlagStore reads feature flag objects kept as a JSON string in the "value" attribute.
type FlagStore struct {
	Store *Store
}

func NewFlagStore(store *Store) *FlagStore {
	return &FlagStore{Store: store}
}

func (f *FlagStore) Get(ctx context.Context, key string) (string, bool, error) {
	item, err := f.Store.GetItem(ctx, FlagsPK(key), flagsSK)
	if err != nil {
		return "", false, fmt.Errorf("erro ao buscar flags: %w", err)
	}
	if len(item) == 0 {
		return "", false, nil
	}

	var flags flagItem
	if err := attributevalue.UnmarshalMap(item, &flags); err != nil {
		return "", false, fmt.Errorf("erro ao decodificar flags: %w", err)
	}
	if flags.Value == "" {
		return "", false, nil
	}
	return flags.Value, true, nil
}
