package dynamo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/vietddude/bizday/internal/infra/store"
)

// Config holds DynamoDB client settings. Credentials come from the default
// AWS provider chain.
type Config struct {
	Endpoint   string `yaml:"endpoint"` // optional, e.g. DynamoDB Local
	PageSize   int64  `yaml:"page_size"`
	MaxRetries int    `yaml:"max_retries"`
}

// Client implements store.Client on DynamoDB. One SDK client is kept per region.
type Client struct {
	cfg     Config
	newAPI  func(region string) (dynamodbiface.DynamoDBAPI, error)
	mu      sync.Mutex
	regions map[string]dynamodbiface.DynamoDBAPI
}

// NewClient creates a DynamoDB-backed store client.
func NewClient(cfg Config) *Client {
	c := &Client{cfg: cfg, regions: make(map[string]dynamodbiface.DynamoDBAPI)}
	c.newAPI = c.sessionAPI
	return c
}

func (c *Client) sessionAPI(region string) (dynamodbiface.DynamoDBAPI, error) {
	awsCfg := aws.NewConfig().WithRegion(region)
	if c.cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(c.cfg.Endpoint)
	}
	if c.cfg.MaxRetries > 0 {
		awsCfg = awsCfg.WithMaxRetries(c.cfg.MaxRetries)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session for %s: %w", region, err)
	}
	return dynamodb.New(sess), nil
}

func (c *Client) api(region string) (dynamodbiface.DynamoDBAPI, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if api, ok := c.regions[region]; ok {
		return api, nil
	}
	api, err := c.newAPI(region)
	if err != nil {
		return nil, err
	}
	c.regions[region] = api
	return api, nil
}

// Scan reads one page. The token is the page's LastEvaluatedKey, JSON encoded.
func (c *Client) Scan(ctx context.Context, table, region, token string) (store.Page, error) {
	api, err := c.api(region)
	if err != nil {
		return store.Page{}, err
	}

	input := &dynamodb.ScanInput{TableName: aws.String(table)}
	if c.cfg.PageSize > 0 {
		input.Limit = aws.Int64(c.cfg.PageSize)
	}
	if token != "" {
		key, err := decodeToken(token)
		if err != nil {
			return store.Page{}, err
		}
		input.ExclusiveStartKey = key
	}

	out, err := api.ScanWithContext(ctx, input)
	if err != nil {
		return store.Page{}, fmt.Errorf("dynamodb scan %s failed: %w", table, err)
	}

	var items []store.Item
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return store.Page{}, fmt.Errorf("failed to unmarshal scan items: %w", err)
	}

	page := store.Page{Items: items}
	if len(out.LastEvaluatedKey) > 0 {
		if page.Next, err = encodeToken(out.LastEvaluatedKey); err != nil {
			return store.Page{}, err
		}
	}
	return page, nil
}

// Put writes a single item with PutItem.
func (c *Client) Put(ctx context.Context, table, region string, item store.Item) error {
	api, err := c.api(region)
	if err != nil {
		return err
	}

	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	if _, err := api.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("dynamodb put %s failed: %w", table, err)
	}
	return nil
}

func encodeToken(key map[string]*dynamodb.AttributeValue) (string, error) {
	data, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("failed to encode continuation token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeToken(token string) (map[string]*dynamodb.AttributeValue, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidToken, err)
	}
	var key map[string]*dynamodb.AttributeValue
	if err := json.Unmarshal(data, &key); err != nil || len(key) == 0 {
		return nil, fmt.Errorf("%w: malformed key", store.ErrInvalidToken)
	}
	return key, nil
}
