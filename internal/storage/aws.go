package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const settingsPK = "SETTINGS"

// DynamoDBAPI is the subset of *dynamodb.Client used by DynamoStore.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// S3API is the subset of *s3.Client used by S3Archive.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// AWSClients holds the service clients built from one AWS config.
type AWSClients struct {
	DynamoDB *dynamodb.Client
	S3       *s3.Client
}

// NewAWSClients loads the default credential chain for region.
func NewAWSClients(ctx context.Context, region string) (*AWSClients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &AWSClients{
		DynamoDB: dynamodb.NewFromConfig(cfg),
		S3:       s3.NewFromConfig(cfg),
	}, nil
}

// settingsItem is the DynamoDB shape of the settings record.
type settingsItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Data      string `dynamodbav:"Data"`
	UpdatedAt string `dynamodbav:"UpdatedAt"`
}

// DynamoStore keeps the record as one item keyed PK=SETTINGS, SK=<key>.
type DynamoStore struct {
	client DynamoDBAPI
	table  string
	key    string
	now    func() time.Time
}

// NewDynamoStore creates a DynamoDB-backed store for the record named key.
func NewDynamoStore(client DynamoDBAPI, table, key string) *DynamoStore {
	return &DynamoStore{client: client, table: table, key: key, now: time.Now}
}

func (s *DynamoStore) Load(ctx context.Context) ([]byte, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: settingsPK},
			"SK": &types.AttributeValueMemberS{Value: s.key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting settings from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item settingsItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshaling settings item: %w", err)
	}
	return []byte(item.Data), nil
}

func (s *DynamoStore) Save(ctx context.Context, data []byte) error {
	av, err := attributevalue.MarshalMap(settingsItem{
		PK:        settingsPK,
		SK:        s.key,
		Data:      string(data),
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshaling settings item: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("putting settings to DynamoDB: %w", err)
	}
	return nil
}

// S3Archive stores uploaded brand files in a bucket.
type S3Archive struct {
	client S3API
	bucket string
}

// NewS3Archive creates an archive writing to bucket.
func NewS3Archive(client S3API, bucket string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket}
}

// Archive puts body under key.
func (a *S3Archive) Archive(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("putting object to S3: %w", err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (a *S3Archive) Ping(ctx context.Context) error {
	if _, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)}); err != nil {
		return fmt.Errorf("head bucket %s: %w", a.bucket, err)
	}
	return nil
}
