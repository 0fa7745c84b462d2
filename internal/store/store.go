// internal/store/store.go

// Package store persists user accounts and application-progress records
// in DynamoDB, with a Redis read-through cache in front of application
// lookups. Cache failures are invisible to callers; a dead cache just
// means every read hits the table.
package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"edubot/internal/common/database"
	stderrors "edubot/internal/common/errors"
	"edubot/internal/common/logger"
	"edubot/internal/common/metrics"
	"edubot/internal/models"
)

// DynamoAPI is the subset of the DynamoDB client used here. Scan exists
// only for the name lookup on the demo-sized applications table.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type Store struct {
	api      DynamoAPI
	cache    *database.RedisClient
	users    string
	apps     string
	cacheTTL time.Duration
	logger   logger.Logger
}

// New builds a store over the given tables. cache may be nil, in which
// case every application read goes straight to DynamoDB.
func New(api DynamoAPI, cache *database.RedisClient, usersTable, appsTable string, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		api:      api,
		cache:    cache,
		users:    usersTable,
		apps:     appsTable,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// ==========================
// Users
// ==========================

// GetUser fetches one account by student id. A missing item is a
// USER_NOT_FOUND error, not a nil result; callers branch on the code.
func (s *Store) GetUser(ctx context.Context, studentID string) (*models.User, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.users),
		Key:       stringKey("student_id", studentID),
	})
	if err != nil {
		return nil, stderrors.NewStoreFailedError("GetUser", err)
	}
	if out.Item == nil {
		return nil, stderrors.NewUserNotFoundError(studentID)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, stderrors.NewStoreFailedError("GetUser unmarshal", err)
	}
	return &user, nil
}

func (s *Store) PutUser(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return stderrors.NewStoreFailedError("PutUser marshal", err)
	}
	if _, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.users),
		Item:      item,
	}); err != nil {
		return stderrors.NewStoreFailedError("PutUser", err)
	}
	return nil
}

// ==========================
// Applications
// ==========================

func appCacheKey(userID string) string {
	return "app:" + userID
}

// GetApplication fetches one application record by student id, consulting
// the cache first. Returns (nil, nil) when no record exists; "no
// application yet" is an ordinary state, not an error.
func (s *Store) GetApplication(ctx context.Context, userID string) (*models.Application, error) {
	if app := s.cacheGet(ctx, userID); app != nil {
		return app, nil
	}

	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.apps),
		Key:       stringKey("user_id", userID),
	})
	if err != nil {
		return nil, stderrors.NewStoreFailedError("GetApplication", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var app models.Application
	if err := attributevalue.UnmarshalMap(out.Item, &app); err != nil {
		return nil, stderrors.NewStoreFailedError("GetApplication unmarshal", err)
	}

	s.cacheSet(ctx, userID, &app)
	return &app, nil
}

// FindApplicationByName matches the applicant name case-insensitively.
// The WhatsApp channel only knows the sender's profile name, so this scan
// is its route into the record.
func (s *Store) FindApplicationByName(ctx context.Context, name string) (*models.Application, error) {
	out, err := s.api.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.apps),
	})
	if err != nil {
		return nil, stderrors.NewStoreFailedError("FindApplicationByName", err)
	}

	target := strings.ToLower(strings.TrimSpace(name))
	for _, item := range out.Items {
		var app models.Application
		if err := attributevalue.UnmarshalMap(item, &app); err != nil {
			continue
		}
		if strings.ToLower(app.Name) == target {
			return &app, nil
		}
	}
	return nil, nil
}

// PutApplication writes the record and drops the cached copy so the next
// read sees the new state.
func (s *Store) PutApplication(ctx context.Context, app *models.Application) error {
	item, err := attributevalue.MarshalMap(app)
	if err != nil {
		return stderrors.NewStoreFailedError("PutApplication marshal", err)
	}
	if _, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.apps),
		Item:      item,
	}); err != nil {
		return stderrors.NewStoreFailedError("PutApplication", err)
	}

	s.cacheDel(ctx, app.UserID)
	return nil
}

// ==========================
// Cache internals
// ==========================

func (s *Store) cacheGet(ctx context.Context, userID string) *models.Application {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, appCacheKey(userID))
	if err != nil {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return nil
	}
	var app models.Application
	if err := json.Unmarshal([]byte(raw), &app); err != nil {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return &app
}

func (s *Store) cacheSet(ctx context.Context, userID string, app *models.Application) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(app)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, appCacheKey(userID), raw, s.cacheTTL); err != nil {
		s.logger.Warn("Cache write failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}

func (s *Store) cacheDel(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, appCacheKey(userID)); err != nil {
		s.logger.Warn("Cache invalidation failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}
