package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
)

var ErrResultNotFound = errors.New("game result not found")

// ResultRepository archives finished games as JSON blobs in Redis.
type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	GetByID(ctx context.Context, id string) (*entity.GameResult, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	resultKey := "result:" + result.ID
	if err = that.client.Set(ctx, resultKey, resultJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.GameResult, error) {
	resultKey := "result:" + id

	response, err := that.client.Get(ctx, resultKey).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.GameResult{}, ErrResultNotFound
	}

	if err != nil {
		return &entity.GameResult{}, fmt.Errorf("failed to get result by id: %w", err)
	}

	var existingResult entity.GameResult
	if err = json.Unmarshal([]byte(response), &existingResult); err != nil {
		return &entity.GameResult{}, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &existingResult, nil
}

func (that *dbResult) DeleteByID(ctx context.Context, id string) error {
	resultKey := "result:" + id

	if err := that.client.Del(ctx, resultKey).Err(); err != nil {
		return fmt.Errorf("failed to delete result by id: %w", err)
	}

	return nil
}
