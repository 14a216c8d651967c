package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/beintransports/booking-api/internal/models"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const vehicleCatalogKey = "vehicles:catalog"

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// CacheVehicleCatalog stores the public vehicle listing in Redis
func CacheVehicleCatalog(ctx context.Context, vehicles []models.Vehicle) error {
	data, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, vehicleCatalogKey, data, time.Hour).Err()
}

// GetCachedVehicleCatalog retrieves the vehicle listing from Redis
func GetCachedVehicleCatalog(ctx context.Context) ([]models.Vehicle, error) {
	data, err := RedisClient.Get(ctx, vehicleCatalogKey).Result()
	if err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	if err := json.Unmarshal([]byte(data), &vehicles); err != nil {
		return nil, err
	}

	return vehicles, nil
}

// InvalidateVehicleCatalog drops the cached listing after an admin mutation
func InvalidateVehicleCatalog(ctx context.Context) error {
	return RedisClient.Del(ctx, vehicleCatalogKey).Err()
}

// PublishBookingUpdate publishes a booking status change to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bookingID uint, status, paymentStatus string) error {
	updateData := map[string]interface{}{
		"bookingId":     bookingID,
		"status":        status,
		"paymentStatus": paymentStatus,
		"timestamp":     time.Now().Unix(),
	}

	data, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "booking:updates", data).Err()
}
