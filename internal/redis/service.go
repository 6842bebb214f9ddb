package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Service is the token revocation store. Logout writes the token's jti
// with the token's remaining lifetime; entries expire on their own once
// the token itself would no longer verify.
type Service struct {
	client *redis.Client
}

// NewService creates a new Redis service
func NewService(addr, password string, db int) *Service {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		return nil
	}

	log.Println("Successfully connected to Redis")
	return &Service{client: client}
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("token:%s:revoked", tokenID)
}

// RevokeToken marks the token id as revoked until the token would expire
// anyway
func (s *Service) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
	if err != nil {
		log.Printf("Failed to revoke token %s: %v", tokenID, err)
		return err
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked
func (s *Service) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		log.Printf("Failed to check token %s: %v", tokenID, err)
		return false, err
	}
	return n > 0, nil
}

// Close closes the underlying client
func (s *Service) Close() error {
	return s.client.Close()
}
