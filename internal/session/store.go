package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/storage"
)

// Store keeps the signed-in user of each device. A device without a record
// is not authenticated.
type Store struct {
	kv storage.Storage
}

func NewStore(kv storage.Storage) *Store {
	return &Store{kv: kv}
}

func key(deviceID string) string {
	return storage.Key(storage.SessionKeyPrefix, deviceID)
}

func (s *Store) Save(ctx context.Context, deviceID string, user *models.User) error {

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return s.kv.Set(ctx, key(deviceID), data)
}

// Current returns the signed-in user, or nil when the device has no session.
func (s *Store) Current(ctx context.Context, deviceID string) (*models.User, error) {

	data, found, err := s.kv.Get(ctx, key(deviceID))
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &user, nil
}

func (s *Store) Clear(ctx context.Context, deviceID string) error {
	return s.kv.Delete(ctx, key(deviceID))
}
