package downdetect

import (
	"context"
	"fmt"
	"time"

	"extlog/internal/features/kvstore"
)

const pingTimeout = 5 * time.Second

type DowndetectService struct {
	store kvstore.Store
}

func NewDowndetectService(store kvstore.Store) *DowndetectService {
	return &DowndetectService{store}
}

func (s *DowndetectService) IsAvailable(ctx context.Context) error {
	if !kvstore.IsAvailable(s.store) {
		return kvstore.ErrStorageUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("storage check failed: %w", err)
	}

	return nil
}
