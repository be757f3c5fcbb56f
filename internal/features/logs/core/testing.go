package logs_core

import (
	"extlog/internal/features/kvstore"
	"extlog/internal/util/logger"
)

const TestAgentInfo = "extlog-test-agent"

// CreateTestLogStore returns a store over a fresh in-memory backend.
func CreateTestLogStore(capacity int) (*LogStore, *kvstore.MemoryStore) {
	store := kvstore.NewMemoryStore()
	return CreateTestLogStoreWithBackend(store, capacity), store
}

func CreateTestLogStoreWithBackend(store kvstore.Store, capacity int) *LogStore {
	return NewLogStore(
		store,
		Environment{Origin: BackgroundOrigin, AgentInfo: TestAgentInfo},
		capacity,
		logger.GetLogger(),
	)
}
