package main

import "sync"

type Config struct {
	// AiAlgorithm is one of "alphabeta", "transposition", "mtdf"; it is
	// parsed into an Algorithm once per move at the selector boundary.
	AiAlgorithm      string `json:"ai_algorithm"`
	AiDepth          int    `json:"ai_depth"`
	AiMoveDelayMs    int    `json:"ai_move_delay_ms"`
	AiLogSearchStats bool   `json:"ai_log_search_stats"`
	// AiTtMaxEntries caps the transposition table; 0 means unlimited,
	// which matches the original behavior. A cap only stops growth, it
	// does not evict.
	AiTtMaxEntries int `json:"ai_tt_max_entries"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AiAlgorithm:      "mtdf",
		AiDepth:          5,
		AiMoveDelayMs:    400,
		AiLogSearchStats: false,
		AiTtMaxEntries:   0,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
