package services

import (
	"bookcatalog_server/structs"

	"github.com/MonkyMars/gecho"
)

func testLogger() *gecho.Logger {
	return gecho.NewDefaultLogger()
}

func testConfig() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			Environment: "test",
			PublicURL:   "http://books.test",
		},
		Auth: &structs.AuthConfig{
			TokenSecret: "test-secret",
			Argon:       &structs.ArgonParams{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16},
		},
		Cache: &structs.CacheConfig{},
		Queue: &structs.QueueConfig{Key: "queue:test", MaxAttempts: 3},
	}
}
