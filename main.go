package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"splendor/internal/server"
	"splendor/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	godotenv.Load()

	addr := flag.String("addr", envOr("SPLENDOR_ADDR", ":8080"), "listen address")
	redisAddr := flag.String("redis", envOr("SPLENDOR_REDIS_ADDR", ""), "redis address, empty disables persistence")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	var st *store.Store
	if *redisAddr != "" {
		st, err = store.Open(context.Background(), *redisAddr,
			os.Getenv("SPLENDOR_REDIS_PASSWORD"), logger)
		if err != nil {
			logger.Warn("running without persistence", zap.Error(err))
			st = nil
		} else {
			defer st.Close()
		}
	}

	if err := server.New(*addr, st, logger).Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
