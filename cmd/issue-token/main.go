// Command issue-token prints a bearer token accepted by the write guard.
//
//	API_JWT_SECRET=... go run ./cmd/issue-token -subject alice -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"budget-backend/internal/auth"
	"budget-backend/internal/config"
	"budget-backend/internal/logging"
)

func main() {
	subject := flag.String("subject", "", "token subject, recorded as api:<subject> in the audit log")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logger := logging.New("info", "text")
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Error("API_JWT_SECRET is not set")
		os.Exit(1)
	}
	if *subject == "" {
		logger.Error("-subject is required")
		os.Exit(2)
	}

	token, err := auth.GenerateToken(cfg.JWTSecret, *subject, *ttl)
	if err != nil {
		logger.Error("failed to sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
