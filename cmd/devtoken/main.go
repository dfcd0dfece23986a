// Command devtoken prints a signed API token for local testing.
//
//	go run ./cmd/devtoken -user 7 -role customer
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Chibschibs-tech/fitnest/internal/auth"
	"github.com/Chibschibs-tech/fitnest/internal/config"
)

func main() {
	userID := flag.Int64("user", 0, "user id to put in the sub claim")
	role := flag.String("role", auth.RoleCustomer, "customer, manager or administrator")
	flag.Parse()

	if *userID <= 0 {
		log.Fatal("-user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration wasn't loaded due to %s", err)
	}

	token, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL).GenerateToken(*userID, *role)
	if err != nil {
		log.Fatalf("Token wasn't generated due to %s", err)
	}
	fmt.Println(token)
}
