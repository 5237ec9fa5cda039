// ABOUTME: Generates access gate secrets and test tokens
// ABOUTME: Prints ACCESS_KEY_HASH/TOKEN_KEY lines for .env files, or a signed token for curl demos

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/services"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s env <access-key>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s token <token-key> [ttl]\n", os.Args[0])
		os.Exit(1)
	}

	switch os.Args[1] {
	case "env":
		hash, err := services.HashAccessKey(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to hash access key: %v\n", err)
			os.Exit(1)
		}
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate token key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("AUTH_MODE=required")
		// Single quotes keep the $ separators of the bcrypt hash literal
		fmt.Printf("ACCESS_KEY_HASH='%s'\n", hash)
		fmt.Printf("TOKEN_KEY=%s\n", hex.EncodeToString(key))

	case "token":
		ttl := time.Hour
		if len(os.Args) > 3 {
			d, err := time.ParseDuration(os.Args[3])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid ttl: %v\n", err)
				os.Exit(1)
			}
			ttl = d
		}
		token, expires, err := services.NewAccessGate("", os.Args[2], ttl).Issue()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires %s\n", expires.Format(time.RFC3339))

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q (use env or token)\n", os.Args[1])
		os.Exit(1)
	}
}
