// Command tokengen mints a session token for manual API testing.
//
//	tokengen -user 11111111-1111-1111-1111-111111111111 -role landlord
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"leasegate/internal/platform/config"
	"leasegate/internal/session"
	"leasegate/pkg/domain"
)

func main() {
	userFlag := flag.String("user", "", "user ID (UUID) the token is issued for")
	roleFlag := flag.String("role", "tenant", "role claim: landlord, tenant, vendor, or admin")
	ttlFlag := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := run(*userFlag, *roleFlag, *ttlFlag); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(user, role string, ttl time.Duration) error {
	userID, err := domain.ParseUserID(user)
	if err != nil {
		return err
	}

	r := domain.Role(role)
	if !r.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg := config.FromEnv()
	sessions, err := session.NewJWTService(cfg.SessionKey, ttl)
	if err != nil {
		return err
	}

	token, err := sessions.IssueToken(userID, r)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
