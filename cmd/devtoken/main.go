// Command devtoken prints a signed bearer token for local testing against
// the API. It uses the same JWT_SECRET as the server.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"startask/internal/config"
	"startask/internal/domain"
	"startask/internal/service/auth"
)

func main() {
	userFlag := flag.String("user", "", "user id (random when empty)")
	roleFlag := flag.String("role", string(domain.RoleMember), "admin, leader or member")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			log.WithError(err).Fatal("invalid -user")
		}
		userID = parsed
	}

	role := domain.UserRole(*roleFlag)
	if !role.IsValid() {
		log.WithField("role", *roleFlag).Fatal("invalid -role")
	}

	token, err := auth.NewService(cfg.JWTSecret).IssueToken(domain.Principal{UserID: userID, Role: role}, *ttl)
	if err != nil {
		log.WithError(err).Fatal("issuing token")
	}

	fmt.Println(token)
}
