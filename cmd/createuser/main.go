// Command createuser provisions a login account. There is no self-service
// registration; accounts are created with this tool.
//
//	DATABASE_URL=postgres://... go run ./cmd/createuser -username admin -password secret
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/leodalati/Employee-Record-Management-System/internal/app"
	"github.com/leodalati/Employee-Record-Management-System/internal/config"
	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
	"github.com/leodalati/Employee-Record-Management-System/internal/migrations"
	"github.com/leodalati/Employee-Record-Management-System/internal/repo"
	"github.com/leodalati/Employee-Record-Management-System/internal/service"
)

func main() {
	username := flag.String("username", "", "login name of the new account")
	password := flag.String("password", "", "password of the new account")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := migrations.Up(cfg.DB.URL); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	pool, err := app.NewPostgres(cfg.DB.URL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	users, err := service.NewUserService(repo.NewPGUserRepo(pool), 0)
	if err != nil {
		log.Fatalf("user service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := users.Register(ctx, *username, *password)
	if errors.Is(err, dom.ErrUsernameTaken) {
		log.Fatalf("user %q already exists", *username)
	}
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	fmt.Println(u.ID)
}
