package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/shahidarif12/AstraCommand/internal/auth"
	"github.com/shahidarif12/AstraCommand/internal/config"
	"github.com/shahidarif12/AstraCommand/internal/server"
	"github.com/shahidarif12/AstraCommand/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	gin.SetMode(cfg.GinMode)

	st, err := store.Open(store.Options{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	if err := st.EnsureAdmin(cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatalf("admin seed: %v", err)
	}

	tokenCfg := auth.TokenConfig{
		Secret: cfg.SessionSecret,
		Expiry: cfg.SessionExpiry,
		Issuer: "astracommand",
	}

	router := server.NewRouter(server.Deps{Store: st, TokenConfig: tokenCfg})
	log.Printf("listening on %s", fmt.Sprintf(":%d", cfg.Port))
	log.Fatal(server.Run(cfg, router))
}
