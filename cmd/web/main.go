package main

import (
	"encoding/base64"
	"flag"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kintai-app/kintai/config"
	"github.com/kintai-app/kintai/core"
	"github.com/kintai-app/kintai/store"
	"github.com/kintai-app/kintai/web/handlers/attendance"
	"github.com/kintai-app/kintai/web/middlewares"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.Server.JWTSecret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	cache, err := store.OpenLocalCache(cfg.Cache.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer cache.Close()

	remote, err := store.OpenRemote(cfg.Remote.DSN, cfg.Remote.MaxConnections)
	if err != nil {
		log.Fatal(err)
	}
	defer remote.Close()

	registry := core.NewRegistry(cache, remote)
	defer registry.Wait()

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	attendance.Register(protected, registry, attendance.Options{
		ArchiveBucket: cfg.Archive.Bucket,
		ArchivePrefix: cfg.Archive.Prefix,
	})

	if err := r.Run(cfg.Server.Listen); err != nil {
		log.Fatal(err)
	}
}
