package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"galerie-server/internal/config"
	"galerie-server/internal/db"
	"galerie-server/internal/handler"
	"galerie-server/internal/repository"
	"galerie-server/internal/router"
	"galerie-server/internal/service"
	"galerie-server/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	configDir := flag.String("config", "config", "configuration directory")
	flag.Parse()

	config.InitConfig(*configDir)
	cfg := config.Get()

	gdb, err := db.Open()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	objects, err := storage.NewS3Store(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("object store init failed: %v", err)
	}

	stores := repository.NewStores(gdb)
	h := handler.New(
		service.NewAuthService(stores),
		service.NewSocialService(stores, objects, cfg.Storage),
		service.NewLifecycleService(stores, objects),
		service.NewProfileService(stores, objects, cfg.Storage),
		service.NewNotificationService(stores),
		service.NewAdminService(stores),
	)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	router.NewRouter(h, stores).Init(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown:", err)
	}
	if err := service.CloseRedisClient(); err != nil {
		log.Printf("redis shutdown: %v", err)
	}
	log.Println("server exited")
}
