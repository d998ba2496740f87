package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"helmhub/internal/auth"
	"helmhub/internal/chat"
	"helmhub/internal/feed"
	"helmhub/internal/fleet"
	"helmhub/internal/logbook"
	"helmhub/internal/notify"
	"helmhub/internal/reviews"
	"helmhub/internal/tuning"
	"helmhub/internal/venues"
	"helmhub/pkg/database"
	"helmhub/pkg/utils"
)

func main() {
	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()

	// Optional: avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Start TCP feed first (so you notice binding errors early)
	hub := feed.NewHub()
	router.GET("/ws", feed.WSHandler(hub))
	tcpSrv := feed.NewServer(":7070", hub)

	// UDP notify for venue verification notices
	notifyReg := notify.NewRegistry()
	notifySrv := notify.NewServer(":7071", notifyReg, nil)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db":          cfg.Path,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// Venues (public read)
	venueRepo := venues.NewRepo(db)
	venueHandler := venues.NewHandler(venueRepo, hub, notifySrv)
	venueHandler.RegisterRoutes(router.Group("/venues"))

	// Tuning guides (public, static data)
	tuningHandler := tuning.NewHandler()
	tuningHandler.RegisterRoutes(router.Group("/tuning"))

	// Venue chat
	chatHub := chat.NewHub(0)
	router.GET("/venues/:id/chat", chat.WSHandler(chatHub))
	router.GET("/venues/:id/chat/history", chat.HistoryHandler(chatHub))

	// Venue reviews (public list)
	reviewRepo := reviews.NewRepo(db)
	reviewHandler := reviews.NewHandler(reviewRepo)
	reviewHandler.RegisterPublicRoutes(router.Group(""))

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Protected routes
	protected := router.Group("/users")
	protected.Use(auth.AuthMiddleware(tokenSvc, authRepo))

	protected.GET("/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"email":    claims.Email,
		})
	})

	// Fleet (protected)
	fleetRepo := fleet.NewRepo(db)
	fleetHandler := fleet.NewHandler(fleetRepo, hub)
	fleetHandler.RegisterRoutes(protected)

	// Logbook (protected)
	logbookRepo := logbook.NewRepo(db)
	logbookHandler := logbook.NewHandler(logbookRepo)
	logbookHandler.RegisterRoutes(protected)

	// Reviews create/delete and venue verification (protected)
	reviewHandler.RegisterProtectedRoutes(protected)
	venueHandler.RegisterProtectedRoutes(protected)

	httpSrv := &http.Server{
		Addr:    ":8080",
		Handler: router,
	}

	errCh := make(chan error, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := notifySrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("HTTP API server listening on :8080")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}
	if err := notifySrv.Close(); err != nil {
		log.Printf("udp shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}
