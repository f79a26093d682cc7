package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"storefront-api/internal/cart"
	"storefront-api/internal/catalog"
	"storefront-api/pkg/storage"
)

var (
	rateLimiters = make(map[string]*rate.Limiter)
	rateMutex    = &sync.RWMutex{}
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8085"
	}

	storageKey := os.Getenv("CART_STORAGE_KEY")
	if storageKey == "" {
		storageKey = "storefront:cart"
	}

	redisStore := storage.NewRedisStorage(storageKey, log)
	var cartStorage storage.CartStorage = redisStore
	if !redisStore.Available() {
		log.Warn("falling back to in-memory cart storage")
		cartStorage = storage.NewMemoryStorage()
	}
	defer cartStorage.Close()

	cartStore := cart.NewStore(cartStorage, log)
	cartStore.Load(context.Background())
	defer cartStore.Close()

	catalogURL := os.Getenv("CATALOG_URL")
	if catalogURL == "" {
		catalogURL = fmt.Sprintf("http://localhost:%s/api/products", port)
	}
	catalogStore := catalog.NewStore(catalogURL, &http.Client{Timeout: 10 * time.Second}, log)

	r := gin.Default()

	// CORS for the demo front-end
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Request ID + request log
	r.Use(func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)
		start := time.Now()
		c.Next()
		log.Infow("request",
			"id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	})

	r.Use(rateLimitMiddleware())

	s := &server{
		cart:        cartStore,
		catalog:     catalogStore,
		cartStorage: cartStorage,
		log:         log,
	}
	s.routes(r)

	// The default catalog URL points back at this process, so the initial
	// fetch runs once the listener is up.
	go func() {
		time.Sleep(250 * time.Millisecond)
		catalogStore.FetchProducts(context.Background())
	}()

	log.Infow("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}

func getRateLimiter(ip string) *rate.Limiter {
	rateMutex.RLock()
	limiter, exists := rateLimiters[ip]
	rateMutex.RUnlock()

	if !exists {
		rateMutex.Lock()
		limiter = rate.NewLimiter(rate.Limit(10), 20) // 10 req/sec, burst 20
		rateLimiters[ip] = limiter
		rateMutex.Unlock()
	}

	return limiter
}

func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := getRateLimiter(ip)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limit_exceeded",
				"message":     "Too many requests from your IP",
				"retry_after": "1 second",
				"ip":          ip,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
