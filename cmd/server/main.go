package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/moodify-shop/moodify/internal/adapter/handler"
	"github.com/moodify-shop/moodify/internal/adapter/notify"
	"github.com/moodify-shop/moodify/internal/adapter/storage"
	"github.com/moodify-shop/moodify/internal/core/domain"
	"github.com/moodify-shop/moodify/internal/core/service"
	"github.com/moodify-shop/moodify/internal/metrics"
	"github.com/moodify-shop/moodify/internal/port"
)

const (
	defaultHTTPAddr = ":8080"
	defaultMySQLDSN = "root:root@tcp(localhost:3306)/moodify?parseTime=true"
	defaultDataDir  = "./data/moodify"
	workerCount     = 4
	queueSize       = 1024
)

// kvStore is the combined substrate for cart slots and sessions: Redis when
// configured, an embedded Pebble directory otherwise.
type kvStore interface {
	port.CartRepository
	port.SessionRepository
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Order archive
	db, err := sql.Open("mysql", getenv("MYSQL_DSN", defaultMySQLDSN))
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	// Cart slots, sessions and toast delivery
	var (
		kv   kvStore
		sink port.NotificationSink
		rdb  *redis.Client
		peb  *storage.PebbleAdapter
	)
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		kv = storage.NewRedisAdapter(rdb)
		sink = notify.NewRedisSink(rdb)
		log.Println("cart slots on redis")
	} else {
		dir := getenv("DATA_DIR", defaultDataDir)
		peb, err = storage.NewPebbleAdapter(dir)
		if err != nil {
			log.Fatalf("failed to open local store: %v", err)
		}
		kv = peb
		sink = notify.NewLogSink()
		log.Printf("cart slots on local store at %s", dir)
	}

	mets := metrics.NewRegistry()
	catalog := service.NewCatalogService()
	carts := service.NewCartManager(kv, mets)
	checkout := service.NewCheckoutService(sink, mets, service.DefaultProcessingDelay, queueSize)
	auth := service.NewAuthService(kv, sink, service.DefaultSessionTTL)

	mysqlAdapter := storage.NewMySQLAdapter(db)
	if err := mysqlAdapter.SeedProducts(ctx, catalog.Products()); err != nil {
		log.Printf("catalog seed skipped: %v", err)
	}

	// Archive workers drain the checkout queue
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLoop(id, checkout.GetOrderQueue(), mysqlAdapter, mets)
		}(i)
	}
	log.Printf("started %d archive workers", workerCount)

	h := handler.NewHTTPHandler(carts, catalog, checkout, auth, sink)
	router := mux.NewRouter()
	h.Register(router)
	router.Handle("/metrics", mets.Handler()).Methods(http.MethodGet)

	httpServer := &http.Server{
		Addr:    getenv("HTTP_ADDR", defaultHTTPAddr),
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	checkout.CloseQueue()
	wg.Wait()
	log.Println("workers stopped")

	if rdb != nil {
		rdb.Close()
	}
	if peb != nil {
		peb.Close()
	}
	db.Close()
	log.Println("connections closed")
}

func workerLoop(id int, queue <-chan domain.Order, db port.OrderRepository, mets *metrics.Registry) {
	for order := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if err := db.CreateOrder(ctx, order); err != nil {
			log.Printf("worker %d: failed to archive order %s: %v", id, order.ID, err)
			mets.OrdersDropped.Inc()
		} else {
			log.Printf("worker %d: archived order %s", id, order.ID)
			mets.OrdersArchived.Inc()
		}

		cancel()
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
