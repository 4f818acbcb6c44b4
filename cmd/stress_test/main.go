package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moodify-shop/moodify/internal/adapter/storage"
	"github.com/moodify-shop/moodify/internal/core/service"
)

const (
	redisAddr     = "localhost:6379"
	cartOwner     = "stress-cart"
	totalRequests = 500
)

// Hammers one cart with concurrent adds through the store to confirm the
// mutation path stays serialized and every write lands in Redis.
func main() {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	// Clear previous test data
	rdb.Del(ctx, "moodify:cart:v2:"+cartOwner)
	rdb.Del(ctx, "moodify:cart:v1:"+cartOwner)

	carts := service.NewCartManager(storage.NewRedisAdapter(rdb), nil)
	store := carts.Store(ctx, cartOwner)
	catalog := service.NewCatalogService()
	products := catalog.Products()

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Add(ctx, products[n%len(products)], 1)
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	snap := store.Snapshot()
	fmt.Printf("adds:     %d in %s (%.0f ops/sec)\n",
		totalRequests, elapsed, float64(totalRequests)/elapsed.Seconds())
	fmt.Printf("entries:  %d\n", len(snap.Lines))
	fmt.Printf("count:    %d\n", snap.Count)
	fmt.Printf("total:    $%s\n", snap.Total.StringFixed(2))

	// Every line is capped at 99, so the badge can lag the request count.
	expected := 0
	for _, l := range snap.Lines {
		if l.Qty > 99 {
			log.Fatalf("entry %s above quantity cap: %d", l.Item.ID, l.Qty)
		}
		expected += l.Qty
	}
	if snap.Count != expected {
		log.Fatalf("badge count %d does not match entries %d", snap.Count, expected)
	}
	fmt.Println("cart state consistent")
}
