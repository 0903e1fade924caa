package redis_repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lojify/storefront/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

// 購物車整份序列化成單一 JSON 值
// 跨分頁同時寫入時採 last-write-wins，不做合併
type CartRepo struct {
	CartCache *redis.Client
	TTL       time.Duration // 0 表示不過期
}

func NewCartRepo(cartCache *redis.Client, ttl time.Duration) *CartRepo {
	return &CartRepo{CartCache: cartCache, TTL: ttl}
}

func generateCartKey(sessionID, storeID string) string {
	return fmt.Sprintf("cart:%s:%s", sessionID, storeID)
}

// LoadCart 反序列化失敗一律視為空購物車，不往上拋
// 舊版 schema 殘留的資料會在下一次 SaveCart 被整份覆蓋
func (r *CartRepo) LoadCart(ctx context.Context, sessionID, storeID string) ([]model.CartItem, error) {
	key := generateCartKey(sessionID, storeID)

	raw, err := r.CartCache.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, nil
	}

	// 過濾掉數量非法的殘留行
	valid := items[:0]
	for _, item := range items {
		if item.ProductID != "" && item.Quantity >= 1 {
			valid = append(valid, item)
		}
	}
	return valid, nil
}

// SaveCart 整份覆寫，每次異動後呼叫
func (r *CartRepo) SaveCart(ctx context.Context, sessionID, storeID string, items []model.CartItem) error {
	key := generateCartKey(sessionID, storeID)

	if len(items) == 0 {
		return r.DeleteCart(ctx, sessionID, storeID)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}

	if err := r.CartCache.Set(ctx, key, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// DeleteCart 清空購物車
func (r *CartRepo) DeleteCart(ctx context.Context, sessionID, storeID string) error {
	key := generateCartKey(sessionID, storeID)

	if err := r.CartCache.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
