package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/application"
)

// ReservationCache は顧客別の予約一覧キャッシュを管理する
// 予約の変更時に無効化され、クエリ側からリードスルーで埋め直される
type ReservationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReservationCache は新しいReservationCacheインスタンスを作成する
func NewReservationCache(client *redis.Client, ttl time.Duration) *ReservationCache {
	return &ReservationCache{client: client, ttl: ttl}
}

// GetList は顧客の予約一覧をキャッシュから取得する
// ミスの場合は ok=false を返す
func (c *ReservationCache) GetList(ctx context.Context, customerID string) ([]application.ReservationDTO, bool, error) {
	data, err := c.client.Get(ctx, c.listKey(customerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var list []application.ReservationDTO
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false, fmt.Errorf("キャッシュのデコードに失敗: %w", err)
	}
	return list, true, nil
}

// SetList は顧客の予約一覧をキャッシュに保存する
func (c *ReservationCache) SetList(ctx context.Context, customerID string, list []application.ReservationDTO) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("キャッシュのエンコードに失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.listKey(customerID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// InvalidateList は顧客の予約一覧キャッシュを無効化する
func (c *ReservationCache) InvalidateList(ctx context.Context, customerID string) error {
	if err := c.client.Del(ctx, c.listKey(customerID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *ReservationCache) listKey(customerID string) string {
	return fmt.Sprintf("reservations:customer:%s", customerID)
}

var _ application.Cache = (*ReservationCache)(nil)
