// File: services/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"reservekit/models"
	"reservekit/utils"
)

const slotCacheTTL = 5 * time.Minute

func slotCacheKey(serviceID string, dayOfWeek int) string {
	return fmt.Sprintf("timeslots:%s:day:%d", serviceID, dayOfWeek)
}

// SlotsForWeekday serves the booking hot path: slots of a service active on
// one weekday, read through the redis cache.
func (s *DefaultCatalogService) SlotsForWeekday(ctx context.Context, serviceID string, dayOfWeek int) ([]models.TimeSlot, error) {
	key := slotCacheKey(serviceID, dayOfWeek)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var slots []models.TimeSlot
			if err := json.Unmarshal([]byte(raw), &slots); err == nil {
				return slots, nil
			}
		}
	}

	slots, err := s.TimeSlots.GetByServiceAndDay(ctx, serviceID, dayOfWeek)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, key, raw, slotCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache weekday slots",
					zap.String("key", key), zap.Error(err))
			}
		}
	}
	return slots, nil
}

// invalidateSlotCache drops every weekday entry of the service after any
// slot write.
func (s *DefaultCatalogService) invalidateSlotCache(ctx context.Context, serviceID string) {
	if s.Cache == nil {
		return
	}
	keys := make([]string, 7)
	for d := 0; d < 7; d++ {
		keys[d] = slotCacheKey(serviceID, d)
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate slot cache",
			zap.String("service_id", serviceID), zap.Error(err))
	}
}
