// File: services/catalog/interface.go
package catalog

import (
	"context"

	"github.com/go-redis/redis/v8"

	serviceRepo "reservekit/database/repository/service"
	timeslotRepo "reservekit/database/repository/timeslot"
	"reservekit/models"
	"reservekit/utils"
)

// CatalogService owns service and time slot definitions: the authoritative
// store the admission pipeline resolves occurrences against.
type CatalogService interface {
	CreateService(ctx context.Context, provider *models.Provider, req models.CreateServiceRequest) (*models.Service, error)
	GetService(ctx context.Context, providerID, serviceID string) (*models.Service, error)
	ListServices(ctx context.Context, provider *models.Provider, page utils.PageRequest) ([]models.Service, utils.Pagination, error)
	UpdateService(ctx context.Context, provider *models.Provider, serviceID string, req models.UpdateServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, provider *models.Provider, serviceID string) error

	ListTimeSlots(ctx context.Context, provider *models.Provider, serviceID string, page utils.PageRequest) ([]models.TimeSlot, utils.Pagination, error)
	BatchUpsertTimeSlots(ctx context.Context, provider *models.Provider, req models.BatchUpsertTimeSlotsRequest) ([]models.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, provider *models.Provider, slotID string) error
	DeleteTimeSlotsByDay(ctx context.Context, provider *models.Provider, serviceID string, dayOfWeek int) (int64, error)

	// Occurrence-resolution hooks used by the booking pipeline.
	SlotsForWeekday(ctx context.Context, serviceID string, dayOfWeek int) ([]models.TimeSlot, error)
	GetSlot(ctx context.Context, serviceID, slotID string) (*models.TimeSlot, error)
}

// DefaultCatalogService backs the catalog with the mongo repositories and a
// redis read cache for the weekday slot lookups on the booking hot path.
type DefaultCatalogService struct {
	Services  serviceRepo.ServiceRepository
	TimeSlots timeslotRepo.TimeSlotRepository
	Cache     *redis.Client
}
