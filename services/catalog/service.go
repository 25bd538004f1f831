// File: services/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	serviceRepo "reservekit/database/repository/service"
	"reservekit/models"
	"reservekit/utils"
)

func (s *DefaultCatalogService) CreateService(ctx context.Context, provider *models.Provider, req models.CreateServiceRequest) (*models.Service, error) {
	if req.Name == "" {
		return nil, utils.NewValidationError(utils.CodeMissingRequiredField, "name is required")
	}
	if err := validateTimezone(req.Timezone); err != nil {
		return nil, err
	}
	if slotErrs := validateSlotInputs(req.TimeSlots); len(slotErrs) > 0 {
		apiErr := utils.NewValidationError(utils.CodeInvalidRequest, "one or more time slots are invalid")
		apiErr.Details = slotErrs
		return nil, apiErr
	}

	service := &models.Service{
		ProviderID:  provider.ID,
		Name:        req.Name,
		Description: req.Description,
		Timezone:    req.Timezone,
	}
	slots := make([]models.TimeSlot, len(req.TimeSlots))
	for i, in := range req.TimeSlots {
		slots[i] = slotFromInput(in)
	}

	if err := s.Services.Create(ctx, service, slots); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *DefaultCatalogService) GetService(ctx context.Context, providerID, serviceID string) (*models.Service, error) {
	return s.Services.GetByID(ctx, providerID, serviceID)
}

func (s *DefaultCatalogService) ListServices(ctx context.Context, provider *models.Provider, page utils.PageRequest) ([]models.Service, utils.Pagination, error) {
	limit := int64(page.PageSize)
	if page.NoPagination {
		limit = 0
	}
	services, total, err := s.Services.List(ctx, provider.ID, page.Offset(), limit)
	if err != nil {
		return nil, utils.Pagination{}, fmt.Errorf("failed to list services: %w", err)
	}
	return services, utils.NewPagination(page, total), nil
}

func (s *DefaultCatalogService) UpdateService(ctx context.Context, provider *models.Provider, serviceID string, req models.UpdateServiceRequest) (*models.Service, error) {
	service, err := s.Services.GetByID(ctx, provider.ID, serviceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError(utils.CodeServiceNotFound,
				fmt.Sprintf("service %q not found", serviceID))
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, utils.NewValidationError(utils.CodeMissingRequiredField, "name cannot be empty")
		}
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Timezone != nil {
		if err := validateTimezone(*req.Timezone); err != nil {
			return nil, err
		}
		service.Timezone = *req.Timezone
	}
	if req.Version != nil {
		service.Version = *req.Version
	}

	if err := s.Services.Update(ctx, service); err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrVersionConflict):
			return nil, &utils.APIError{
				Status:  http.StatusConflict,
				Code:    utils.CodeVersionConflict,
				Message: "service was modified concurrently, re-read and retry",
			}
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, utils.NewNotFoundError(utils.CodeServiceNotFound,
				fmt.Sprintf("service %q not found", serviceID))
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

// DeleteService cascade-deletes the service with its time slots, bookings,
// occurrence counters, and customers.
func (s *DefaultCatalogService) DeleteService(ctx context.Context, provider *models.Provider, serviceID string) error {
	if err := s.Services.CascadeDelete(ctx, provider.ID, serviceID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewNotFoundError(utils.CodeServiceNotFound,
				fmt.Sprintf("service %q not found", serviceID))
		}
		return fmt.Errorf("failed to delete service: %w", err)
	}
	s.invalidateSlotCache(ctx, serviceID)
	return nil
}
