// File: services/catalog/timeslot.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	timeslotRepo "reservekit/database/repository/timeslot"
	"reservekit/models"
	"reservekit/utils"
)

func (s *DefaultCatalogService) ListTimeSlots(ctx context.Context, provider *models.Provider, serviceID string, page utils.PageRequest) ([]models.TimeSlot, utils.Pagination, error) {
	service, err := s.requireService(ctx, provider.ID, serviceID)
	if err != nil {
		return nil, utils.Pagination{}, err
	}

	limit := int64(page.PageSize)
	if page.NoPagination {
		limit = 0
	}
	slots, total, err := s.TimeSlots.ListByService(ctx, service.ID, page.Offset(), limit)
	if err != nil {
		return nil, utils.Pagination{}, fmt.Errorf("failed to list time slots: %w", err)
	}
	return slots, utils.NewPagination(page, total), nil
}

// BatchUpsertTimeSlots validates every entry up front and applies the batch
// in one transaction; a single bad slot rejects the whole request with
// per-slot details and nothing persisted.
func (s *DefaultCatalogService) BatchUpsertTimeSlots(ctx context.Context, provider *models.Provider, req models.BatchUpsertTimeSlotsRequest) ([]models.TimeSlot, error) {
	service, err := s.requireService(ctx, provider.ID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if len(req.TimeSlots) == 0 {
		return nil, utils.NewValidationError(utils.CodeMissingRequiredField, "time_slots cannot be empty")
	}
	if slotErrs := validateSlotInputs(req.TimeSlots); len(slotErrs) > 0 {
		apiErr := utils.NewValidationError(utils.CodeInvalidRequest, "one or more time slots are invalid")
		apiErr.Details = slotErrs
		return nil, apiErr
	}

	var inserts, updates []models.TimeSlot
	for _, in := range req.TimeSlots {
		slot := slotFromInput(in)
		if slot.ID == "" {
			inserts = append(inserts, slot)
		} else {
			updates = append(updates, slot)
		}
	}

	if err := s.TimeSlots.BatchUpsert(ctx, service.ID, inserts, updates); err != nil {
		switch {
		case errors.Is(err, timeslotRepo.ErrVersionConflict):
			return nil, &utils.APIError{
				Status:  http.StatusConflict,
				Code:    utils.CodeVersionConflict,
				Message: "a time slot was modified concurrently, re-read and retry",
			}
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, utils.NewNotFoundError(utils.CodeTimeSlotNotFound,
				"a time slot in the batch does not exist for this service")
		}
		return nil, fmt.Errorf("failed to upsert time slots: %w", err)
	}
	s.invalidateSlotCache(ctx, service.ID)

	slots, _, err := s.TimeSlots.ListByService(ctx, service.ID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to reload time slots: %w", err)
	}
	return slots, nil
}

func (s *DefaultCatalogService) DeleteTimeSlot(ctx context.Context, provider *models.Provider, slotID string) error {
	slot, err := s.TimeSlots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewNotFoundError(utils.CodeTimeSlotNotFound,
				fmt.Sprintf("time slot %q not found", slotID))
		}
		return fmt.Errorf("failed to load time slot: %w", err)
	}
	// Scope check: the slot's service must belong to the caller.
	if _, err := s.requireService(ctx, provider.ID, slot.ServiceID); err != nil {
		return utils.NewNotFoundError(utils.CodeTimeSlotNotFound,
			fmt.Sprintf("time slot %q not found", slotID))
	}

	if err := s.TimeSlots.DeleteByID(ctx, slot.ServiceID, slotID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewNotFoundError(utils.CodeTimeSlotNotFound,
				fmt.Sprintf("time slot %q not found", slotID))
		}
		return fmt.Errorf("failed to delete time slot: %w", err)
	}
	s.invalidateSlotCache(ctx, slot.ServiceID)
	return nil
}

// DeleteTimeSlotsByDay removes every slot of the service on the given
// weekday; no matches is a successful no-op.
func (s *DefaultCatalogService) DeleteTimeSlotsByDay(ctx context.Context, provider *models.Provider, serviceID string, dayOfWeek int) (int64, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return 0, utils.NewValidationError(utils.CodeInvalidFieldFormat,
			"day_of_week must be between 0 and 6")
	}
	service, err := s.requireService(ctx, provider.ID, serviceID)
	if err != nil {
		return 0, err
	}

	deleted, err := s.TimeSlots.DeleteByDayOfWeek(ctx, service.ID, dayOfWeek)
	if err != nil {
		return 0, fmt.Errorf("failed to delete time slots by day: %w", err)
	}
	s.invalidateSlotCache(ctx, service.ID)
	return deleted, nil
}

func (s *DefaultCatalogService) GetSlot(ctx context.Context, serviceID, slotID string) (*models.TimeSlot, error) {
	slot, err := s.TimeSlots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.ServiceID != serviceID {
		return nil, mongo.ErrNoDocuments
	}
	return slot, nil
}

func (s *DefaultCatalogService) requireService(ctx context.Context, providerID, serviceID string) (*models.Service, error) {
	service, err := s.Services.GetByID(ctx, providerID, serviceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError(utils.CodeServiceNotFound,
				fmt.Sprintf("service %q not found", serviceID))
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	return service, nil
}
