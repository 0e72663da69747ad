package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"bookit-platform/internal/models"
)

// ExperienceService is the catalog and availability read path
type ExperienceService struct {
	experiences ExperienceRepositoryInterface
	slots       SlotRepositoryInterface
	cache       ExperienceCache
}

// NewExperienceService creates a new experience service. cache may be nil.
func NewExperienceService(experiences ExperienceRepositoryInterface, slots SlotRepositoryInterface, cache ExperienceCache) *ExperienceService {
	return &ExperienceService{
		experiences: experiences,
		slots:       slots,
		cache:       cache,
	}
}

// GetExperience returns an experience with all of its slots. Sold out slots
// are included; callers mark them using Slot.IsSoldOut.
func (s *ExperienceService) GetExperience(ctx context.Context, id string) (*models.Experience, error) {
	experience, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrExperienceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	slots, err := s.slots.GetByExperience(ctx, experience.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	experience.Slots = slots

	return experience, nil
}

// ListExperiences returns every experience, or those whose title, location
// or description contains search. No match yields an empty list.
func (s *ExperienceService) ListExperiences(ctx context.Context, search string) ([]*models.Experience, error) {
	term := models.SanitizeSearchTerm(search)

	if s.cache != nil {
		cached, ok, err := s.cache.GetList(ctx, term)
		if err != nil {
			log.Printf("Warning: experience cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	experiences, err := s.experiences.List(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	if experiences == nil {
		experiences = []*models.Experience{}
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, term, experiences); err != nil {
			log.Printf("Warning: experience cache write failed: %v", err)
		}
	}

	return experiences, nil
}
