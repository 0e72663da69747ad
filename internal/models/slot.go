package models

import (
	"fmt"
	"time"
)

// Slot is a fixed-capacity time window for one experience
type Slot struct {
	ID           string    `json:"id" db:"id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	ExperienceID string    `json:"experience_id" db:"experience_id"`
	StartTime    time.Time `json:"start_time" db:"start_time"`
	EndTime      time.Time `json:"end_time" db:"end_time"`
	TotalSpots   int       `json:"total_spots" db:"total_spots"`
	SpotsBooked  int       `json:"spots_booked" db:"spots_booked"`
}

// Available returns the number of spots that can still be booked
func (s *Slot) Available() int {
	available := s.TotalSpots - s.SpotsBooked
	if available < 0 {
		return 0
	}
	return available
}

// IsSoldOut returns true if no spots remain
func (s *Slot) IsSoldOut() bool {
	return s.Available() == 0
}

// CanBook returns true if the slot can take the given number of guests
func (s *Slot) CanBook(guests int) bool {
	return guests > 0 && guests <= s.Available()
}

// Validate validates the slot data
func (s *Slot) Validate() error {
	if s.ExperienceID == "" {
		return NewValidationError("experience_id", "experience is required")
	}
	if s.TotalSpots <= 0 {
		return NewValidationError("total_spots", "total spots must be greater than 0")
	}
	if s.SpotsBooked < 0 || s.SpotsBooked > s.TotalSpots {
		return NewValidationError("spots_booked", fmt.Sprintf("spots booked must be between 0 and %d", s.TotalSpots))
	}
	if !s.EndTime.After(s.StartTime) {
		return NewValidationError("end_time", "end time must be after start time")
	}
	return nil
}

// SlotWindow is one daily bookable window. MinBooked/MaxBooked bound the
// randomized initial booked count used for demo inventory.
type SlotWindow struct {
	StartHour int
	EndHour   int
	MinBooked int
	MaxBooked int
}

// SlotSchedule describes the rolling inventory window
type SlotSchedule struct {
	Days            int
	Windows         []SlotWindow
	Capacity        int
	RandomizeBooked bool
}

// DefaultSlotSchedule returns 10 days of 09-11, 11-13 and 13-15 windows with 10 spots each
func DefaultSlotSchedule() SlotSchedule {
	return SlotSchedule{
		Days: 10,
		Windows: []SlotWindow{
			{StartHour: 9, EndHour: 11, MinBooked: 0, MaxBooked: 10},
			{StartHour: 11, EndHour: 13, MinBooked: 0, MaxBooked: 8},
			{StartHour: 13, EndHour: 15, MinBooked: 5, MaxBooked: 10},
		},
		Capacity: 10,
	}
}

// SlotsPerExperience returns how many slots one experience gets per refresh
func (s SlotSchedule) SlotsPerExperience() int {
	return s.Days * len(s.Windows)
}

// RefreshSummary reports the outcome of an inventory refresh
type RefreshSummary struct {
	SlotsCreated         int `json:"slotsCreated"`
	SlotsDeleted         int `json:"slotsDeleted"`
	ExperiencesProcessed int `json:"experiencesProcessed"`
}

// StartOfDay truncates t to midnight in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
