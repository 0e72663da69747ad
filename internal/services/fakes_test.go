package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bookit-platform/internal/models"

	"github.com/google/uuid"
)

// memoryStore is an in-memory implementation of the repository interfaces.
// A single mutex stands in for the row lock taken by the SQL repositories.
type memoryStore struct {
	mu            sync.Mutex
	experiences   map[string]*models.Experience
	slots         map[string]*models.Slot
	bookings      []*models.Booking
	promos        map[string]*models.PromoCode
	newRef        func() (string, error)
	shouldFailOps map[string]bool
	calls         map[string]int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		experiences:   make(map[string]*models.Experience),
		slots:         make(map[string]*models.Slot),
		promos:        make(map[string]*models.PromoCode),
		newRef:        models.GenerateBookingRef,
		shouldFailOps: make(map[string]bool),
		calls:         make(map[string]int),
	}
}

func (m *memoryStore) track(op string) error {
	m.calls[op]++
	if m.shouldFailOps[op] {
		return errors.New("mock error")
	}
	return nil
}

func (m *memoryStore) addExperience(title, location, description string, created time.Time) *models.Experience {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp := &models.Experience{
		ID:          uuid.NewString(),
		CreatedAt:   created,
		Title:       title,
		Location:    location,
		Description: description,
		ImageURLs:   []string{},
	}
	m.experiences[exp.ID] = exp
	return exp
}

func (m *memoryStore) addSlot(experienceID string, start time.Time, total, booked int) *models.Slot {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot := &models.Slot{
		ID:           uuid.NewString(),
		ExperienceID: experienceID,
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		TotalSpots:   total,
		SpotsBooked:  booked,
	}
	m.slots[slot.ID] = slot
	return slot
}

func (m *memoryStore) slot(id string) *models.Slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *m.slots[id]
	return &copied
}

func (m *memoryStore) slotCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

// ExperienceRepositoryInterface

func (m *memoryStore) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("GetExperience"); err != nil {
		return nil, err
	}
	exp, ok := m.experiences[id]
	if !ok {
		return nil, models.ErrExperienceNotFound
	}
	copied := *exp
	return &copied, nil
}

func (m *memoryStore) List(ctx context.Context, term string) ([]*models.Experience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("List"); err != nil {
		return nil, err
	}
	var result []*models.Experience
	for _, exp := range m.experiences {
		if exp.MatchesSearch(term) {
			result = append(result, exp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *memoryStore) ListIDs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("ListIDs"); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(m.experiences))
	for id := range m.experiences {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// slotRepo adapts memoryStore to SlotRepositoryInterface, whose GetByID
// collides with the experience lookup
type slotRepo struct{ *memoryStore }

func (r slotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.track("GetSlot"); err != nil {
		return nil, err
	}
	slot, ok := r.slots[id]
	if !ok {
		return nil, models.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (m *memoryStore) GetByExperience(ctx context.Context, experienceID string) ([]*models.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("GetByExperience"); err != nil {
		return nil, err
	}
	slots := make([]*models.Slot, 0)
	for _, slot := range m.slots {
		if slot.ExperienceID == experienceID {
			copied := *slot
			slots = append(slots, &copied)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime.Before(slots[j].StartTime) })
	return slots, nil
}

func (m *memoryStore) RefreshWindow(ctx context.Context, cutoff time.Time, slots []*models.Slot) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("RefreshWindow"); err != nil {
		return 0, 0, err
	}

	deleted := 0
	for id, slot := range m.slots {
		if slot.StartTime.Before(cutoff) {
			delete(m.slots, id)
			deleted++
		}
	}

	existing := make(map[string]bool, len(m.slots))
	for _, slot := range m.slots {
		existing[slotKey(slot)] = true
	}

	created := 0
	for _, slot := range slots {
		if existing[slotKey(slot)] {
			continue
		}
		copied := *slot
		copied.ID = uuid.NewString()
		m.slots[copied.ID] = &copied
		existing[slotKey(slot)] = true
		created++
	}
	return deleted, created, nil
}

func slotKey(slot *models.Slot) string {
	return slot.ExperienceID + "|" + slot.StartTime.UTC().Format(time.RFC3339)
}

// BookingRepositoryInterface

func (m *memoryStore) Reserve(ctx context.Context, params *models.BookingCreateParams) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("Reserve"); err != nil {
		return nil, err
	}

	slot, ok := m.slots[params.SlotID]
	if !ok {
		return nil, models.ErrSlotNotFound
	}
	if params.NumGuests > slot.Available() {
		return nil, &models.CapacityError{Requested: params.NumGuests, Remaining: slot.Available()}
	}

	var ref string
	for attempt := 0; ; attempt++ {
		if attempt == 5 {
			return nil, models.ErrBookingRefConflict
		}
		candidate, err := m.newRef()
		if err != nil {
			return nil, err
		}
		if !m.refTaken(candidate) {
			ref = candidate
			break
		}
	}

	slot.SpotsBooked += params.NumGuests
	booking := &models.Booking{
		ID:         uuid.NewString(),
		SlotID:     params.SlotID,
		UserID:     params.UserID,
		UserEmail:  params.UserEmail,
		UserName:   params.UserName,
		NumGuests:  params.NumGuests,
		TotalPrice: params.TotalPrice,
		Status:     models.BookingConfirmed,
		BookingRef: ref,
		CreatedAt:  time.Now().Add(time.Duration(len(m.bookings)) * time.Millisecond),
	}
	m.bookings = append(m.bookings, booking)
	return booking, nil
}

func (m *memoryStore) refTaken(ref string) bool {
	for _, b := range m.bookings {
		if b.BookingRef == ref {
			return true
		}
	}
	return false
}

func (m *memoryStore) details(b *models.Booking) *models.BookingWithDetails {
	d := &models.BookingWithDetails{Booking: b}
	if slot, ok := m.slots[b.SlotID]; ok {
		d.Slot = slot
		d.Experience = m.experiences[slot.ExperienceID]
	}
	d.Corrupted = d.Slot == nil || d.Experience == nil
	return d
}

func (m *memoryStore) ListByUser(ctx context.Context, userID string) ([]*models.BookingWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("ListByUser"); err != nil {
		return nil, err
	}
	result := make([]*models.BookingWithDetails, 0)
	for i := len(m.bookings) - 1; i >= 0; i-- {
		if m.bookings[i].UserID == userID {
			result = append(result, m.details(m.bookings[i]))
		}
	}
	return result, nil
}

func (m *memoryStore) GetByRef(ctx context.Context, userID, ref string) (*models.BookingWithDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("GetByRef"); err != nil {
		return nil, err
	}
	for _, b := range m.bookings {
		if b.UserID == userID && b.BookingRef == ref {
			return m.details(b), nil
		}
	}
	return nil, models.ErrBookingNotFound
}

// PromoRepositoryInterface

func (m *memoryStore) GetActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.track("GetActiveByCode"); err != nil {
		return nil, err
	}
	promo, ok := m.promos[strings.ToUpper(code)]
	if !ok || !promo.IsActive {
		return nil, models.ErrPromoNotFound
	}
	return promo, nil
}

func (m *memoryStore) addPromo(promo *models.PromoCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promos[strings.ToUpper(promo.CodeText)] = promo
}

func testIdentity() *models.Identity {
	return &models.Identity{UserID: "user_2abc", Email: "guest@example.com", Name: "Guest User"}
}

func mustParseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(fmt.Sprintf("bad test time %q: %v", value, err))
	}
	return t
}
