package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookit-platform/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// maxRefAttempts bounds booking_ref re-rolls on collision
const maxRefAttempts = 5

// BookingRepository handles booking data operations and owns the
// transactional seat reservation
type BookingRepository struct {
	db     *sql.DB
	newRef func() (string, error)
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db, newRef: models.GenerateBookingRef}
}

// WithRefGenerator replaces the booking reference generator
func (r *BookingRepository) WithRefGenerator(gen func() (string, error)) *BookingRepository {
	r.newRef = gen
	return r
}

const bookingColumns = `id, slot_id, user_id, user_email, user_name, num_guests, total_price, status, booking_ref, created_at`

// Reserve locks the slot row, checks capacity, increments spots_booked and
// inserts the booking, all in one transaction. Nothing is written unless
// every step succeeds.
func (r *BookingRepository) Reserve(ctx context.Context, params *models.BookingCreateParams) (*models.Booking, error) {
	if !isUUID(params.SlotID) {
		return nil, models.ErrSlotNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var totalSpots, spotsBooked int
	err = tx.QueryRowContext(ctx, `
		SELECT total_spots, spots_booked
		FROM availability_slots
		WHERE id = $1
		FOR UPDATE`, params.SlotID).Scan(&totalSpots, &spotsBooked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to check slot availability: %w", err)
	}

	available := totalSpots - spotsBooked
	if available < 0 {
		available = 0
	}
	if params.NumGuests > available {
		return nil, &models.CapacityError{Requested: params.NumGuests, Remaining: available}
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE availability_slots
		SET spots_booked = spots_booked + $2
		WHERE id = $1 AND spots_booked + $2 <= total_spots`, params.SlotID, params.NumGuests)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve spots: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return nil, &models.CapacityError{Requested: params.NumGuests, Remaining: available}
	}

	booking, err := r.insertBooking(ctx, tx, params)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	return booking, nil
}

// insertBooking writes the booking row, re-rolling the reference when it
// collides with an existing one. ON CONFLICT keeps the transaction usable
// after a collision.
func (r *BookingRepository) insertBooking(ctx context.Context, tx *sql.Tx, params *models.BookingCreateParams) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (slot_id, user_id, user_email, user_name, num_guests, total_price, status, booking_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (booking_ref) DO NOTHING
		RETURNING ` + bookingColumns

	for attempt := 0; attempt < maxRefAttempts; attempt++ {
		ref, err := r.newRef()
		if err != nil {
			return nil, err
		}

		booking, err := scanBooking(tx.QueryRowContext(ctx, query,
			params.SlotID,
			params.UserID,
			params.UserEmail,
			params.UserName,
			params.NumGuests,
			params.TotalPrice,
			models.BookingConfirmed,
			ref,
		))
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}
		return booking, nil
	}

	return nil, models.ErrBookingRefConflict
}

const bookingDetailsQuery = `
	SELECT b.id, b.slot_id, b.user_id, b.user_email, b.user_name, b.num_guests,
	       b.total_price, b.status, b.booking_ref, b.created_at,
	       s.id, s.created_at, s.experience_id, s.start_time, s.end_time, s.total_spots, s.spots_booked,
	       e.id, e.created_at, e.title, e.description, e.price, e.location, e.image_urls
	FROM bookings b
	LEFT JOIN availability_slots s ON s.id = b.slot_id
	LEFT JOIN experiences e ON e.id = s.experience_id`

// ListByUser returns the bookings owned by userID, newest first, joined with
// their slot and experience
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*models.BookingWithDetails, error) {
	query := bookingDetailsQuery + `
	WHERE b.user_id = $1
	ORDER BY b.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*models.BookingWithDetails, 0)
	for rows.Next() {
		booking, err := scanBookingWithDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}

// GetByRef returns one of userID's bookings by its reference
func (r *BookingRepository) GetByRef(ctx context.Context, userID, ref string) (*models.BookingWithDetails, error) {
	query := bookingDetailsQuery + `
	WHERE b.user_id = $1 AND b.booking_ref = $2`

	booking, err := scanBookingWithDetails(r.db.QueryRowContext(ctx, query, userID, ref))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.UserID,
		&booking.UserEmail,
		&booking.UserName,
		&booking.NumGuests,
		&booking.TotalPrice,
		&booking.Status,
		&booking.BookingRef,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// scanBookingWithDetails scans a bookingDetailsQuery row. Slot and experience
// columns are nullable because of the LEFT JOINs.
func scanBookingWithDetails(row rowScanner) (*models.BookingWithDetails, error) {
	booking := &models.Booking{}

	var slotID, slotExperienceID sql.NullString
	var slotCreatedAt, slotStart, slotEnd sql.NullTime
	var slotTotal, slotBooked sql.NullInt64
	var expID, expTitle, expDescription, expLoc sql.NullString
	var expCreatedAt sql.NullTime
	var expPrice decimal.NullDecimal
	var expImages pq.StringArray

	err := row.Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.UserID,
		&booking.UserEmail,
		&booking.UserName,
		&booking.NumGuests,
		&booking.TotalPrice,
		&booking.Status,
		&booking.BookingRef,
		&booking.CreatedAt,
		&slotID, &slotCreatedAt, &slotExperienceID, &slotStart, &slotEnd, &slotTotal, &slotBooked,
		&expID, &expCreatedAt, &expTitle, &expDescription, &expPrice, &expLoc, &expImages,
	)
	if err != nil {
		return nil, err
	}

	details := &models.BookingWithDetails{Booking: booking}

	if slotID.Valid {
		details.Slot = &models.Slot{
			ID:           slotID.String,
			CreatedAt:    slotCreatedAt.Time,
			ExperienceID: slotExperienceID.String,
			StartTime:    slotStart.Time,
			EndTime:      slotEnd.Time,
			TotalSpots:   int(slotTotal.Int64),
			SpotsBooked:  int(slotBooked.Int64),
		}
	}

	if expID.Valid {
		images := []string(expImages)
		if images == nil {
			images = []string{}
		}
		details.Experience = &models.Experience{
			ID:          expID.String,
			CreatedAt:   expCreatedAt.Time,
			Title:       expTitle.String,
			Description: expDescription.String,
			Price:       expPrice.Decimal,
			Location:    expLoc.String,
			ImageURLs:   images,
		}
	}

	details.Corrupted = details.Slot == nil || details.Experience == nil
	return details, nil
}
