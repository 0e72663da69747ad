package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookit-platform/internal/models"

	"github.com/lib/pq"
)

// SlotRepository handles availability slot data operations
type SlotRepository struct {
	db *sql.DB
}

// NewSlotRepository creates a new slot repository
func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = `id, created_at, experience_id, start_time, end_time, total_spots, spots_booked`

// GetByID retrieves a slot by ID
func (r *SlotRepository) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	if !isUUID(id) {
		return nil, models.ErrSlotNotFound
	}

	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	return slot, nil
}

// GetByExperience returns every slot of an experience ordered by start time,
// sold out slots included
func (r *SlotRepository) GetByExperience(ctx context.Context, experienceID string) ([]*models.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE experience_id = $1
		ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, experienceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	defer rows.Close()

	slots := make([]*models.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slots: %w", err)
	}

	return slots, nil
}

// RefreshWindow deletes every slot starting before cutoff and inserts the
// given slots in the same transaction. Slots whose (experience_id, start_time)
// already exists are skipped, so created only counts new rows.
func (r *SlotRepository) RefreshWindow(ctx context.Context, cutoff time.Time, slots []*models.Slot) (deleted, created int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM availability_slots WHERE start_time < $1`, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to delete expired slots: %w", err)
	}
	deletedRows, err := result.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if len(slots) > 0 {
		batch := newSlotBatch(slots)
		result, err := tx.ExecContext(ctx, `
			INSERT INTO availability_slots (experience_id, start_time, end_time, total_spots, spots_booked)
			SELECT * FROM unnest($1::uuid[], $2::timestamptz[], $3::timestamptz[], $4::int[], $5::int[])
			ON CONFLICT (experience_id, start_time) DO NOTHING`,
			batch.experienceIDs, batch.startTimes, batch.endTimes, batch.totalSpots, batch.spotsBooked)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to insert slots: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to get inserted rows: %w", err)
		}
		created = int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit slot refresh: %w", err)
	}

	return int(deletedRows), created, nil
}

// slotBatch holds slot columns as parallel arrays for a single unnest insert
type slotBatch struct {
	experienceIDs pq.StringArray
	startTimes    pq.StringArray
	endTimes      pq.StringArray
	totalSpots    pq.Int64Array
	spotsBooked   pq.Int64Array
}

func newSlotBatch(slots []*models.Slot) slotBatch {
	batch := slotBatch{
		experienceIDs: make(pq.StringArray, len(slots)),
		startTimes:    make(pq.StringArray, len(slots)),
		endTimes:      make(pq.StringArray, len(slots)),
		totalSpots:    make(pq.Int64Array, len(slots)),
		spotsBooked:   make(pq.Int64Array, len(slots)),
	}
	for i, slot := range slots {
		batch.experienceIDs[i] = slot.ExperienceID
		batch.startTimes[i] = slot.StartTime.Format(time.RFC3339Nano)
		batch.endTimes[i] = slot.EndTime.Format(time.RFC3339Nano)
		batch.totalSpots[i] = int64(slot.TotalSpots)
		batch.spotsBooked[i] = int64(slot.SpotsBooked)
	}
	return batch
}

func scanSlot(row rowScanner) (*models.Slot, error) {
	slot := &models.Slot{}
	err := row.Scan(
		&slot.ID,
		&slot.CreatedAt,
		&slot.ExperienceID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.TotalSpots,
		&slot.SpotsBooked,
	)
	if err != nil {
		return nil, err
	}
	return slot, nil
}
