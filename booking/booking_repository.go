package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const activeDateIndex = "booking_active_date_idx"

type PostgresRepository struct{ conn *pgx.Conn }

func NewPostgresRepository(conn *pgx.Conn) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

func (r *PostgresRepository) GetBookings(ctx context.Context) ([]Booking, error) {
	sql := `SELECT id, date, name, email, COALESCE(phone, ''), "eventType", venue, COALESCE("startTime", ''), COALESCE(duration, 0), COALESCE(guests, 0), COALESCE(city, ''), COALESCE(message, ''), status, "createdAt"
            FROM "dj-booking".booking
            ORDER BY seq;
        `

	rows, err := r.conn.Query(ctx, sql)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	defer rows.Close()

	var bookings []Booking

	for rows.Next() {
		var booking Booking
		err := rows.Scan(
			&booking.ID,
			&booking.Date,
			&booking.Name,
			&booking.Email,
			&booking.Phone,
			&booking.EventType,
			&booking.Venue,
			&booking.StartTime,
			&booking.Duration,
			&booking.Guests,
			&booking.City,
			&booking.Message,
			&booking.Status,
			&booking.CreatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings rows: %w", err)
	}

	return bookings, nil
}

func (r *PostgresRepository) GetBookingByID(ctx context.Context, id string) (Booking, error) {
	sql := `
			SELECT id, date, name, email, COALESCE(phone, ''), "eventType", venue, COALESCE("startTime", ''), COALESCE(duration, 0), COALESCE(guests, 0), COALESCE(city, ''), COALESCE(message, ''), status, "createdAt"
			FROM "dj-booking".booking
			WHERE id=$1;
		`

	var booking Booking
	err := r.conn.QueryRow(ctx, sql, id).Scan(
		&booking.ID,
		&booking.Date,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.EventType,
		&booking.Venue,
		&booking.StartTime,
		&booking.Duration,
		&booking.Guests,
		&booking.City,
		&booking.Message,
		&booking.Status,
		&booking.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrBookingNotFound
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to fetch booking with id %v: %w", id, err)
	}

	return booking, nil
}

// InsertBooking relies on the partial unique index over active bookings per
// date, so two concurrent inserts for one date cannot both succeed.
func (r *PostgresRepository) InsertBooking(ctx context.Context, booking Booking) (Booking, error) {
	sql := `
			INSERT INTO "dj-booking".booking(
			id, date, name, email, phone, "eventType", venue, "startTime", duration, guests, city, message, status, "createdAt")
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
		`

	_, err := r.conn.Exec(ctx, sql,
		booking.ID,
		booking.Date,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.EventType,
		booking.Venue,
		booking.StartTime,
		booking.Duration,
		booking.Guests,
		booking.City,
		booking.Message,
		booking.Status,
		booking.CreatedAt,
	)

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == activeDateIndex {
		return Booking{}, ErrDateAlreadyBooked
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	return booking, nil
}

func (r *PostgresRepository) SetBookingStatus(ctx context.Context, id string, status string) error {
	sql := `
            UPDATE "dj-booking".booking
            SET status=$1
            WHERE id=$2;
        `

	tag, err := r.conn.Exec(ctx, sql, status, id)

	if err != nil {
		return fmt.Errorf("failed to update booking '%v' status: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}
