package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// FileRepository stores the whole booking collection as one JSON document,
// matching the flat-file deployment the site started with. A mutex
// serializes every read-modify-write cycle so two concurrent inserts for the
// same date cannot both pass the availability check, and writes go through a
// temp file plus rename so a failed write never truncates the collection.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) GetBookings(ctx context.Context) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *FileRepository) GetBookingByID(ctx context.Context, id string) (Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load()

	if err != nil {
		return Booking{}, err
	}

	for _, booking := range bookings {
		if booking.ID == id {
			return booking, nil
		}
	}

	return Booking{}, ErrBookingNotFound
}

func (r *FileRepository) InsertBooking(ctx context.Context, booking Booking) (Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load()

	if err != nil {
		return Booking{}, err
	}

	for _, existing := range bookings {
		if existing.Date == booking.Date && existing.Active() {
			return Booking{}, ErrDateAlreadyBooked
		}
	}

	bookings = append(bookings, booking)

	if err := r.save(bookings); err != nil {
		return Booking{}, err
	}

	return booking, nil
}

func (r *FileRepository) SetBookingStatus(ctx context.Context, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load()

	if err != nil {
		return err
	}

	for i := range bookings {
		if bookings[i].ID == id {
			bookings[i].Status = status
			return r.save(bookings)
		}
	}

	return ErrBookingNotFound
}

func (r *FileRepository) load() ([]Booking, error) {
	data, err := os.ReadFile(r.path)

	if errors.Is(err, os.ErrNotExist) {
		return []Booking{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read bookings file: %w", err)
	}

	var bookings []Booking

	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("failed to parse bookings file: %w", err)
	}

	return bookings, nil
}

func (r *FileRepository) save(bookings []Booking) error {
	data, err := json.MarshalIndent(bookings, "", "  ")

	if err != nil {
		return fmt.Errorf("failed to marshal bookings: %w", err)
	}

	tmp := r.path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bookings file: %w", err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace bookings file: %w", err)
	}

	return nil
}
