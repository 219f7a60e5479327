package booking_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	bk "github.com/arch1tect/dj-booking-backend/booking"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) (*bk.FileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookings.json")
	return bk.NewFileRepository(path), path
}

func storedBooking(id, date, status string) bk.Booking {
	return bk.Booking{
		ID:        id,
		Date:      date,
		Name:      "John Doe",
		Email:     "john@example.com",
		EventType: "club",
		Venue:     "Azure Club",
		Status:    status,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	first := storedBooking("1", "2026-03-15", "pending")
	second := storedBooking("2", "2026-03-21", "pending")

	_, err := repo.InsertBooking(ctx, first)
	require.Nil(t, err)
	_, err = repo.InsertBooking(ctx, second)
	require.Nil(t, err)

	bookings, err := repo.GetBookings(ctx)
	require.Nil(t, err)
	require.Equal(t, []bk.Booking{first, second}, bookings)

	got, err := repo.GetBookingByID(ctx, "2")
	require.Nil(t, err)
	require.Equal(t, second, got)
}

func TestFileRepositoryEmptyWhenFileMissing(t *testing.T) {
	repo, _ := newFileRepo(t)

	bookings, err := repo.GetBookings(context.Background())
	require.Nil(t, err)
	require.Equal(t, 0, len(bookings))
}

func TestFileRepositoryCorruptedFile(t *testing.T) {
	repo, path := newFileRepo(t)

	require.Nil(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repo.GetBookings(context.Background())
	require.Error(t, err)
}

func TestFileRepositoryDateConflict(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	_, err := repo.InsertBooking(ctx, storedBooking("1", "2026-03-15", "pending"))
	require.Nil(t, err)

	_, err = repo.InsertBooking(ctx, storedBooking("2", "2026-03-15", "pending"))
	require.ErrorIs(t, err, bk.ErrDateAlreadyBooked)

	// the losing insert must not be persisted
	bookings, err := repo.GetBookings(ctx)
	require.Nil(t, err)
	require.Equal(t, 1, len(bookings))
	require.Equal(t, "1", bookings[0].ID)
}

func TestFileRepositoryCancelledFreesDate(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	_, err := repo.InsertBooking(ctx, storedBooking("1", "2026-03-15", "confirmed"))
	require.Nil(t, err)

	require.Nil(t, repo.SetBookingStatus(ctx, "1", "cancelled"))

	_, err = repo.InsertBooking(ctx, storedBooking("2", "2026-03-15", "pending"))
	require.Nil(t, err)
}

func TestFileRepositorySetStatusNotFound(t *testing.T) {
	repo, _ := newFileRepo(t)

	err := repo.SetBookingStatus(context.Background(), "nope", "confirmed")
	require.ErrorIs(t, err, bk.ErrBookingNotFound)
}

func TestFileRepositoryGetByIDNotFound(t *testing.T) {
	repo, _ := newFileRepo(t)

	_, err := repo.GetBookingByID(context.Background(), "nope")
	require.ErrorIs(t, err, bk.ErrBookingNotFound)
}

func TestFileRepositorySurvivesReopen(t *testing.T) {
	repo, path := newFileRepo(t)
	ctx := context.Background()

	inserted := storedBooking("1", "2026-03-15", "pending")
	_, err := repo.InsertBooking(ctx, inserted)
	require.Nil(t, err)

	reopened := bk.NewFileRepository(path)
	bookings, err := reopened.GetBookings(ctx)
	require.Nil(t, err)
	require.Equal(t, []bk.Booking{inserted}, bookings)
}

func TestCreatedDateAppearsInBookedDates(t *testing.T) {
	repo, _ := newFileRepo(t)
	service := bk.NewService(repo, nil)
	ctx := context.Background()

	dates := service.ListBookedDates(ctx)
	require.NotContains(t, dates, "2026-03-15")

	created, err := service.CreateBooking(ctx, storedBooking("", "2026-03-15", ""))
	require.Nil(t, err)
	require.Equal(t, "pending", created.Status)

	dates = service.ListBookedDates(ctx)
	require.Contains(t, dates, "2026-03-15")
}

// Two concurrent creates for the same unoccupied date must yield exactly one
// success and one conflict, never two bookings.
func TestConcurrentCreateSameDate(t *testing.T) {
	repo, _ := newFileRepo(t)
	service := bk.NewService(repo, nil)
	ctx := context.Background()

	const attempts = 10

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			candidate := storedBooking("", "2026-03-15", "")
			_, errs[i] = service.CreateBooking(ctx, candidate)
		}(i)
	}

	wg.Wait()

	successes := 0
	conflicts := 0

	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case err == bk.ErrDateAlreadyBooked:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	require.Equal(t, 1, successes)
	require.Equal(t, attempts-1, conflicts)

	bookings, err := repo.GetBookings(ctx)
	require.Nil(t, err)
	require.Equal(t, 1, len(bookings))
}
