package booking

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD, the unit of conflict detection
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	EventType string    `json:"eventType"`
	Venue     string    `json:"venue"`
	StartTime string    `json:"startTime"`
	Duration  int       `json:"duration"`
	Guests    int       `json:"guests"`
	City      string    `json:"city"`
	Message   string    `json:"message"`
	Status    string    `json:"status"` // pending, confirmed, cancelled
	CreatedAt time.Time `json:"createdAt"`
}

// Active reports whether the booking occupies its date.
func (b Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
