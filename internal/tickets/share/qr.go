package share

import (
	"encoding/json"
	"time"

	"github.com/skip2/go-qrcode"

	"ticket-journal/internal/models"
)

// ticketCard is the public subset of a ticket that the share sheet encodes.
// The review and image list stay on-device.
type ticketCard struct {
	Title       string    `json:"title"`
	Artist      string    `json:"artist,omitempty"`
	Place       string    `json:"place,omitempty"`
	PerformedAt time.Time `json:"performed_at"`
}

// TicketQR renders a ticket's share card as a QR code PNG of the given pixel
// size.
func TicketQR(t models.Ticket, size int) ([]byte, error) {
	card := ticketCard{
		Title:       t.Title,
		Artist:      t.Artist,
		Place:       t.Place,
		PerformedAt: t.PerformedAt,
	}
	payload, err := json.Marshal(card)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(payload), qrcode.Medium, size)
}
