package order

import (
	"time"

	"github.com/corray333/digital-store/internal/service/models/cartitem"
	"github.com/corray333/digital-store/internal/service/models/downloadlink"
	"github.com/corray333/digital-store/internal/service/models/status"
)

// Order represents a completed checkout. It is written once and never
// mutated: the amount is derived from catalog prices at creation time and
// later price changes do not affect it.
type Order struct {
	ID            string                      `json:"id"`
	Status        status.Status               `json:"status"`
	Amount        float64                     `json:"amount"`
	Items         []cartitem.CartItem         `json:"items"`
	CustomerName  string                      `json:"customer_name"`
	CustomerEmail string                      `json:"customer_email"`
	DownloadLinks []downloadlink.DownloadLink `json:"download_links"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// LinkByToken returns the download link carrying the token, if any.
func (o *Order) LinkByToken(token string) (downloadlink.DownloadLink, bool) {
	for _, l := range o.DownloadLinks {
		if l.Token == token {
			return l, true
		}
	}

	return downloadlink.DownloadLink{}, false
}
