package product

import "time"

// Product represents a digital good in the catalog. Products are immutable
// after creation; there are no update or delete operations.
type Product struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	FileURL      string    `json:"file_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Downloadable reports whether the product has a deliverable file. A product
// without a file URL can be purchased but never resolved for download.
func (p *Product) Downloadable() bool {
	return p.FileURL != ""
}
