// package services defines interface ArtworkSource for reading the art collection HTTP API
package services

import (
	"context"

	"github.com/desertthunder/artx/internal/models"
)

// ArtworkSource fetches one page of collection records.
//
// Pages are 1-based; limit is the page size sent to the remote service.
type ArtworkSource interface {
	FetchPage(ctx context.Context, page, limit int) (*models.ArtworkPage, error)
}
