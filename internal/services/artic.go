// Art collection [ArtworkSource] implementation
package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
)

var _ ArtworkSource = (*ArticService)(nil)

// artworksResponse is the envelope returned by GET /artworks.
type artworksResponse struct {
	Data       []models.Artwork  `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

// ArticService reads artwork pages from the collection API through an [APIService].
type ArticService struct {
	api    *APIService
	fields []string
}

// NewArticService creates an ArticService.
//
// When fields is non-empty it is sent as the fields query parameter so the API
// only returns the columns the table shows.
func NewArticService(api *APIService, fields []string) *ArticService {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &ArticService{api: api, fields: fields}
}

// PagePath builds the request path for one page of artworks.
func (s *ArticService) PagePath(page, limit int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if len(s.fields) > 0 {
		q.Set("fields", strings.Join(s.fields, ","))
	}
	return "/artworks?" + q.Encode()
}

// FetchPage retrieves a single page of artworks.
//
// The returned records are capped at limit even if the service sends more.
func (s *ArticService) FetchPage(ctx context.Context, page, limit int) (*models.ArtworkPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", shared.ErrInvalidPage, page)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d", shared.ErrInvalidArgument, limit)
	}

	var body artworksResponse
	if err := s.api.GetJSON(ctx, s.PagePath(page, limit), &body); err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}

	records := body.Data
	if len(records) > limit {
		records = records[:limit]
	}
	if records == nil {
		records = []models.Artwork{}
	}

	return &models.ArtworkPage{Records: records, Pagination: body.Pagination}, nil
}
