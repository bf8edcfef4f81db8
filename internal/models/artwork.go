package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Artwork represents a single record from the art collection API.
//
// Every text field may be empty when the source omits it or sends null.
type Artwork struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	ArtistDisplay string `json:"artist_display"`
	Inscriptions  string `json:"inscriptions"`
	DateStart     string `json:"date_start"`
	DateEnd       string `json:"date_end"`
}

// Pagination is the paging metadata the API reports with each page.
type Pagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// ArtworkPage is one fetched page of records, in API order.
type ArtworkPage struct {
	Records    []Artwork
	Pagination Pagination
}

// UnmarshalJSON decodes an artwork whose text fields may arrive as strings, numbers, or null.
func (a *Artwork) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID            int        `json:"id"`
		Title         flexString `json:"title"`
		PlaceOfOrigin flexString `json:"place_of_origin"`
		ArtistDisplay flexString `json:"artist_display"`
		Inscriptions  flexString `json:"inscriptions"`
		DateStart     flexString `json:"date_start"`
		DateEnd       flexString `json:"date_end"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*a = Artwork{
		ID:            wire.ID,
		Title:         string(wire.Title),
		PlaceOfOrigin: string(wire.PlaceOfOrigin),
		ArtistDisplay: string(wire.ArtistDisplay),
		Inscriptions:  string(wire.Inscriptions),
		DateStart:     string(wire.DateStart),
		DateEnd:       string(wire.DateEnd),
	}
	return nil
}

// flexString accepts a JSON string, number, or null and keeps its text form.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = flexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexString(n.String())
	return nil
}
