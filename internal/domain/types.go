package domain

import (
	"encoding/json"
	"time"
)

type User struct {
	ID       int64     `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinDate time.Time `json:"join_date"`
}

// Location is a fishing spot. Latitude and Longitude are derived from
// Pinpoint and are nil when the pinpoint is absent or unparseable.
type Location struct {
	ID        int64     `json:"location_id"`
	Name      string    `json:"location_name"`
	Region    string    `json:"region"`
	Pinpoint  string    `json:"pinpoint"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	IsSecret  bool      `json:"is_secret"`
	Lore      string    `json:"lore"`
	CreatedAt time.Time `json:"created_at"`
}

// Outing is a single fishing trip. OutingDate is a calendar date in
// YYYY-MM-DD form.
type Outing struct {
	ID             int64     `json:"outing_id"`
	UserID         int64     `json:"user_id"`
	LocationID     *int64    `json:"location_id"`
	OutingDate     string    `json:"outing_date"`
	WorthReturning bool      `json:"worth_returning"`
	FieldNotes     string    `json:"field_notes"`
	MVPLure        string    `json:"mvp_lure"`
	CreatedAt      time.Time `json:"created_at"`
}

type Catch struct {
	ID        int64     `json:"catch_id"`
	OutingID  int64     `json:"outing_id"`
	Species   string    `json:"species"`
	Count     int       `json:"count"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageKind identifies which parent entity an image hangs off.
type ImageKind string

const (
	CatchImage    ImageKind = "catch"
	SceneryImage  ImageKind = "scenery"
	LocationImage ImageKind = "location"
)

// Image is a photo attached to a catch, an outing (scenery) or a location.
// At least one of URL and StorageKey is set. StorageKey addresses the payload
// in the photo store.
type Image struct {
	ID         int64     `json:"image_id"`
	Kind       ImageKind `json:"-"`
	ParentID   int64     `json:"-"`
	URL        *string   `json:"image_url"`
	StorageKey *string   `json:"-"`
	MimeType   *string   `json:"image_type"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ParentField is the JSON name of the parent id for images of this kind.
func (k ImageKind) ParentField() string {
	switch k {
	case CatchImage:
		return "catch_id"
	case SceneryImage:
		return "outing_id"
	case LocationImage:
		return "location_id"
	}
	return "parent_id"
}

func (i *Image) MarshalJSON() ([]byte, error) {
	return i.MarshalWith(nil)
}

// MarshalWith encodes the image with its parent id under the kind's field
// name, plus any extra top-level fields.
func (i *Image) MarshalWith(extra map[string]any) ([]byte, error) {
	type plain Image
	b, err := json.Marshal((*plain)(i))
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	if fields[i.Kind.ParentField()], err = json.Marshal(i.ParentID); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if fields[k], err = json.Marshal(v); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}

// HasPayload reports whether the image bytes live in the photo store.
func (i *Image) HasPayload() bool {
	return i.StorageKey != nil && *i.StorageKey != ""
}

// FishCaught is one row of the per-location, per-species catch totals.
type FishCaught struct {
	LocationID   int64  `json:"location_id"`
	LocationName string `json:"location_name"`
	Region       string `json:"region"`
	Species      string `json:"species"`
	TotalCaught  int64  `json:"total_caught"`
}

// BestSpot ranks a location by how many of one species were caught there.
type BestSpot struct {
	LocationID   int64  `json:"location_id"`
	LocationName string `json:"location_name"`
	Region       string `json:"region"`
	TotalCaught  int64  `json:"total_caught"`
}

// OutingWithLocation is an outing joined with its location's summary fields.
type OutingWithLocation struct {
	OutingID       int64    `json:"outing_id"`
	OutingDate     string   `json:"outing_date"`
	WorthReturning bool     `json:"worth_returning"`
	LocationName   string   `json:"location_name"`
	Region         string   `json:"region"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

// WeatherSite is what the weather lookup needs to know about an outing.
// LocationID is nil when the outing has no location.
type WeatherSite struct {
	OutingID   int64
	OutingDate string
	LocationID *int64
	Pinpoint   string
	Latitude   *float64
	Longitude  *float64
}
