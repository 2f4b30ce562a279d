package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyItemName       = errors.New("item name cannot be empty")
	ErrItemNameTooLong     = errors.New("item name is too long (max 255 characters)")
	ErrInvalidKind         = errors.New("item kind must be car or gear")
	ErrNonPositiveRate     = errors.New("daily rate must be positive")
	ErrEmptyLocation       = errors.New("item location cannot be empty")
)

const MaxItemNameLength = 255

type Item struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	kind           Kind
	name           string
	category       string
	features       []string
	location       string
	dailyRatePaise int64
	available      bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewItem(ownerID uuid.UUID, kind Kind, name, category string, features []string, location string, dailyRatePaise int64, now time.Time) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyItemName
	}
	if len(name) > MaxItemNameLength {
		return nil, ErrItemNameTooLong
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if dailyRatePaise <= 0 {
		return nil, ErrNonPositiveRate
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrEmptyLocation
	}

	return &Item{
		id:             uuid.New(),
		ownerID:        ownerID,
		kind:           kind,
		name:           name,
		category:       strings.TrimSpace(category),
		features:       features,
		location:       location,
		dailyRatePaise: dailyRatePaise,
		available:      true,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructItem(
	id, ownerID uuid.UUID,
	kind Kind,
	name, category string,
	features []string,
	location string,
	dailyRatePaise int64,
	available bool,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:             id,
		ownerID:        ownerID,
		kind:           kind,
		name:           name,
		category:       category,
		features:       features,
		location:       location,
		dailyRatePaise: dailyRatePaise,
		available:      available,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (i *Item) ToggleAvailability(now time.Time) {
	i.available = !i.available
	i.updatedAt = now
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) OwnerID() uuid.UUID    { return i.ownerID }
func (i *Item) Kind() Kind            { return i.kind }
func (i *Item) Name() string          { return i.name }
func (i *Item) Category() string      { return i.category }
func (i *Item) Features() []string    { return i.features }
func (i *Item) Location() string      { return i.location }
func (i *Item) DailyRatePaise() int64 { return i.dailyRatePaise }
func (i *Item) IsAvailable() bool     { return i.available }
func (i *Item) CreatedAt() time.Time  { return i.createdAt }
func (i *Item) UpdatedAt() time.Time  { return i.updatedAt }
