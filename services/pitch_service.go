package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"campsite-backend/locks"
	"campsite-backend/metrics"
	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/tracing"
	"campsite-backend/utils"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type PitchListQuery struct {
	Type     string
	Status   string
	SectorID *uint
}

type PitchInput struct {
	Number     string
	Type       string
	Status     string
	Attributes map[string]interface{}
	SectorID   *uint
}

// PitchUpdate changes the mutable fields of a pitch. Number and suffix only
// change through Split and Merge.
type PitchUpdate struct {
	Type       *string
	Status     *string
	Attributes map[string]interface{}
	SectorID   *uint
	// ClearSector detaches the pitch from its sector.
	ClearSector bool
}

type SectorInput struct {
	Name  string
	Color string
}

type PitchService interface {
	List(ctx context.Context, q PitchListQuery) ([]models.Pitch, error)
	Get(ctx context.Context, id uint) (*models.Pitch, error)
	Create(ctx context.Context, in PitchInput) (*models.Pitch, error)
	Update(ctx context.Context, id uint, in PitchUpdate) (*models.Pitch, error)
	Delete(ctx context.Context, id uint) error

	Split(ctx context.Context, id uint) ([]models.Pitch, error)
	Merge(ctx context.Context, pitchAID, pitchBID uint) (*models.Pitch, error)

	ListSectors(ctx context.Context) ([]models.Sector, error)
	CreateSector(ctx context.Context, in SectorInput) (*models.Sector, error)
	DeleteSector(ctx context.Context, id uint) error
}

type pitchService struct {
	pitches repository.PitchRepository
	locker  locks.Locker
}

func NewPitchService(pitches repository.PitchRepository, locker locks.Locker) PitchService {
	return &pitchService{pitches: pitches, locker: locker}
}

func (s *pitchService) List(ctx context.Context, q PitchListQuery) ([]models.Pitch, error) {
	var filter repository.PitchFilter
	if q.Type != "" {
		t := models.PitchType(q.Type)
		if !t.Valid() {
			return nil, validationError("type must be one of: piazzola, tenda")
		}
		filter.Type = &t
	}
	if q.Status != "" {
		st := models.PitchStatus(q.Status)
		if !st.Valid() {
			return nil, validationError("status must be one of: available, maintenance, blocked")
		}
		filter.Status = &st
	}
	filter.SectorID = q.SectorID

	pitches, err := s.pitches.List(ctx, filter)
	if err != nil {
		return nil, storageError("failed to load pitches", err)
	}
	sortPitches(pitches)
	return pitches, nil
}

func (s *pitchService) Get(ctx context.Context, id uint) (*models.Pitch, error) {
	pitch, err := s.pitches.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "pitch not found")
	}
	return pitch, nil
}

func (s *pitchService) Create(ctx context.Context, in PitchInput) (*models.Pitch, error) {
	number, err := NormalizePitchNumber(in.Number)
	if err != nil {
		return nil, err
	}
	pitchType := models.PitchType(in.Type)
	if !pitchType.Valid() {
		return nil, validationError("type must be one of: piazzola, tenda")
	}
	status := models.PitchStatusAvailable
	if in.Status != "" {
		status = models.PitchStatus(in.Status)
		if !status.Valid() {
			return nil, validationError("status must be one of: available, maintenance, blocked")
		}
	}

	existing, err := s.pitches.FindByNumber(ctx, number)
	if err != nil {
		return nil, storageError("failed to check pitch number", err)
	}
	if len(existing) > 0 {
		return nil, conflictError("pitch %s already exists", number)
	}

	pitch := &models.Pitch{
		Number:     number,
		Suffix:     models.SuffixWhole,
		Type:       pitchType,
		Status:     status,
		Attributes: datatypes.JSONMap(in.Attributes),
		SectorID:   in.SectorID,
	}
	if err := s.pitches.Create(ctx, pitch); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError("pitch %s already exists", number)
		}
		return nil, fromRepository(err, "sector not found")
	}
	return pitch, nil
}

func (s *pitchService) Update(ctx context.Context, id uint, in PitchUpdate) (*models.Pitch, error) {
	pitch, err := s.pitches.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "pitch not found")
	}

	if in.Type != nil {
		t := models.PitchType(*in.Type)
		if !t.Valid() {
			return nil, validationError("type must be one of: piazzola, tenda")
		}
		pitch.Type = t
	}
	if in.Status != nil {
		st := models.PitchStatus(*in.Status)
		if !st.Valid() {
			return nil, validationError("status must be one of: available, maintenance, blocked")
		}
		pitch.Status = st
	}
	if in.Attributes != nil {
		pitch.Attributes = datatypes.JSONMap(in.Attributes)
	}
	switch {
	case in.ClearSector:
		pitch.SectorID = nil
		pitch.Sector = nil
	case in.SectorID != nil:
		pitch.SectorID = in.SectorID
		pitch.Sector = nil
	}

	if err := s.pitches.Update(ctx, pitch); err != nil {
		return nil, fromRepository(err, "pitch not found")
	}
	return pitch, nil
}

func (s *pitchService) Delete(ctx context.Context, id uint) error {
	pitch, err := s.pitches.GetByID(ctx, id)
	if err != nil {
		return fromRepository(err, "pitch not found")
	}
	n, err := s.pitches.CountBookings(ctx, id)
	if err != nil {
		return storageError("failed to count bookings", err)
	}
	if n > 0 {
		return conflictError("pitch %s has %d bookings and cannot be deleted", pitch.Label(), n)
	}
	if err := s.pitches.Delete(ctx, id); err != nil {
		return fromRepository(err, "pitch not found")
	}
	return nil
}

// Split turns a whole pitch into the halves "a" (the original row) and "b"
// (a new row with the same number, type, attributes and sector).
func (s *pitchService) Split(ctx context.Context, id uint) (pitches []models.Pitch, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "PitchService.Split")
	defer span.End()
	defer func() {
		observePitchOperation("split", err)
		tracing.RecordError(span, err)
	}()

	pitch, err := s.pitches.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "pitch not found")
	}
	span.SetAttributes(attribute.String("pitch.number", pitch.Number))
	if pitch.Suffix != models.SuffixWhole {
		return nil, conflictError("pitch %s is already split", pitch.Label())
	}

	release, err := s.lockNumber(ctx, pitch.Number)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.ensureNoActiveBookings(ctx, *pitch); err != nil {
		return nil, err
	}
	halves, err := s.pitches.FindByNumber(ctx, pitch.Number, models.SuffixA, models.SuffixB)
	if err != nil {
		return nil, storageError("failed to check pitch halves", err)
	}
	if len(halves) > 0 {
		return nil, conflictError("pitch %s already has split halves", pitch.Number)
	}

	sibling := models.Pitch{
		Number:     pitch.Number,
		Suffix:     models.SuffixB,
		Type:       pitch.Type,
		Status:     models.PitchStatusAvailable,
		Attributes: copyAttributes(pitch.Attributes),
		SectorID:   pitch.SectorID,
	}
	err = s.pitches.Transaction(ctx, func(tx repository.PitchRepository) error {
		if err := tx.UpdateSuffix(ctx, pitch.ID, models.SuffixA); err != nil {
			return err
		}
		return tx.Create(ctx, &sibling)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError("pitch %s already has split halves", pitch.Number)
		}
		return nil, storageError("failed to split pitch", err)
	}

	pitch.Suffix = models.SuffixA
	return []models.Pitch{*pitch, sibling}, nil
}

// Merge joins the halves "a" and "b" of a pitch back into one. The "a" row is
// kept with an empty suffix and inherits the bookings history of "b", which
// is deleted.
func (s *pitchService) Merge(ctx context.Context, pitchAID, pitchBID uint) (merged *models.Pitch, err error) {
	ctx, span := tracing.Tracer().Start(ctx, "PitchService.Merge")
	defer span.End()
	defer func() {
		observePitchOperation("merge", err)
		tracing.RecordError(span, err)
	}()

	if pitchAID == 0 || pitchBID == 0 {
		return nil, validationError("pitch_a_id and pitch_b_id are required")
	}
	if pitchAID == pitchBID {
		return nil, validationError("cannot merge a pitch with itself")
	}

	first, err := s.pitches.GetByID(ctx, pitchAID)
	if err != nil {
		return nil, fromRepository(err, fmt.Sprintf("pitch %d not found", pitchAID))
	}
	second, err := s.pitches.GetByID(ctx, pitchBID)
	if err != nil {
		return nil, fromRepository(err, fmt.Sprintf("pitch %d not found", pitchBID))
	}
	span.SetAttributes(attribute.String("pitch.number", first.Number))

	if first.Number != second.Number {
		return nil, validationError("pitches %s and %s do not share the same number", first.Label(), second.Label())
	}
	keep, drop := first, second
	if first.Suffix == models.SuffixB {
		keep, drop = second, first
	}
	if keep.Suffix != models.SuffixA || drop.Suffix != models.SuffixB {
		return nil, validationError("merge requires the halves a and b of a pitch, got %s and %s", first.Label(), second.Label())
	}

	release, err := s.lockNumber(ctx, keep.Number)
	if err != nil {
		return nil, err
	}
	defer release()

	for _, p := range []*models.Pitch{keep, drop} {
		if err := s.ensureNoActiveBookings(ctx, *p); err != nil {
			return nil, err
		}
	}
	whole, err := s.pitches.FindByNumber(ctx, keep.Number, models.SuffixWhole)
	if err != nil {
		return nil, storageError("failed to check pitch number", err)
	}
	if len(whole) > 0 {
		return nil, conflictError("a whole pitch %s already exists", keep.Number)
	}

	err = s.pitches.Transaction(ctx, func(tx repository.PitchRepository) error {
		if err := tx.MoveBookings(ctx, drop.ID, keep.ID); err != nil {
			return err
		}
		if err := tx.Delete(ctx, drop.ID); err != nil {
			return err
		}
		return tx.UpdateSuffix(ctx, keep.ID, models.SuffixWhole)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError("a whole pitch %s already exists", keep.Number)
		}
		return nil, storageError("failed to merge pitches", err)
	}

	keep.Suffix = models.SuffixWhole
	return keep, nil
}

func (s *pitchService) ListSectors(ctx context.Context) ([]models.Sector, error) {
	sectors, err := s.pitches.ListSectors(ctx)
	if err != nil {
		return nil, storageError("failed to load sectors", err)
	}
	return sectors, nil
}

func (s *pitchService) CreateSector(ctx context.Context, in SectorInput) (*models.Sector, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if in.Color != "" && !hexColor.MatchString(in.Color) {
		return nil, validationError("color must be a hex value like #22c55e")
	}
	sector := &models.Sector{Name: name, Color: in.Color}
	if err := s.pitches.CreateSector(ctx, sector); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError("sector %q already exists", name)
		}
		return nil, storageError("failed to create sector", err)
	}
	return sector, nil
}

func (s *pitchService) DeleteSector(ctx context.Context, id uint) error {
	if err := s.pitches.DeleteSector(ctx, id); err != nil {
		return fromRepository(err, "sector not found")
	}
	return nil
}

func (s *pitchService) lockNumber(ctx context.Context, number string) (func(), error) {
	release, err := s.locker.Lock(ctx, "pitch:"+number)
	if err != nil {
		if errors.Is(err, locks.ErrLocked) {
			return nil, conflictError("another split or merge of pitch %s is in progress, retry shortly", number)
		}
		return nil, storageError("failed to lock pitch number", err)
	}
	return release, nil
}

func (s *pitchService) ensureNoActiveBookings(ctx context.Context, pitch models.Pitch) error {
	n, err := s.pitches.CountActiveBookings(ctx, pitch.ID, utils.Today())
	if err != nil {
		return storageError("failed to check bookings", err)
	}
	if n > 0 {
		return conflictError("pitch %s has %d current or upcoming bookings", pitch.Label(), n)
	}
	return nil
}

// NormalizePitchNumber zero-pads a numeric pitch number to three digits.
func NormalizePitchNumber(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", validationError("number is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return "", validationError("number must be a positive integer, got %q", raw)
	}
	return fmt.Sprintf("%03d", n), nil
}

func copyAttributes(src datatypes.JSONMap) datatypes.JSONMap {
	if src == nil {
		return nil
	}
	dst := make(datatypes.JSONMap, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func observePitchOperation(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrValidation):
		result = "invalid"
	case errors.Is(err, ErrConflict):
		result = "conflict"
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.PitchOperations.WithLabelValues(op, result).Inc()
}
