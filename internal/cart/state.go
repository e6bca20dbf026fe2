package cart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/luisrojasb/doorline-backend/pkg/enums"
	pkgerrors "github.com/luisrojasb/doorline-backend/pkg/errors"
)

// Row field names accepted by UpdateRow.
const (
	FieldWidth     = "width"
	FieldHeight    = "height"
	FieldThickness = "thickness"
	FieldQuantity  = "quantity"
	FieldHasLock   = "has_lock"
	FieldHasVent   = "has_vent"
)

// DimensionRow is one pre-submission measurement line. Width and height stay
// raw while the dealer is typing; they are only parsed and rejected when the
// rows are expanded into cart items.
type DimensionRow struct {
	ID        uuid.UUID       `json:"id"`
	Width     string          `json:"width"`
	Height    string          `json:"height"`
	Thickness enums.Thickness `json:"thickness"`
	Quantity  int             `json:"quantity"`
	HasLock   bool            `json:"has_lock"`
	HasVent   bool            `json:"has_vent"`
}

// Selection is the door type/design/color the dimension rows expand against,
// with the denormalized catalog fields the cart items snapshot.
type Selection struct {
	DoorTypeID  uuid.UUID `json:"door_type_id"`
	DesignID    uuid.UUID `json:"design_id"`
	ColorID     uuid.UUID `json:"color_id"`
	DesignName  string    `json:"design_name"`
	DesignImage string    `json:"design_image"`
	ColorName   string    `json:"color_name"`
}

// Item is one committed cart line awaiting order placement.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	DoorTypeID  uuid.UUID       `json:"door_type_id"`
	DesignID    uuid.UUID       `json:"design_id"`
	ColorID     uuid.UUID       `json:"color_id"`
	DesignName  string          `json:"design_name"`
	DesignImage string          `json:"design_image"`
	ColorName   string          `json:"color_name"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Thickness   enums.Thickness `json:"thickness"`
	Quantity    int             `json:"quantity"`
	HasLock     bool            `json:"has_lock"`
	HasVent     bool            `json:"has_vent"`
}

// State is the session-scoped cart: the active selection, the dimension rows
// being edited, and the items committed so far. All builder operations take
// and return this structure explicitly.
type State struct {
	Selection *Selection     `json:"selection,omitempty"`
	Rows      []DimensionRow `json:"rows"`
	Items     []Item         `json:"items"`
}

// NewState returns an empty cart with a single default dimension row.
func NewState() *State {
	return &State{Rows: []DimensionRow{defaultRow()}}
}

func defaultRow() DimensionRow {
	return DimensionRow{
		ID:        uuid.New(),
		Thickness: enums.DefaultThickness,
		Quantity:  1,
	}
}

// SetSelection replaces the active design/color selection.
func (s *State) SetSelection(sel Selection) {
	s.Selection = &sel
	if len(s.Rows) == 0 {
		s.Rows = []DimensionRow{defaultRow()}
	}
}

// AddRow appends a fresh default row and returns it.
func (s *State) AddRow() DimensionRow {
	row := defaultRow()
	s.Rows = append(s.Rows, row)
	return row
}

// RemoveRow deletes the row; removing the last remaining row is a no-op so an
// active selection always has at least one row to edit.
func (s *State) RemoveRow(rowID uuid.UUID) {
	if len(s.Rows) <= 1 {
		return
	}
	for i, row := range s.Rows {
		if row.ID == rowID {
			s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
			return
		}
	}
}

// UpdateRow sets a single field on a row. Quantity is clamped to a minimum of
// 1; non-numeric quantity input also coerces to 1.
func (s *State) UpdateRow(rowID uuid.UUID, field, value string) error {
	row := s.findRow(rowID)
	if row == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "dimension row not found")
	}

	switch field {
	case FieldWidth:
		row.Width = strings.TrimSpace(value)
	case FieldHeight:
		row.Height = strings.TrimSpace(value)
	case FieldThickness:
		thickness, err := enums.ParseThickness(value)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid thickness")
		}
		row.Thickness = thickness
	case FieldQuantity:
		row.Quantity = normalizeQuantity(value)
	case FieldHasLock:
		row.HasLock = parseBool(value)
	case FieldHasVent:
		row.HasVent = parseBool(value)
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown dimension row field").WithDetails(map[string]any{"field": field})
	}
	return nil
}

// AddAllToCart expands every dimension row against the active selection into
// cart items, then resets the rows to a single default row. The cart is left
// untouched when the selection is incomplete or any row fails validation.
func (s *State) AddAllToCart() error {
	if s.Selection == nil || s.Selection.DoorTypeID == uuid.Nil || s.Selection.DesignID == uuid.Nil || s.Selection.ColorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "door type, design and color must be selected")
	}
	if len(s.Rows) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one dimension row is required")
	}

	items := make([]Item, 0, len(s.Rows))
	var errs error
	for i, row := range s.Rows {
		width, height, err := validateDimensions(row)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		items = append(items, Item{
			ID:          uuid.New(),
			DoorTypeID:  s.Selection.DoorTypeID,
			DesignID:    s.Selection.DesignID,
			ColorID:     s.Selection.ColorID,
			DesignName:  s.Selection.DesignName,
			DesignImage: s.Selection.DesignImage,
			ColorName:   s.Selection.ColorName,
			Width:       width,
			Height:      height,
			Thickness:   row.Thickness,
			Quantity:    row.Quantity,
			HasLock:     row.HasLock,
			HasVent:     row.HasVent,
		})
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid dimension rows")
	}

	s.Items = append(s.Items, items...)
	s.Rows = []DimensionRow{defaultRow()}
	return nil
}

// RemoveFromCart drops a single cart item.
func (s *State) RemoveFromCart(itemID uuid.UUID) {
	for i, item := range s.Items {
		if item.ID == itemID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}

// ClearCart drops every committed item.
func (s *State) ClearCart() {
	s.Items = nil
}

func (s *State) findRow(rowID uuid.UUID) *DimensionRow {
	for i := range s.Rows {
		if s.Rows[i].ID == rowID {
			return &s.Rows[i]
		}
	}
	return nil
}

func validateDimensions(row DimensionRow) (float64, float64, error) {
	width, err := parseMeasurement(FieldWidth, row.Width)
	if err != nil {
		return 0, 0, err
	}
	height, err := parseMeasurement(FieldHeight, row.Height)
	if err != nil {
		return 0, 0, err
	}
	if !row.Thickness.IsValid() {
		return 0, 0, fmt.Errorf("invalid thickness %q", row.Thickness)
	}
	if row.Quantity < 1 {
		return 0, 0, fmt.Errorf("quantity must be at least 1")
	}
	return width, height, nil
}

func parseMeasurement(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return value, nil
}

func normalizeQuantity(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return 1
	}
	return value
}

func parseBool(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return value
}
