/*
Package order Order subdomain - the basket consistency engine

An Order holds a Ledger of line items and moves through a small lifecycle:

	CREATED ──► COMPLETE
	   │
	   └──────► CANCELLED

CREATED is the only mutable state. Every basket operation checks the
lifecycle first, so a terminal order fails fast before any catalog lookup.
Totals are never stored; they are derived from live product prices on read
(see Valuate).
*/
package order

import (
	"fmt"
	"strings"
	"time"

	"ordering/domain/shared"

	"github.com/google/uuid"
)

// Status Order status enum
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusComplete  Status = "COMPLETE"
	StatusCancelled Status = "CANCELLED"

	// statusInProgress is an older name for CREATED, accepted when parsing
	statusInProgress Status = "IN_PROGRESS"
)

// ParseStatus parses a stored or requested status
func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusCreated, statusInProgress:
		return StatusCreated, nil
	case StatusComplete:
		return StatusComplete, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", shared.NewValidationError(EntityName, "status", "unknown order status: "+value)
	}
}

// IsTerminal reports whether no further change is allowed
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusCancelled
}

// Order aggregate root
// All changes to line items go through Order so the lifecycle guard always runs
type Order struct {
	id          string
	status      Status
	ledger      Ledger
	version     int // optimistic lock version
	createdOn   time.Time
	lastUpdated time.Time

	shared.EventRecorder
	isNew bool
}

// NewOrder creates a CREATED order. Product existence and retirement are
// checked by DomainService before calling this.
func NewOrder(requests []LineRequest) (*Order, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:          id.String(),
		status:      StatusCreated,
		createdOn:   now,
		lastUpdated: now,
		isNew:       true,
	}
	if err := o.ledger.replaceAll(requests); err != nil {
		return nil, err
	}

	o.Record(shared.NewEvent("order.created", EntityName, o.id, map[string]interface{}{
		"line_items": linesPayload(o.ledger.Items()),
	}))
	return o, nil
}

// ReconstructionDTO is for repository implementations only
type ReconstructionDTO struct {
	ID          string
	Status      Status
	LineItems   []LineItem
	Version     int
	CreatedOn   time.Time
	LastUpdated time.Time
}

// RebuildFromDTO reconstructs a persisted order
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	items := make([]LineItem, len(dto.LineItems))
	copy(items, dto.LineItems)
	return &Order{
		id:          dto.ID,
		status:      dto.Status,
		ledger:      Ledger{items: items},
		version:     dto.Version,
		createdOn:   dto.CreatedOn,
		lastUpdated: dto.LastUpdated,
	}
}

// ToDTO is the inverse of RebuildFromDTO
func (o *Order) ToDTO() ReconstructionDTO {
	return ReconstructionDTO{
		ID:          o.id,
		Status:      o.status,
		LineItems:   o.ledger.Items(),
		Version:     o.version,
		CreatedOn:   o.createdOn,
		LastUpdated: o.lastUpdated,
	}
}

// ============================================================================
// Lifecycle
// ============================================================================

// EnsureMutable fails with ErrConflict once the order is terminal
func (o *Order) EnsureMutable() error {
	if o.status.IsTerminal() {
		return newTerminalStateError(o.id, o.status)
	}
	return nil
}

// Cancel CREATED -> CANCELLED
func (o *Order) Cancel() error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	o.status = StatusCancelled
	o.touch()
	o.Record(shared.NewEvent("order.cancelled", EntityName, o.id, nil))
	return nil
}

// Complete CREATED -> COMPLETE, driven by fulfillment
func (o *Order) Complete() error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	o.status = StatusComplete
	o.touch()
	o.Record(shared.NewEvent("order.completed", EntityName, o.id, map[string]interface{}{
		"line_items": linesPayload(o.ledger.Items()),
	}))
	return nil
}

// ============================================================================
// Basket operations
// ============================================================================

// ReplaceLineItems clears the basket and installs exactly requests
func (o *Order) ReplaceLineItems(requests []LineRequest) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	if err := o.ledger.replaceAll(requests); err != nil {
		return err
	}
	o.touch()
	o.Record(shared.NewEvent("order.basket_replaced", EntityName, o.id, map[string]interface{}{
		"line_items": linesPayload(o.ledger.Items()),
	}))
	return nil
}

// AddLineItem inserts a new line; an existing line for the product is a conflict
func (o *Order) AddLineItem(productID string, quantity int) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	if err := o.ledger.add(productID, quantity); err != nil {
		return err
	}
	o.touch()
	o.Record(shared.NewEvent("order.line_item_added", EntityName, o.id, linePayload(productID, quantity)))
	return nil
}

// UpdateLineItemQuantity overwrites the quantity of an existing line
func (o *Order) UpdateLineItemQuantity(productID string, quantity int) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	if err := o.ledger.updateQuantity(o.id, productID, quantity); err != nil {
		return err
	}
	o.touch()
	o.Record(shared.NewEvent("order.line_item_updated", EntityName, o.id, linePayload(productID, quantity)))
	return nil
}

// RemoveLineItem deletes the line for productID
func (o *Order) RemoveLineItem(productID string) error {
	if err := o.EnsureMutable(); err != nil {
		return err
	}
	if err := o.ledger.remove(o.id, productID); err != nil {
		return err
	}
	o.touch()
	o.Record(shared.NewEvent("order.line_item_removed", EntityName, o.id, map[string]interface{}{
		"product_id": productID,
	}))
	return nil
}

func (o *Order) touch() {
	o.lastUpdated = time.Now()
}

func linePayload(productID string, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	}
}

func linesPayload(items []LineItem) []map[string]interface{} {
	lines := make([]map[string]interface{}, len(items))
	for i, item := range items {
		lines[i] = linePayload(item.productID, item.quantity)
	}
	return lines
}

// IncrementVersionForSave is called by the repository after a successful write
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// MarkPersisted clears the new flag after the first insert
func (o *Order) MarkPersisted() {
	o.isNew = false
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string             { return o.id }
func (o *Order) Status() Status         { return o.status }
func (o *Order) Version() int           { return o.version }
func (o *Order) CreatedOn() time.Time   { return o.createdOn }
func (o *Order) LastUpdated() time.Time { return o.lastUpdated }
func (o *Order) IsNew() bool            { return o.isNew }

// LineItems returns a copy of the basket
func (o *Order) LineItems() []LineItem { return o.ledger.Items() }

// ProductIDs returns the product ids referenced by the basket
func (o *Order) ProductIDs() []string { return o.ledger.ProductIDs() }

// HasLineItem reports whether the basket has a line for productID
func (o *Order) HasLineItem(productID string) bool { return o.ledger.Contains(productID) }

var _ shared.AggregateRoot = (*Order)(nil)
