/*
Package memory is the in-process persistence adapter used when
database.type=memory and by the application tests.

Aggregates are stored as reconstruction DTOs, never as live pointers, so a
caller mutating a loaded aggregate cannot change stored state without Save.
UnitOfWork serializes writers and restores a snapshot when the function fails,
which gives the same all-or-nothing behaviour as the MySQL transaction.
*/
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"ordering/domain/category"
	"ordering/domain/order"
	"ordering/domain/product"
	"ordering/domain/shared"
	"ordering/domain/tag"

	"github.com/google/uuid"
)

// OutboxRecord is one saved domain event
type OutboxRecord struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       map[string]interface{}
	OccurredOn    time.Time
}

// Store holds every table of the in-memory database
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	products   map[string]product.ReconstructionDTO
	categories map[string]category.ReconstructionDTO
	tags       map[string]tag.ReconstructionDTO
	orders     map[string]order.ReconstructionDTO
	outbox     []OutboxRecord
}

func NewStore() *Store {
	return &Store{
		products:   make(map[string]product.ReconstructionDTO),
		categories: make(map[string]category.ReconstructionDTO),
		tags:       make(map[string]tag.ReconstructionDTO),
		orders:     make(map[string]order.ReconstructionDTO),
	}
}

type snapshot struct {
	products   map[string]product.ReconstructionDTO
	categories map[string]category.ReconstructionDTO
	tags       map[string]tag.ReconstructionDTO
	orders     map[string]order.ReconstructionDTO
	outboxLen  int
}

// DTOs are replaced on save and never mutated in place, so shallow map copies suffice
func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		products:   maps.Clone(s.products),
		categories: maps.Clone(s.categories),
		tags:       maps.Clone(s.tags),
		orders:     maps.Clone(s.orders),
		outboxLen:  len(s.outbox),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.categories = snap.categories
	s.tags = snap.tags
	s.orders = snap.orders
	s.outbox = s.outbox[:snap.outboxLen]
}

// Events returns a copy of the outbox, oldest first
func (s *Store) Events() []OutboxRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]OutboxRecord, len(s.outbox))
	copy(events, s.outbox)
	return events
}

// Ping always succeeds; it lets the health check treat both adapters alike
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// OutboxRepository appends events to the store's outbox
type OutboxRepository struct {
	store *Store
}

func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return err
	}

	record := OutboxRecord{
		ID:          uuid.NewString(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		OccurredOn:  event.OccurredOn(),
	}
	if pe, ok := event.(shared.PayloadEvent); ok {
		record.AggregateType = pe.AggregateType()
		record.Payload = maps.Clone(pe.Payload())
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.outbox = append(r.store.outbox, record)
	return nil
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
