// Package memory хранилище удержаний и бронирований в памяти процесса.
// Семантика совпадает с PostgreSQL-репозиториями; используется драйвером "memory" и в тестах.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
)

// ErrReadOnly возвращается при попытке изменить данные внутри DoReadOnly
var ErrReadOnly = errors.New("memory.store: write inside read-only transaction")

type txMode int

const (
	txNone txMode = iota
	txReadOnly
	txReadWrite
)

type txKey struct{}

// Store общее состояние; транзакции сериализуются единым мьютексом
type Store struct {
	mu       sync.RWMutex
	holds    map[string]*domain.Hold
	bookings map[string]*domain.Booking
}

func NewStore() *Store {
	return &Store{
		holds:    make(map[string]*domain.Hold),
		bookings: make(map[string]*domain.Booking),
	}
}

// Do выполняет fn под эксклюзивной блокировкой.
// При ошибке все изменения, сделанные внутри fn, откатываются.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	switch modeFrom(ctx) {
	case txReadWrite:
		return fn(ctx)
	case txReadOnly:
		return ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	holds, bookings := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, txReadWrite)); err != nil {
		s.holds, s.bookings = holds, bookings
		return err
	}

	return nil
}

// DoReadOnly выполняет fn на согласованном снимке состояния
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if modeFrom(ctx) != txNone {
		return fn(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(context.WithValue(ctx, txKey{}, txReadOnly))
}

func (s *Store) read(ctx context.Context, fn func()) {
	if modeFrom(ctx) == txNone {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	switch modeFrom(ctx) {
	case txReadOnly:
		return ErrReadOnly
	case txNone:
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

func (s *Store) snapshot() (map[string]*domain.Hold, map[string]*domain.Booking) {
	holds := make(map[string]*domain.Hold, len(s.holds))
	for id, h := range s.holds {
		holds[id] = copyHold(h)
	}
	bookings := make(map[string]*domain.Booking, len(s.bookings))
	for id, b := range s.bookings {
		bookings[id] = copyBooking(b)
	}
	return holds, bookings
}

func modeFrom(ctx context.Context) txMode {
	mode, _ := ctx.Value(txKey{}).(txMode)
	return mode
}

func inTransaction(ctx context.Context) bool {
	return modeFrom(ctx) != txNone
}

func copyHold(h *domain.Hold) *domain.Hold {
	c := *h
	return &c
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.OrderID != nil {
		orderID := *b.OrderID
		c.OrderID = &orderID
	}
	return &c
}
