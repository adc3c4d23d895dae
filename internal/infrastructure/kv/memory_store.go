package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/repuestos-api/internal/domain"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore implementación en memoria del almacenamiento clave-valor (tests y KV_DRIVER=memory).
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore crea un almacenamiento vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get decodifica el valor guardado en key.
func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set guarda value serializado en JSON.
func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// CreateIfAbsent guarda value solo si key no existe.
func (s *MemoryStore) CreateIfAbsent(_ context.Context, key string, value any) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false, nil
	}
	s.data[key] = raw
	return true, nil
}

// Incr incrementa el entero guardado en key con la misma semántica que INCR de Redis.
func (s *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	if raw, ok := s.data[key]; ok {
		v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("incr %s: valor no entero: %w", key, err)
		}
		n = v
	}
	n++
	s.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

// Ping siempre responde en memoria.
func (s *MemoryStore) Ping(context.Context) error { return nil }

var _ Locker = (*LocalLocker)(nil)

// LocalLocker candados por clave dentro del proceso. Respeta la cancelación del contexto.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocalLocker crea el administrador de candados locales.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

// Obtain espera hasta obtener el candado o hasta que ttl expire o ctx se cancele.
func (l *LocalLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Releaser, error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[key] = slot
	}
	l.mu.Unlock()

	timer := time.NewTimer(ttl)
	defer timer.Stop()
	select {
	case slot <- struct{}{}:
		return &localLock{slot: slot}, nil
	case <-timer.C:
		return nil, fmt.Errorf("candado %s ocupado: %w", key, domain.ErrConflict)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type localLock struct {
	once sync.Once
	slot chan struct{}
}

func (l *localLock) Release(context.Context) error {
	l.once.Do(func() { <-l.slot })
	return nil
}
