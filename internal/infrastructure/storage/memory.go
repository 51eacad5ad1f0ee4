package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Memory keeps uploads in process memory. Intended for tests and local
// development. An append-only instance refuses deletion, modelling
// write-once backends.
type Memory struct {
	gen        *Generator
	appendOnly bool

	mu      sync.RWMutex
	objects map[Key][]byte
}

func NewMemory(gen *Generator, appendOnly bool) *Memory {
	return &Memory{
		gen:        gen,
		appendOnly: appendOnly,
		objects:    make(map[Key][]byte),
	}
}

func (m *Memory) Store(ctx context.Context, content io.Reader, contentType, originalFilename string) (Reference, error) {
	b, err := io.ReadAll(content)
	if err != nil {
		return Reference{}, fmt.Errorf("read upload content: %w", err)
	}

	key := Key(m.gen.Generate(originalFilename))

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.objects[key]; exists {
		return Reference{}, fmt.Errorf("object %q already exists", key)
	}
	m.objects[key] = b

	return Reference{
		FileName: m.gen.DisplayName(originalFilename),
		Key:      key,
	}, nil
}

func (m *Memory) Retrieve(ctx context.Context, key Key) (io.ReadCloser, error) {
	m.mu.RLock()
	b, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *Memory) Delete(ctx context.Context, key Key) (bool, error) {
	if m.appendOnly {
		return false, ErrDeleteUnsupported
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return false, nil
	}
	delete(m.objects, key)
	return true, nil
}

// Len reports the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
