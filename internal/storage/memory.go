package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Memory keeps objects in process; URLs are BaseURL + "/" + name.
type Memory struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
}

func NewMemory(baseURL string) *Memory {
	return &Memory{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *Memory) Put(ctx context.Context, object Object) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, object.Body); err != nil {
		return "", fmt.Errorf("failed to read object: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.objects[object.Name]; exists {
		return "", fmt.Errorf("object %s already exists", object.Name)
	}
	m.objects[object.Name] = buf.Bytes()
	m.types[object.Name] = object.ContentType
	return m.BaseURL + "/" + object.Name, nil
}

// Get returns a stored object and its content type.
func (m *Memory) Get(name string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[name]
	return data, m.types[name], ok
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
