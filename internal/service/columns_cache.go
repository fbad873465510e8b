package service

import (
	"sync"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// columnsCache memoizes the custom-field corpus and its projected columns.
// The write path invalidates it synchronously after every successful
// field-bearing creation; there is no other invalidation channel.
type columnsCache struct {
	mu     sync.Mutex
	valid  bool
	fields []domain.CustomField
	cols   []domain.CustomFieldColumn
}

func newColumnsCache() *columnsCache {
	return &columnsCache{}
}

func (c *columnsCache) get(load func() ([]domain.CustomField, []domain.CustomFieldColumn, error)) ([]domain.CustomField, []domain.CustomFieldColumn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return c.fields, c.cols, nil
	}

	fields, cols, err := load()
	if err != nil {
		return nil, nil, err
	}
	c.fields, c.cols, c.valid = fields, cols, true
	return fields, cols, nil
}

func (c *columnsCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
