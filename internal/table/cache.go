package table

import (
	"fmt"
	"sync"

	"github.com/ryanbastic/classtrak/internal/record"
	"github.com/ryanbastic/classtrak/internal/tabular"
)

// Cache is the client's copy of the most recent student table. It is only
// ever replaced as a whole.
type Cache struct {
	mu       sync.RWMutex
	table    tabular.Result
	students []record.Student
	byID     map[int]int
}

func NewCache() *Cache {
	return &Cache{byID: make(map[int]int)}
}

// Replace decodes t and swaps it in. On error the cache is left unchanged.
func (c *Cache) Replace(t tabular.Result) error {
	students, err := record.DecodeStudents(t)
	if err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}
	byID := make(map[int]int, len(students))
	for i, s := range students {
		byID[s.StudentID] = i
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = t.Clone()
	c.students = students
	c.byID = byID
	return nil
}

// Table returns a copy of the cached student table.
func (c *Cache) Table() tabular.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table.Clone()
}

// Students returns the decoded rows in table order.
func (c *Cache) Students() []record.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]record.Student(nil), c.students...)
}

// Lookup finds a student by id.
func (c *Cache) Lookup(id int) (record.Student, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return record.Student{}, false
	}
	return c.students[i], true
}
