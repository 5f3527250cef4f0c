// File: lixenwraith/ini/ordered.go
package ini

import (
	"fmt"
	"slices"
)

type named interface {
	Name() string
}

// ordered is an insertion-ordered collection with unique names.
type ordered[T named] struct {
	items []T
	index map[string]int
}

func (c *ordered[T]) len() int {
	return len(c.items)
}

func (c *ordered[T]) add(item T) error {
	if _, exists := c.index[item.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, item.Name())
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[item.Name()] = len(c.items)
	c.items = append(c.items, item)
	return nil
}

func (c *ordered[T]) remove(name string) error {
	i, exists := c.index[name]
	if !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	c.items = slices.Delete(c.items, i, i+1)
	delete(c.index, name)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].Name()] = j
	}
	return nil
}

func (c *ordered[T]) get(name string) (T, error) {
	i, exists := c.index[name]
	if !exists {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return c.items[i], nil
}

func (c *ordered[T]) at(i int) (T, error) {
	if i < 0 || i >= len(c.items) {
		var zero T
		return zero, fmt.Errorf("%w: index %d", ErrNotFound, i)
	}
	return c.items[i], nil
}

func (c *ordered[T]) has(name string) bool {
	_, exists := c.index[name]
	return exists
}

func (c *ordered[T]) all() []T {
	return slices.Clone(c.items)
}

// cloneWith deep-copies the collection using the element copier.
func (c *ordered[T]) cloneWith(copyItem func(T) T) ordered[T] {
	out := ordered[T]{items: make([]T, len(c.items)), index: make(map[string]int, len(c.items))}
	for i, item := range c.items {
		out.items[i] = copyItem(item)
		out.index[item.Name()] = i
	}
	return out
}
