// Package mapping tracks which external provider stages are referenced by
// seasons in a menu tree and offers filtered views over the provider catalog.
package mapping

import "github.com/alexanderramin/menudesk/internal/domain"

// AssignedSeasonCounter counts, per stage mapping key, how many seasons
// reference the external stage. It is immutable: every change returns a new
// counter. Counts never go below zero.
type AssignedSeasonCounter struct {
	counts map[string]int
}

// NewCounter returns an empty counter.
func NewCounter() AssignedSeasonCounter {
	return AssignedSeasonCounter{}
}

// CountTree counts every stage mapping of every season under roots.
func CountTree(roots []*domain.MenuNode) AssignedSeasonCounter {
	counts := map[string]int{}
	var walk func([]*domain.MenuNode)
	walk = func(nodes []*domain.MenuNode) {
		for _, n := range nodes {
			if n.IsSeason() {
				for _, m := range n.StageMappings {
					counts[m.Key()]++
				}
			}
			walk(n.Children)
		}
	}
	walk(roots)
	return AssignedSeasonCounter{counts: counts}
}

// Count returns the number of seasons referencing key.
func (c AssignedSeasonCounter) Count(key string) int {
	return c.counts[key]
}

// Len returns the number of keys with a positive count.
func (c AssignedSeasonCounter) Len() int {
	return len(c.counts)
}

func (c AssignedSeasonCounter) Increment(key string) AssignedSeasonCounter {
	out := c.clone()
	out.counts[key]++
	return out
}

func (c AssignedSeasonCounter) Decrement(key string) AssignedSeasonCounter {
	if c.counts[key] == 0 {
		return c
	}
	out := c.clone()
	out.decrement(key)
	return out
}

// DecrementAll decrements every key once, e.g. when a season with several
// mappings is removed.
func (c AssignedSeasonCounter) DecrementAll(keys ...string) AssignedSeasonCounter {
	out := c.clone()
	for _, k := range keys {
		out.decrement(k)
	}
	return out
}

// Apply copies the counter's values into the AssignedCount of each mapping.
func (c AssignedSeasonCounter) Apply(mappings []domain.StageMapping) []domain.StageMapping {
	out := make([]domain.StageMapping, len(mappings))
	for i, m := range mappings {
		m.AssignedCount = c.Count(m.Key())
		out[i] = m
	}
	return out
}

func (c AssignedSeasonCounter) decrement(key string) {
	switch n := c.counts[key]; {
	case n > 1:
		c.counts[key] = n - 1
	default:
		delete(c.counts, key)
	}
}

func (c AssignedSeasonCounter) clone() AssignedSeasonCounter {
	out := make(map[string]int, len(c.counts)+1)
	for k, v := range c.counts {
		out[k] = v
	}
	return AssignedSeasonCounter{counts: out}
}
