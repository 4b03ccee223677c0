package dataset

import (
	"sync"
	"testing"
	"time"
)

func TestCache_Basics(t *testing.T) {
	c := newCache()

	// Initially empty
	if c.size() != 0 {
		t.Errorf("expected empty cache, got size %d", c.size())
	}

	e := &entry{
		version:  "rev-1",
		phases:   []PhaseRecord{{Team: "Austin FC", Phase: "buildup", Count: 12}},
		loadedAt: time.Now(),
	}
	c.set("phases.csv", e)

	if c.size() != 1 {
		t.Errorf("expected size 1, got %d", c.size())
	}

	got, ok := c.get("phases.csv", "rev-1")
	if !ok {
		t.Fatal("expected to retrieve entry")
	}
	if got.phases[0].Team != "Austin FC" {
		t.Errorf("expected team Austin FC, got %s", got.phases[0].Team)
	}

	// A changed version misses
	if _, ok := c.get("phases.csv", "rev-2"); ok {
		t.Error("expected miss for changed version")
	}

	// An unknown source misses
	if _, ok := c.get("styles.csv", "rev-1"); ok {
		t.Error("expected miss for unknown source")
	}

	c.clear()
	if c.size() != 0 {
		t.Errorf("expected size 0 after clear, got %d", c.size())
	}
}

func TestCache_ReplaceEntry(t *testing.T) {
	c := newCache()

	c.set("phases.csv", &entry{version: "rev-1"})
	c.set("phases.csv", &entry{version: "rev-2"})

	if c.size() != 1 {
		t.Errorf("expected size 1 after replace, got %d", c.size())
	}
	if _, ok := c.get("phases.csv", "rev-1"); ok {
		t.Error("expected old version to be evicted")
	}
	if _, ok := c.get("phases.csv", "rev-2"); !ok {
		t.Error("expected new version to be cached")
	}
}

func TestCache_Concurrency(t *testing.T) {
	c := newCache()
	var wg sync.WaitGroup

	// Concurrent writes
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.set(string(rune('a'+id%26)), &entry{version: "v"})
		}(i)
	}

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.get(string(rune('a'+id%26)), "v")
		}(i)
	}

	wg.Wait()

	// Should not panic and have some entries
	if c.size() == 0 {
		t.Error("expected some entries after concurrent operations")
	}
}
