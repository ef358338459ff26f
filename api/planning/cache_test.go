package planning

import "testing"

func TestListCacheInvalidateScopedToPlanning(t *testing.T) {
	c := newListCache()
	c.SetEntries(7, "page=1", "page-one")
	c.SetEntries(7, "page=2", "page-two")
	c.SetStatistics(7, "stats")
	c.SetEntries(8, "page=1", "other-plan")

	c.Invalidate(7)

	if _, ok := c.GetEntries(7, "page=1"); ok {
		t.Fatalf("entries for invalidated planning still cached")
	}
	if _, ok := c.GetEntries(7, "page=2"); ok {
		t.Fatalf("second page for invalidated planning still cached")
	}
	if _, ok := c.GetStatistics(7); ok {
		t.Fatalf("statistics for invalidated planning still cached")
	}
	if got, ok := c.GetEntries(8, "page=1"); !ok || got != "other-plan" {
		t.Fatalf("unrelated planning lost its cache: %v %v", got, ok)
	}
}

func TestListCacheKeyedByQuery(t *testing.T) {
	c := newListCache()
	c.SetEntries(7, "page=1&q=sewa", "filtered")

	if _, ok := c.GetEntries(7, "page=1"); ok {
		t.Fatalf("different query string must miss")
	}
	if got, ok := c.GetEntries(7, "page=1&q=sewa"); !ok || got != "filtered" {
		t.Fatalf("cached page missing: %v %v", got, ok)
	}
}
