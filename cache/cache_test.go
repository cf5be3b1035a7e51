package cache

import (
	"testing"
	"time"

	"github.com/use-agent/pagegrab/models"
)

func sampleRequest() *models.CaptureRequest {
	return &models.CaptureRequest{
		URL:    "http://example.com/list",
		Engine: models.EngineChromium,
		Items:  models.ItemsConfig{Enabled: true, ItemSelector: ".result"},
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Key(sampleRequest())
	b := Key(sampleRequest())
	if a != b {
		t.Errorf("identical requests must produce identical keys: %s != %s", a, b)
	}
}

func TestKeyVariesWithConfig(t *testing.T) {
	base := Key(sampleRequest())

	variants := []func(*models.CaptureRequest){
		func(r *models.CaptureRequest) { r.URL = "http://example.com/other" },
		func(r *models.CaptureRequest) { r.Engine = models.EngineFirefox },
		func(r *models.CaptureRequest) { r.Screenshot = true },
		func(r *models.CaptureRequest) { r.Items.TitleSelector = ".title" },
		func(r *models.CaptureRequest) { r.Search = models.SearchConfig{Enabled: true, Term: "x"} },
		func(r *models.CaptureRequest) {
			r.Items = models.ItemsConfig{}
			r.Body = models.BodyConfig{Enabled: true, BodySelectors: []string{"article"}}
		},
	}
	for i, mutate := range variants {
		req := sampleRequest()
		mutate(req)
		if Key(req) == base {
			t.Errorf("variant %d: expected a different key", i)
		}
	}
}

func TestGetMissAndHit(t *testing.T) {
	c := New(10)
	key := Key(sampleRequest())

	if _, hit := c.Get(key, 60000); hit {
		t.Error("expected miss on empty cache")
	}

	info := &models.PageInfo{Meta: models.Meta{}}
	c.Set(key, info)

	got, hit := c.Get(key, 60000)
	if !hit {
		t.Fatal("expected hit after set")
	}
	if got != info {
		t.Error("expected the stored result back")
	}
}

func TestGetDisabledWithoutMaxAge(t *testing.T) {
	c := New(10)
	key := Key(sampleRequest())
	c.Set(key, &models.PageInfo{})

	if _, hit := c.Get(key, 0); hit {
		t.Error("max_age 0 must bypass the cache")
	}
	if _, hit := c.Get(key, -5); hit {
		t.Error("negative max_age must bypass the cache")
	}
}

func TestGetRespectsMaxAge(t *testing.T) {
	c := New(10)
	key := Key(sampleRequest())
	c.Set(key, &models.PageInfo{})

	// Backdate the entry past any plausible max_age.
	c.mu.Lock()
	c.store[key].createdAt = time.Now().Add(-time.Hour)
	c.mu.Unlock()

	if _, hit := c.Get(key, 1000); hit {
		t.Error("expected a stale entry to miss")
	}
}

func TestSetEvictsAtCapacity(t *testing.T) {
	c := New(2)
	for _, url := range []string{"http://a", "http://b", "http://c"} {
		req := sampleRequest()
		req.URL = url
		c.Set(Key(req), &models.PageInfo{})
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.store) != 2 {
		t.Errorf("expected 2 entries after eviction, got %d", len(c.store))
	}
}
