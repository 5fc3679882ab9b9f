package utils

import (
	"testing"
	"time"
)

func TestCacheExpiry(t *testing.T) {
	c := GetCache()
	c.Purge()

	c.Set("key", "value", 50*time.Millisecond)
	if got := c.Get("key"); got != "value" {
		t.Fatalf("got %v before expiry, want value", got)
	}

	time.Sleep(80 * time.Millisecond)
	if got := c.Get("key"); got != nil {
		t.Errorf("got %v after expiry, want nil", got)
	}
}

func TestCacheDelete(t *testing.T) {
	c := GetCache()
	c.Purge()

	c.Set("key", 1, time.Minute)
	c.Delete("key")
	if got := c.Get("key"); got != nil {
		t.Errorf("got %v after delete, want nil", got)
	}
}

func TestCacheDeletePrefix(t *testing.T) {
	c := GetCache()
	c.Purge()

	c.Set("posts:index:page:1", 1, time.Minute)
	c.Set("posts:index:page:2", 2, time.Minute)
	c.Set("posts:detail:5", 5, time.Minute)

	c.DeletePrefix("posts:index:page:")

	if c.Get("posts:index:page:1") != nil || c.Get("posts:index:page:2") != nil {
		t.Error("prefixed keys survived DeletePrefix")
	}
	if c.Get("posts:detail:5") == nil {
		t.Error("unrelated key was removed")
	}
}
