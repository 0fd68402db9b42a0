package reminder

import (
	"reflect"
	"testing"

	"tableflip.dev/cinetime/pkg/store"
)

func TestConfirmedCachePersistsInOrder(t *testing.T) {
	backend := store.NewMemory()
	c := NewConfirmedCache(backend, "", nil)
	c.Add("b")
	c.Add("a")
	c.Add("b")
	c.Add("")
	c.Add("c")
	c.Remove("a")
	c.Remove("missing")

	reloaded := NewConfirmedCache(backend, store.DefaultNamespace, nil)
	if got, want := reloaded.IDs(), []string{"b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !reloaded.Has("c") || reloaded.Has("a") {
		t.Fatal("unexpected membership after reload")
	}
}

func TestCachesAreNamespaced(t *testing.T) {
	backend := store.NewMemory()
	NewConfirmedCache(backend, "alpha", nil).Add("m1")
	NewContactCache(backend, "alpha", nil).Set("a@example.com")

	if NewConfirmedCache(backend, "beta", nil).Has("m1") {
		t.Fatal("confirmed cache leaked across namespaces")
	}
	if got := NewContactCache(backend, "beta", nil).Get(); got != "" {
		t.Fatalf("contact leaked across namespaces: %q", got)
	}
	if got := NewContactCache(backend, "alpha", nil).Get(); got != "a@example.com" {
		t.Fatalf("expected a@example.com, got %q", got)
	}
}

func TestNilContactCache(t *testing.T) {
	var c *ContactCache
	c.Set("x@example.com")
	if c.Get() != "" {
		t.Fatal("nil cache should be empty")
	}
}
