package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
)

func TestCartKey(t *testing.T) {
	if got := cartKey("abc"); got != "shopdir:cart:abc" {
		t.Fatalf("key=%s", got)
	}
}

func TestNewStoreAddressForms(t *testing.T) {
	s, err := NewStore("localhost:6379", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Client.Options().Addr != "localhost:6379" {
		t.Fatalf("addr=%s", s.Client.Options().Addr)
	}

	s2, err := NewStore("redis://:secret@cache:6380/2", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if s2.Client.Options().Addr != "cache:6380" || s2.Client.Options().DB != 2 {
		t.Fatalf("opts=%+v", s2.Client.Options())
	}

	if _, err := NewStore("redis://cache:notaport/x", time.Minute); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStoreUnreachable(t *testing.T) {
	s, err := NewStore("127.0.0.1:1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := &Cart{}
	c.Add(noodles)
	if err := s.Save(ctx, "s1", c); err == nil {
		t.Fatal("expected error from unreachable redis")
	}
	if _, err := s.Load(ctx, "s1"); err == nil {
		t.Fatal("expected error from unreachable redis")
	}
}

func newMiniStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewStore(mr.Addr(), 30*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestStoreLoadMissingSession(t *testing.T) {
	s, _ := newMiniStore(t)
	c, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if c == nil || c.Len() != 0 {
		t.Fatalf("cart=%+v", c)
	}
}

func TestStoreSaveLoadKeepsOrderAndTTL(t *testing.T) {
	s, mr := newMiniStore(t)
	ctx := context.Background()

	c := &Cart{}
	c.Add(phoneShop)
	c.Add(noodles)
	c.Add(noodles)
	c.Add(furniture)
	if err := s.Save(ctx, "s1", c); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(cartKey("s1")); ttl != 30*time.Minute {
		t.Fatalf("ttl=%v", ttl)
	}

	got, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c.Items(), got.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreLoadRefreshesTTL(t *testing.T) {
	s, mr := newMiniStore(t)
	ctx := context.Background()

	c := &Cart{}
	c.Add(noodles)
	if err := s.Save(ctx, "s1", c); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(20 * time.Minute)
	if ttl := mr.TTL(cartKey("s1")); ttl != 10*time.Minute {
		t.Fatalf("ttl before load=%v", ttl)
	}

	if _, err := s.Load(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(cartKey("s1")); ttl != 30*time.Minute {
		t.Fatalf("ttl after load=%v", ttl)
	}

	mr.FastForward(31 * time.Minute)
	got, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Fatalf("expired cart still present: %+v", got.Items())
	}
}

func TestStoreSaveEmptyCartDeletesKey(t *testing.T) {
	s, mr := newMiniStore(t)
	ctx := context.Background()

	c := &Cart{}
	c.Add(noodles)
	if err := s.Save(ctx, "s1", c); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists(cartKey("s1")) {
		t.Fatal("key not written")
	}

	c.UpdateQuantity("8", -1)
	if err := s.Save(ctx, "s1", c); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(cartKey("s1")) {
		t.Fatal("empty cart should delete the key")
	}
}
