package slug

import (
	"context"
	"errors"
	"testing"
)

func takenSet(taken ...string) ExistsFunc {
	set := map[string]bool{}
	for _, s := range taken {
		set[s] = true
	}
	return func(_ context.Context, candidate string) (bool, error) {
		return set[candidate], nil
	}
}

func TestMakeNormalizes(t *testing.T) {
	if got := Make("Mobile & Accessories"); got != "mobile-accessories" {
		t.Fatalf("unexpected slug %q", got)
	}
}

func TestMakeUniqueNoCollision(t *testing.T) {
	got, err := MakeUnique(context.Background(), "Electronics", takenSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "electronics" {
		t.Fatalf("unexpected slug %q", got)
	}
}

func TestMakeUniqueSuffixes(t *testing.T) {
	got, err := MakeUnique(context.Background(), "Electronics", takenSet("electronics"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "electronics-1" {
		t.Fatalf("expected first suffix, got %q", got)
	}

	got, err = MakeUnique(context.Background(), "Electronics", takenSet("electronics", "electronics-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "electronics-2" {
		t.Fatalf("expected second suffix, got %q", got)
	}
}

func TestMakeUniquePropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := MakeUnique(context.Background(), "Electronics", func(context.Context, string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
}

func TestMakeUniqueEmptyName(t *testing.T) {
	if _, err := MakeUnique(context.Background(), "!!!", takenSet()); err == nil {
		t.Fatal("expected error for name with no slug content")
	}
}
