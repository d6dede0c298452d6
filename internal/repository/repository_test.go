package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/roadtrip/roadtrip/internal/domain"
	"github.com/roadtrip/roadtrip/internal/graphstore"
)

func TestRepository_UpsertCountry(t *testing.T) {
	mem := graphstore.NewMemoryClient()
	repo := New(mem)

	country := domain.Country{
		ID:          "MYA",
		DisplayName: "Myanmar",
		Aliases:     []string{"Myanmar", "Burma"},
	}
	if err := repo.UpsertCountry(context.Background(), country); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Query, "MERGE (c:Country {id: $id})") {
		t.Fatalf("unexpected query: %s", calls[0].Query)
	}
	props, ok := calls[0].Params["props"].(map[string]any)
	if !ok {
		t.Fatalf("expected props map, got %T", calls[0].Params["props"])
	}
	if props["name"] != "Myanmar" {
		t.Fatalf("expected name Myanmar, got %v", props["name"])
	}
	aliases, _ := props["aliases"].([]string)
	if len(aliases) != 2 || aliases[1] != "Burma" {
		t.Fatalf("unexpected aliases %v", aliases)
	}
	if props["provisional"] != false {
		t.Fatalf("expected provisional false, got %v", props["provisional"])
	}
}

func TestRepository_UpsertCountryRequiresID(t *testing.T) {
	repo := New(graphstore.NewMemoryClient())
	if err := repo.UpsertCountry(context.Background(), domain.Country{}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestRepository_UpsertBorders(t *testing.T) {
	mem := graphstore.NewMemoryClient()
	repo := New(mem)

	hops := []domain.Hop{
		{From: "ALB", To: "GRC", Distance: domain.Known(360)},
		{From: "ALB", To: "MNG", Distance: domain.Unknown},
	}
	if err := repo.UpsertBorders(context.Background(), "ALB", hops); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(calls))
	}
	borders, ok := calls[0].Params["borders"].([]map[string]any)
	if !ok || len(borders) != 2 {
		t.Fatalf("unexpected borders param %#v", calls[0].Params["borders"])
	}
	if borders[0]["km"] != int64(360) || borders[0]["known"] != true {
		t.Fatalf("unexpected measured border %v", borders[0])
	}
	if borders[1]["km"] != nil || borders[1]["known"] != false {
		t.Fatalf("unexpected unmeasured border %v", borders[1])
	}
}

func TestRepository_UpsertBordersRejectsForeignHop(t *testing.T) {
	mem := graphstore.NewMemoryClient()
	repo := New(mem)

	err := repo.UpsertBorders(context.Background(), "ALB", []domain.Hop{{From: "GRC", To: "ALB"}})
	if err == nil {
		t.Fatal("expected error for hop not starting at ALB")
	}
	if len(mem.WriteCalls()) != 0 {
		t.Fatal("expected no writes")
	}
}

func TestRepository_WrapsClientErrors(t *testing.T) {
	boom := errors.New("bolt unavailable")
	repo := New(graphstore.NewMemoryClient().WithError(boom))

	err := repo.UpsertCountry(context.Background(), domain.Country{ID: "ALB"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
	if !strings.Contains(err.Error(), "upsert country ALB") {
		t.Fatalf("expected context in error, got %v", err)
	}

	if err := repo.EnsureSchema(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped schema error, got %v", err)
	}
}
