package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"clubfin/internal/core"
	"clubfin/internal/roster"
)

func testRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	repo, err := NewSnapshotRepository(filepath.Join(t.TempDir(), "clubfin.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadEmpty(t *testing.T) {
	repo := testRepo(t)
	_, ok, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("expected empty slot")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	store := roster.New()
	now := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	store.AddPlayers([]string{"Ana", "Beto"}, now)
	snap, _ := store.RegisterPayments([]string{"Ana"}, "Agosto", core.Cash)

	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("expected stored snapshot")
	}

	if len(loaded.Players) != len(snap.Players) {
		t.Fatalf("players = %d, want %d", len(loaded.Players), len(snap.Players))
	}
	for i, p := range loaded.Players {
		orig := snap.Players[i]
		if p.ID != orig.ID || p.Name != orig.Name {
			t.Errorf("player %d = %s/%s, want %s/%s", i, p.ID, p.Name, orig.ID, orig.Name)
		}
		// JoinDate survives as the same calendar day.
		if !p.JoinDate.Equal(orig.JoinDate.Time) {
			t.Errorf("player %s joinDate = %v, want %v", p.Name, p.JoinDate, orig.JoinDate)
		}
		for j, pay := range p.Payments {
			if pay != orig.Payments[j] {
				t.Errorf("player %s payment %d = %+v, want %+v", p.Name, j, pay, orig.Payments[j])
			}
		}
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)

	store := roster.New()
	first, _ := store.AddPlayers([]string{"Ana"}, now)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, _ := store.AddPlayers([]string{"Beto"}, now)
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, ok, err := repo.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(loaded.Players) != 2 {
		t.Errorf("players = %d, want 2 (latest snapshot)", len(loaded.Players))
	}
}

func TestLoadRejectsCorruptPayload(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.db.ExecContext(ctx,
		`INSERT INTO roster_snapshots (key, payload) VALUES (?, ?)`,
		SnapshotKey, "{not json"); err != nil {
		t.Fatalf("seed corrupt payload: %v", err)
	}

	_, _, err := repo.Load(ctx)
	if err == nil {
		t.Fatal("expected decode error for corrupt payload")
	}
}
