package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/roster-sync/internal/domain/roster"
	"github.com/riskibarqy/roster-sync/internal/platform/logging"
)

const playersJSON = `[
  {
    "id": 1,
    "name": "Weston McKennie",
    "position": "MF",
    "lock": true,
    "clubTeam": "Juventus",
    "apiTeamId": 496
  }
]
`

func TestRosterRepository_LoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "players.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(playersJSON), 0o644); err != nil {
		t.Fatalf("seed roster: %v", err)
	}

	repo := NewRosterRepository(path, logging.NewNop())
	records, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Weston McKennie" {
		t.Fatalf("unexpected records: %+v", records)
	}

	records[0] = roster.MergeLastClubGame(records[0], &roster.LastClubGame{Date: "2025-11-08", Opponent: "Torino", Result: "W 2-0"})
	if err := repo.Save(context.Background(), records); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded[0].LastClubGame == nil || reloaded[0].LastClubGame.Opponent != "Torino" {
		t.Fatalf("snapshot not persisted: %+v", reloaded[0].LastClubGame)
	}
	if raw, ok := reloaded[0].Extra("lock"); !ok || string(raw) != "true" {
		t.Fatalf("curator field lost: %q", raw)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file to be cleaned up, found %d entries", len(entries))
	}
}

func TestRosterRepository_SaveSkipsUnchangedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "players.json")
	if err := os.WriteFile(path, []byte(playersJSON), 0o644); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	repo := NewRosterRepository(path, nil)
	records, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := repo.Save(context.Background(), records); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(old) {
		t.Fatalf("expected unchanged file not to be rewritten, mtime=%s", info.ModTime())
	}
}

func TestRosterRepository_LoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := NewRosterRepository(filepath.Join(dir, "missing.json"), nil).Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`[{"id":1,"name":"x","lastClubGame":{"date":"yesterday","opponent":"y"}}]`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewRosterRepository(invalid, nil).Load(context.Background()); err == nil {
		t.Fatalf("expected schema validation error")
	}
}

func TestRosterRepository_SaveHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "players.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRosterRepository(path, nil).Save(ctx, nil); err == nil {
		t.Fatalf("expected cancelled context error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be written")
	}
}
