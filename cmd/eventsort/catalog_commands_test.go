package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"eventsort/internal/catalog"
	"eventsort/internal/exchange"
)

func TestCatalogCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	requireContains(t, env.run(t, "person", "add", "ada  lovelace"), "Person #1 Ada Lovelace added")
	if _, _, err := runCLI(t, []string{"person", "add", "ada lovelace"}, env.configPath); err == nil || !strings.Contains(err.Error(), "DUPLICATE_NAME") {
		t.Fatalf("duplicate person: err = %v", err)
	}

	requireContains(t, env.run(t, "event", "add", "Festival", "--start", "2021-08-01", "--end", "2021-08-03"), "Event #1 Festival added")
	if _, _, err := runCLI(t, []string{"event", "add", "Backwards", "--start", "2021-08-05", "--end", "2021-08-01"}, env.configPath); err == nil || !strings.Contains(err.Error(), "DATE_SWAP") {
		t.Fatalf("swapped event: err = %v", err)
	}

	env.run(t, "subevent", "add", "1", "Opening", "--start", "2021-08-01 10:00", "--end", "2021-08-01 12:00")
	out := env.run(t, "check", "subevent", "1", "Same", "--start", "2021-08-01 10:00", "--end", "2021-08-01 12:00")
	requireContains(t, out, "OVERLAP_BOTH")
	out = env.run(t, "check", "subevent", "1", "Later", "--start", "2021-08-01 12:00", "--end", "2021-08-01 13:00")
	requireContains(t, out, "NO_WARNING")

	env.run(t, "participant", "add", "1", "Lin", "--start", "2021-08-01", "--end", "2021-08-02")
	if _, _, err := runCLI(t, []string{"participant", "add", "1", "Lin", "--start", "2021-08-02", "--end", "2021-08-03"}, env.configPath); err == nil || !strings.Contains(err.Error(), "OVERLAP_START") {
		t.Fatalf("overlapping participant: err = %v", err)
	}

	var detail eventDetail
	if err := json.Unmarshal([]byte(env.run(t, "event", "show", "1", "--json")), &detail); err != nil {
		t.Fatalf("decode event show: %v", err)
	}
	if detail.Event.Title != "Festival" || len(detail.Subevents) != 1 || len(detail.Participants) != 1 {
		t.Fatalf("event detail = %+v", detail)
	}

	env.run(t, "event", "update", "1", "--title", "Summer Festival")
	requireContains(t, env.run(t, "event", "list"), "Summer Festival")

	env.run(t, "artist", "add", "--person", "Lin", "--make", "Canon", "--model", "EOS R6",
		"--start", "2021-01-01", "--end", "2021-12-31", "--shift-hours", "-1")
	var artists []catalog.Artist
	if err := json.Unmarshal([]byte(env.run(t, "artist", "list", "--json")), &artists); err != nil {
		t.Fatalf("decode artists: %v", err)
	}
	if len(artists) != 1 || artists[0].Shift.Hours != -1 {
		t.Fatalf("artists = %+v", artists)
	}
	out = env.run(t, "check", "artist", "--person", "Lin", "--make", "canon", "--model", "eos r6",
		"--start", "2021-06-01", "--end", "2022-01-31")
	requireContains(t, out, "OVERLAP_START")
	out = env.run(t, "check", "artist", "--id", "1", "--person", "Lin", "--make", "canon", "--model", "eos r6",
		"--start", "2021-06-01", "--end", "2022-01-31")
	requireContains(t, out, "NO_WARNING")

	if _, _, err := runCLI(t, []string{"person", "delete", "2"}, env.configPath); err == nil {
		t.Fatal("expected referenced person delete to fail")
	}
	requireContains(t, env.run(t, "event", "delete", "1"), "Event #1 deleted")
	requireContains(t, env.run(t, "event", "list"), "No events")
}

func TestRecognizeCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"recognize", "IMG_20210802_101500.jpg", "holiday.jpg"}, "")
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	requireContains(t, out, "2021-08-02 10:15:00")
	requireContains(t, out, "unparsed")
}

func TestImportExportCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := t.TempDir()

	bundle := exchange.Bundle{
		Events: []exchange.EventRecord{
			{Title: "Festival", Start: "2021-08-01", End: "2021-08-03"},
			{Title: "Broken", Start: "2021-09-05", End: "2021-09-01"},
		},
	}
	in := filepath.Join(dir, "in.json")
	if err := exchange.Save(in, bundle); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out := env.run(t, "import", in)
	requireContains(t, out, "Imported 1 records")
	requireContains(t, out, "DATE_SWAP")

	exported := filepath.Join(dir, "out.yaml")
	requireContains(t, env.run(t, "export", exported), "Exported 1 records")
	loaded, err := exchange.Load(exported)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Events) != 1 || loaded.Events[0].Title != "Festival" {
		t.Fatalf("exported bundle = %+v", loaded)
	}
}
