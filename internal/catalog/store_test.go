package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"eventsort/internal/catalog"
	"eventsort/internal/interval"
	"eventsort/internal/testsupport"
)

func TestOpenCreatesSchemaAndLocks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)

	if got, want := store.Path(), filepath.Join(cfg.Paths.DataDir, "catalog.db"); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
	if _, err := catalog.OpenPath(store.Path()); !errors.Is(err, catalog.ErrCatalogLocked) {
		t.Fatalf("second open error = %v, want ErrCatalogLocked", err)
	}
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := catalog.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 7"); err != nil {
		t.Fatalf("set version: %v", err)
	}
	_ = db.Close()

	if _, err := catalog.OpenPath(path); !errors.Is(err, catalog.ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	testsupport.NewEvent(t, store, "Holiday", "2020-07-01", "2020-07-10")
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenCatalog(t, cfg)
	events, err := reopened.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Holiday" {
		t.Fatalf("unexpected events after reopen: %#v", events)
	}
}

func TestInsertPersonRejectsDuplicates(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first, err := store.InsertPerson(ctx, "Ada  Lovelace")
	if err != nil {
		t.Fatalf("InsertPerson: %v", err)
	}
	if first.Name != "Ada Lovelace" {
		t.Fatalf("expected folded whitespace, got %q", first.Name)
	}

	_, err = store.InsertPerson(ctx, "Ada Lovelace")
	if !errors.Is(err, catalog.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := store.InsertPerson(ctx, "   "); !errors.Is(err, catalog.ErrMissingData) {
		t.Fatalf("expected ErrMissingData for blank name, got %v", err)
	}

	again, err := store.GetOrCreatePerson(ctx, "Ada Lovelace")
	if err != nil {
		t.Fatalf("GetOrCreatePerson: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("GetOrCreatePerson returned id %d, want %d", again.ID, first.ID)
	}
	persons, err := store.ListPersons(ctx)
	if err != nil {
		t.Fatalf("ListPersons: %v", err)
	}
	if len(persons) != 1 {
		t.Fatalf("expected one person, got %#v", persons)
	}
}

func TestInsertEventValidation(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()

	cases := []struct {
		name  string
		title string
		iv    interval.Interval
		want  error
	}{
		{"missing title", " ", testsupport.MustInterval(t, "2020-01-01", "2020-01-02"), catalog.ErrMissingTitle},
		{"missing bounds", "Trip", interval.Interval{}, catalog.ErrMissingData},
		{"swapped", "Trip", testsupport.MustInterval(t, "2020-01-05", "2020-01-02"), catalog.ErrSwapConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.InsertEvent(ctx, tc.title, tc.iv); !errors.Is(err, tc.want) {
				t.Fatalf("InsertEvent error = %v, want %v", err, tc.want)
			}
			if err := store.CheckEvent(ctx, tc.title, tc.iv); !errors.Is(err, tc.want) {
				t.Fatalf("CheckEvent error = %v, want %v", err, tc.want)
			}
		})
	}

	events, err := store.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("rejected inserts must not write rows, got %#v", events)
	}
}

func TestSubeventIdenticalIntervalIsOverlapBoth(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()

	event := testsupport.NewEvent(t, store, "Wedding", "2021-06-12", "2021-06-12")
	slot := testsupport.MustInterval(t, "2021-06-12 14:00", "2021-06-12 15:00")
	if _, err := store.InsertSubevent(ctx, event.ID, "Ceremony", slot); err != nil {
		t.Fatalf("InsertSubevent: %v", err)
	}

	_, err := store.InsertSubevent(ctx, event.ID, "Ceremony again", slot)
	verr, ok := catalog.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !errors.Is(err, catalog.ErrOverlapConflict) || verr.Overlap != interval.OverlapBoth {
		t.Fatalf("expected OVERLAP_BOTH conflict, got %v", err)
	}

	// Touching bounds are allowed.
	next := testsupport.MustInterval(t, "2021-06-12 15:00", "2021-06-12 16:00")
	if _, err := store.InsertSubevent(ctx, event.ID, "Reception", next); err != nil {
		t.Fatalf("adjacent subevent rejected: %v", err)
	}

	subs, err := store.ListSubevents(ctx, event.ID)
	if err != nil {
		t.Fatalf("ListSubevents: %v", err)
	}
	if len(subs) != 2 || subs[0].Title != "Ceremony" || subs[1].Title != "Reception" {
		t.Fatalf("unexpected subevents: %#v", subs)
	}
}

func TestSubeventOutsideParent(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()
	event := testsupport.NewEvent(t, store, "Conference", "2022-03-01", "2022-03-03")

	cases := []struct {
		start, end string
		want       interval.OutsideKind
	}{
		{"2022-02-28 09:00", "2022-03-01 10:00", interval.OutsideStart},
		{"2022-03-03 09:00", "2022-03-04 10:00", interval.OutsideEnd},
		{"2022-02-28 09:00", "2022-03-04 10:00", interval.OutsideBoth},
	}
	for _, tc := range cases {
		iv := testsupport.MustInterval(t, tc.start, tc.end)
		_, err := store.InsertSubevent(ctx, event.ID, "Talk", iv)
		verr, ok := catalog.AsValidation(err)
		if !ok || !errors.Is(err, catalog.ErrOutsideParent) || verr.Outside != tc.want {
			t.Fatalf("InsertSubevent(%s..%s) error = %v, want %s", tc.start, tc.end, err, tc.want)
		}
	}

	if _, err := store.InsertSubevent(ctx, 9999, "Orphan", testsupport.MustInterval(t, "2022-03-01", "2022-03-01")); !errors.Is(err, catalog.ErrMissingData) {
		t.Fatalf("expected ErrMissingData for unknown event, got %v", err)
	}
}

func TestParticipantOverlapAcrossEvents(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()

	morning := testsupport.NewEvent(t, store, "Brunch", "2020-01-01", "2020-01-01")
	meeting := testsupport.NewEvent(t, store, "Meeting", "2020-01-01", "2020-01-01")

	first := testsupport.MustInterval(t, "2020-01-01 10:00", "2020-01-01 12:00")
	if _, err := store.AddParticipant(ctx, "Grace", morning.ID, first); err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}

	second := testsupport.MustInterval(t, "2020-01-01 11:00", "2020-01-01 13:00")
	if err := store.CheckParticipant(ctx, "Grace", meeting.ID, second); !errors.Is(err, catalog.ErrOverlapConflict) {
		t.Fatalf("CheckParticipant error = %v, want overlap", err)
	}
	_, err := store.AddParticipant(ctx, "Grace", meeting.ID, second)
	verr, ok := catalog.AsValidation(err)
	if !ok || verr.Overlap != interval.OverlapStart {
		t.Fatalf("expected OVERLAP_START, got %v", err)
	}

	// Another person may attend the same slot.
	if _, err := store.AddParticipant(ctx, "Alan", meeting.ID, second); err != nil {
		t.Fatalf("AddParticipant for second person: %v", err)
	}
	participants, err := store.ListParticipants(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("ListParticipants: %v", err)
	}
	if len(participants) != 1 || participants[0].PersonName != "Alan" {
		t.Fatalf("unexpected participants: %#v", participants)
	}
}

func TestParticipantPointIntervalConflictsInEitherOrder(t *testing.T) {
	ctx := context.Background()
	wide := testsupport.MustInterval(t, "2020-01-01 10:00", "2020-01-01 12:00")
	point := testsupport.MustInterval(t, "2020-01-01 10:00", "2020-01-01 10:00")

	orders := []struct {
		name          string
		first, second interval.Interval
		want          interval.OverlapKind
	}{
		{"point after wide", wide, point, interval.OverlapStart},
		{"wide after point", point, wide, interval.OverlapBoth},
	}
	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
			event := testsupport.NewEvent(t, store, "Brunch", "2020-01-01", "2020-01-01")
			if _, err := store.AddParticipant(ctx, "Ada", event.ID, tc.first); err != nil {
				t.Fatalf("AddParticipant first: %v", err)
			}
			if err := store.CheckParticipant(ctx, "Ada", event.ID, tc.second); !errors.Is(err, catalog.ErrOverlapConflict) {
				t.Fatalf("CheckParticipant error = %v, want overlap", err)
			}
			_, err := store.AddParticipant(ctx, "Ada", event.ID, tc.second)
			verr, ok := catalog.AsValidation(err)
			if !ok || verr.Overlap != tc.want {
				t.Fatalf("AddParticipant second error = %v, want %s", err, tc.want)
			}
		})
	}
}

func TestChecksCompareStoredPrecision(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()
	event := testsupport.NewEvent(t, store, "Brunch", "2020-01-01", "2020-01-01")
	if _, err := store.AddParticipant(ctx, "Ada", event.ID, testsupport.MustInterval(t, "2020-01-01 10:00", "2020-01-01 12:00")); err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}

	// 11:00 to 13:00 on the wall clock, whatever the zone says.
	zone := time.FixedZone("UTC+3", 3*60*60)
	zoned := interval.New(
		time.Date(2020, 1, 1, 11, 0, 0, 0, zone),
		time.Date(2020, 1, 1, 13, 0, 0, 0, zone),
	)
	if err := store.CheckParticipant(ctx, "Ada", event.ID, zoned); !errors.Is(err, catalog.ErrOverlapConflict) {
		t.Fatalf("CheckParticipant zoned error = %v, want overlap", err)
	}
	_, err := store.AddParticipant(ctx, "Ada", event.ID, zoned)
	if verr, ok := catalog.AsValidation(err); !ok || verr.Overlap != interval.OverlapStart {
		t.Fatalf("AddParticipant zoned error = %v, want OVERLAP_START", err)
	}

	// Sub-millisecond residue is dropped before the check, as it is on write.
	touching := interval.New(
		time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 10, 0, 0, 400_000, time.UTC),
	)
	if err := store.CheckParticipant(ctx, "Ada", event.ID, touching); err != nil {
		t.Fatalf("CheckParticipant touching: %v", err)
	}
	added, err := store.AddParticipant(ctx, "Ada", event.ID, touching)
	if err != nil {
		t.Fatalf("AddParticipant touching: %v", err)
	}
	if got := interval.Format(added.Interval.End); got != "2020-01-01 10:00:00.000" {
		t.Fatalf("stored end = %s", got)
	}
}

func TestRejectedParticipantDoesNotCreatePerson(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()
	event := testsupport.NewEvent(t, store, "Hike", "2020-05-01", "2020-05-01")

	outside := testsupport.MustInterval(t, "2020-05-02 08:00", "2020-05-02 10:00")
	if _, err := store.AddParticipant(ctx, "Newcomer", event.ID, outside); !errors.Is(err, catalog.ErrOutsideParent) {
		t.Fatalf("expected ErrOutsideParent, got %v", err)
	}
	if _, err := store.FindPersonByName(ctx, "Newcomer"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("rejected participant left a person behind: %v", err)
	}
}

func TestFindEventsContainingIsInclusive(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()
	event := testsupport.NewEvent(t, store, "Summer", "2020-07-01", "2020-07-10")

	for _, stamp := range []string{"2020-07-05 00:00:00", "2020-07-01 00:00:00", "2020-07-10 23:59:59", "2020-07-10 23:59:59.500", "2020-07-10 23:59:59.999"} {
		events, err := store.FindEventsContaining(ctx, testsupport.MustTime(t, stamp))
		if err != nil {
			t.Fatalf("FindEventsContaining(%s): %v", stamp, err)
		}
		if len(events) != 1 || events[0].ID != event.ID {
			t.Fatalf("FindEventsContaining(%s) = %#v", stamp, events)
		}
	}
	for _, stamp := range []string{"2020-06-30 23:59:59.999", "2020-07-11 00:00:00"} {
		events, err := store.FindEventsContaining(ctx, testsupport.MustTime(t, stamp))
		if err != nil {
			t.Fatalf("FindEventsContaining(%s): %v", stamp, err)
		}
		if len(events) != 0 {
			t.Fatalf("FindEventsContaining(%s) should be empty, got %#v", stamp, events)
		}
	}
}

func TestFindEventsContainingCrossesMonths(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()
	trip := testsupport.NewEvent(t, store, "Trip", "2020-01-25", "2020-02-05")
	overlap := testsupport.NewEvent(t, store, "Overlap", "2020-01-30", "2020-01-31")

	events, err := store.FindEventsContaining(ctx, testsupport.MustTime(t, "2020-01-30 12:00"))
	if err != nil {
		t.Fatalf("FindEventsContaining: %v", err)
	}
	if len(events) != 2 || events[0].ID != trip.ID || events[1].ID != overlap.ID {
		t.Fatalf("expected both events in creation order, got %#v", events)
	}
}

func TestDeleteEventCascades(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()
	event := testsupport.NewEvent(t, store, "Party", "2020-12-31", "2020-12-31")
	slot := testsupport.MustInterval(t, "2020-12-31 20:00", "2020-12-31 23:00")

	if _, err := store.InsertSubevent(ctx, event.ID, "Dinner", slot); err != nil {
		t.Fatalf("InsertSubevent: %v", err)
	}
	participant, err := store.AddParticipant(ctx, "Host", event.ID, slot)
	if err != nil {
		t.Fatalf("AddParticipant: %v", err)
	}

	if err := store.DeletePerson(ctx, participant.PersonID); !errors.Is(err, catalog.ErrPersonInUse) {
		t.Fatalf("expected ErrPersonInUse, got %v", err)
	}
	if err := store.DeleteEvent(ctx, event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := store.GetEvent(ctx, event.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	subs, err := store.ListSubevents(ctx, event.ID)
	if err != nil || len(subs) != 0 {
		t.Fatalf("subevents not cascaded: %#v, %v", subs, err)
	}
	parts, err := store.ListParticipants(ctx, event.ID)
	if err != nil || len(parts) != 0 {
		t.Fatalf("participants not cascaded: %#v, %v", parts, err)
	}

	// The person survives the cascade and can now be deleted.
	if _, err := store.FindPersonByName(ctx, "Host"); err != nil {
		t.Fatalf("person should survive event delete: %v", err)
	}
	if err := store.DeletePerson(ctx, participant.PersonID); err != nil {
		t.Fatalf("DeletePerson: %v", err)
	}
	if err := store.DeleteEvent(ctx, event.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestArtistOverlapAndUpdate(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first, err := store.InsertArtist(ctx, catalog.Artist{
		PersonName: "Ada",
		Make:       "Canon",
		Model:      "EOS 80D",
		Interval:   testsupport.MustInterval(t, "2020-01-01", "2020-06-30"),
		Shift:      catalog.TimeShift{Hours: -1},
	})
	if err != nil {
		t.Fatalf("InsertArtist: %v", err)
	}
	if first.PersonName != "Ada" || first.Shift.Hours != -1 {
		t.Fatalf("unexpected artist: %#v", first)
	}

	clash := catalog.Artist{
		PersonID: first.PersonID,
		Make:     "canon",
		Model:    "eos 80d",
		Interval: testsupport.MustInterval(t, "2020-06-01", "2020-12-31"),
	}
	_, err = store.InsertArtist(ctx, clash)
	verr, ok := catalog.AsValidation(err)
	if !ok || verr.Overlap != interval.OverlapStart {
		t.Fatalf("expected OVERLAP_START for same device, got %v", err)
	}

	// A different device of the same person is independent.
	other := clash
	other.Model = "EOS R5"
	if _, err := store.InsertArtist(ctx, other); err != nil {
		t.Fatalf("InsertArtist other device: %v", err)
	}

	// Updating a row does not conflict with itself.
	first.Interval = testsupport.MustInterval(t, "2020-01-01", "2020-03-31")
	updated, err := store.UpdateArtist(ctx, first)
	if err != nil {
		t.Fatalf("UpdateArtist: %v", err)
	}
	if got := interval.Format(updated.Interval.End); got != "2020-03-31 23:59:59.999" {
		t.Fatalf("updated end = %s", got)
	}
	if err := store.CheckArtist(ctx, clash); err != nil {
		t.Fatalf("narrowed window should free the slot: %v", err)
	}
	if _, err := store.InsertArtist(ctx, catalog.Artist{PersonName: "Ada", Make: "Canon"}); !errors.Is(err, catalog.ErrMissingData) {
		t.Fatalf("expected ErrMissingData for missing model, got %v", err)
	}
}

func TestFindArtist(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()

	artist, err := store.InsertArtist(ctx, catalog.Artist{
		PersonName: "Grace",
		Make:       "Apple",
		Model:      "iPhone 12",
		Interval:   testsupport.MustInterval(t, "2021-01-01", "2021-12-31"),
		Shift:      catalog.TimeShift{Days: 1, Minutes: 30},
	})
	if err != nil {
		t.Fatalf("InsertArtist: %v", err)
	}

	found, ok, err := store.FindArtist(ctx, "APPLE", "iphone 12", testsupport.MustTime(t, "2021-12-31 23:59:59"))
	if err != nil || !ok {
		t.Fatalf("FindArtist: ok=%v err=%v", ok, err)
	}
	if found.ID != artist.ID || found.Shift != artist.Shift {
		t.Fatalf("unexpected artist: %#v", found)
	}

	_, ok, err = store.FindArtist(ctx, "Apple", "iPhone 12", testsupport.MustTime(t, "2022-01-01"))
	if err != nil || ok {
		t.Fatalf("expected no artist outside window: ok=%v err=%v", ok, err)
	}
}

func TestTimeShiftApply(t *testing.T) {
	shift := catalog.TimeShift{Days: -1, Hours: 2, Minutes: -30, Seconds: 15}
	base := testsupport.MustTime(t, "2020-03-01 00:00:00")
	got := interval.Format(shift.Apply(base))
	if got != "2020-02-29 01:30:15.000" {
		t.Fatalf("Apply = %s", got)
	}
	if !(catalog.TimeShift{}).IsZero() {
		t.Fatal("zero shift should report IsZero")
	}
}
