package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTest(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Time: base, Operation: "getServer", ExitCode: 0, RequestID: "r1", Duration: 120 * time.Millisecond},
		{Time: base.Add(time.Minute), Operation: "createServer", Target: "dc-1", ExitCode: 3, Error: "Over limit"},
		{Time: base.Add(2 * time.Minute), Operation: "getServer", ExitCode: 2},
	}
	for _, e := range entries {
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent() returned %d entries, want 3", len(got))
	}
	if got[0].ExitCode != 2 || got[2].RequestID != "r1" {
		t.Errorf("entries not newest first: %+v", got)
	}
	if got[1].Target != "dc-1" || got[1].Error != "Over limit" {
		t.Errorf("entry fields lost: %+v", got[1])
	}
	if got[2].Duration != 120*time.Millisecond {
		t.Errorf("Duration = %v", got[2].Duration)
	}
	if !got[2].Time.Equal(base) {
		t.Errorf("Time = %v, want %v", got[2].Time, base)
	}
}

func TestRecentLimitAndFilter(t *testing.T) {
	j := openTest(t)
	ctx := context.Background()
	for i, op := range []string{"getServer", "getImage", "getServer", "deleteNic"} {
		e := Entry{Time: time.Unix(int64(i), 0), Operation: op}
		if err := j.Record(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Operation != "deleteNic" {
		t.Errorf("Recent(2) = %+v", got)
	}

	got, err = j.Recent(ctx, 10, "getServer", "deleteNic")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("filtered Recent() returned %d entries, want 3", len(got))
	}
}

func TestNilJournalIsDisabled(t *testing.T) {
	var j *Journal
	if err := j.Record(context.Background(), Entry{Operation: "x"}); err != nil {
		t.Errorf("Record() on nil journal = %v", err)
	}
	if got, err := j.Recent(context.Background(), 5); err != nil || got != nil {
		t.Errorf("Recent() on nil journal = %v, %v", got, err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("Close() on nil journal = %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := DefaultPath(filepath.Join(t.TempDir(), "nested", "state"))
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer j.Close()
	if err := j.Record(context.Background(), Entry{Operation: "getAllImages"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
}
