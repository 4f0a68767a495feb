package storage

import "testing"

func TestSaveRunRoundTrip(t *testing.T) {
	store := openTestStore(t)

	run := RunSummary{
		GameID:    "marbles",
		Source:    SourceSim,
		Seed:      42,
		Score:     130,
		Deleted:   11,
		Captured:  7,
		Spat:      5,
		Mixes:     1234,
		Ticks:     3600,
		Remaining: 2,
	}
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("marbles", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != id {
		t.Errorf("ID = %d, expected %d", got.ID, id)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	got.ID, got.CreatedAt = 0, run.CreatedAt
	if got != run {
		t.Errorf("RecentRuns()[0] = %+v, expected %+v", got, run)
	}
}

func TestSaveRunDefaultsSource(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(RunSummary{GameID: "marbles"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	runs, _ := store.RecentRuns("marbles", 1)
	if len(runs) != 1 || runs[0].Source != SourcePlay {
		t.Errorf("Source = %v, expected %q", runs, SourcePlay)
	}
}

func TestRecentRunsOrderAndFilter(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveRun(RunSummary{GameID: "marbles", Score: i})
	}
	store.SaveRun(RunSummary{GameID: "marbles_wrap", Score: 99})

	runs, err := store.RecentRuns("marbles", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	for i, expected := range []int{5, 4, 3} {
		if runs[i].Score != expected {
			t.Errorf("runs[%d].Score = %d, expected %d", i, runs[i].Score, expected)
		}
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("RecentRuns(\"\") returned %d runs, expected 6", len(all))
	}
	if all[0].GameID != "marbles_wrap" {
		t.Errorf("newest run game = %q, expected marbles_wrap", all[0].GameID)
	}
}
