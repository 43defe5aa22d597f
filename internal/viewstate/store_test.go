package viewstate

import (
	"reflect"
	"testing"

	"github.com/NexusOnePlus/spacedrive/schema"
)

func TestGetReturnsDefaultWithoutStoring(t *testing.T) {
	store := New(nil)
	got := store.Get("tab1")
	if !reflect.DeepEqual(got, schema.DefaultExplorerState()) {
		t.Fatalf("expected default state, got %+v", got)
	}
	if store.Has("tab1") {
		t.Fatalf("expected get to leave the table untouched")
	}
	if len(store.SnapshotAll()) != 0 {
		t.Fatalf("expected empty snapshot")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := New(nil)
	state := schema.DefaultExplorerState()
	state.ColumnStack = []string{"root"}
	store.Set("tab1", state)

	got := store.Get("tab1")
	got.ColumnStack[0] = "changed"
	if store.Get("tab1").ColumnStack[0] != "root" {
		t.Fatalf("expected stored state to be isolated from callers")
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	store := New(nil)
	before := schema.DefaultExplorerState()
	before.ViewMode = schema.ViewList
	before.ScrollPosition = schema.ScrollPosition{Top: 200, Left: 4}
	store.Set("tab1", before)

	sort := schema.SortSize
	store.Update("tab1", schema.ExplorerPatch{SortBy: &sort})

	want := before.Clone()
	want.SortBy = schema.SortSize
	if got := store.Get("tab1"); !reflect.DeepEqual(got, want) {
		t.Fatalf("partial merge mismatch:\nwant: %+v\ngot:  %+v", want, got)
	}
}

func TestUpdateStartsFromDefault(t *testing.T) {
	store := New(nil)
	size := 160
	got := store.Update("tab1", schema.ExplorerPatch{GridSize: &size})
	want := schema.DefaultExplorerState()
	want.GridSize = 160
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("update mismatch:\nwant: %+v\ngot:  %+v", want, got)
	}
}

func TestListenersSeeEveryNotification(t *testing.T) {
	store := New(nil)
	var first, second []schema.TabID
	cancelFirst := store.Subscribe(func(id schema.TabID) { first = append(first, id) })
	defer cancelFirst()
	cancelSecond := store.Subscribe(func(id schema.TabID) { second = append(second, id) })
	defer cancelSecond()

	store.Set("a", schema.DefaultExplorerState())
	store.Update("b", schema.ExplorerPatch{})
	store.Delete("a")

	want := []schema.TabID{"a", "b", "a"}
	if !reflect.DeepEqual(first, want) || !reflect.DeepEqual(second, want) {
		t.Fatalf("expected both listeners to get %v, got %v and %v", want, first, second)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	store := New(nil)
	calls := 0
	cancel := store.Subscribe(func(schema.TabID) { calls++ })
	store.Set("a", schema.DefaultExplorerState())
	cancel()
	cancel()
	store.Set("a", schema.DefaultExplorerState())
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestWatchIgnoresOtherTabs(t *testing.T) {
	store := New(nil)
	var seen []schema.ExplorerViewState
	cancel := store.Watch("x", func(state schema.ExplorerViewState) { seen = append(seen, state) })
	defer cancel()
	if len(seen) != 1 {
		t.Fatalf("expected synchronous initial read, got %d calls", len(seen))
	}

	mode := schema.ViewMedia
	store.Update("y", schema.ExplorerPatch{ViewMode: &mode})
	if len(seen) != 1 {
		t.Fatalf("expected no call for another tab, got %d calls", len(seen))
	}

	store.Update("x", schema.ExplorerPatch{ViewMode: &mode})
	if len(seen) != 2 {
		t.Fatalf("expected exactly one call for own tab, got %d calls", len(seen))
	}
	if seen[1].ViewMode != schema.ViewMedia {
		t.Fatalf("expected updated state, got %+v", seen[1])
	}
}

func TestLoadAllBroadcastsSentinel(t *testing.T) {
	store := New(nil)
	store.Set("old", schema.DefaultExplorerState())

	var got []schema.TabID
	cancel := store.Subscribe(func(id schema.TabID) { got = append(got, id) })
	defer cancel()

	watched := 0
	cancelWatch := store.Watch("kept", func(schema.ExplorerViewState) { watched++ })
	defer cancelWatch()

	list := schema.DefaultExplorerState()
	list.ViewMode = schema.ViewList
	store.LoadAll(map[schema.TabID]schema.ExplorerViewState{"kept": list})

	if !reflect.DeepEqual(got, []schema.TabID{AllTabs}) {
		t.Fatalf("expected sentinel notification, got %v", got)
	}
	if watched != 2 {
		t.Fatalf("expected watcher to re-read after bulk load, got %d calls", watched)
	}
	if store.Has("old") {
		t.Fatalf("expected load to replace the table")
	}
	if store.Get("kept").ViewMode != schema.ViewList {
		t.Fatalf("expected loaded state")
	}
}

func TestListenerMayReadStore(t *testing.T) {
	store := New(nil)
	var read schema.ExplorerViewState
	cancel := store.Subscribe(func(id schema.TabID) { read = store.Get(id) })
	defer cancel()
	gap := 8
	store.Update("a", schema.ExplorerPatch{GapSize: &gap})
	if read.GapSize != 8 {
		t.Fatalf("expected listener to observe new state, got %+v", read)
	}
}
