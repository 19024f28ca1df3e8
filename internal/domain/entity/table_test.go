package entity_test

import (
	"testing"

	"github.com/bnema/casement/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTab(t *testing.T, table *entity.Table, windowID entity.WindowID, url string) *entity.Tab {
	t.Helper()
	tab := entity.NewTab(table.NextTabID(), windowID, url)
	require.NoError(t, table.Insert(tab))
	require.NoError(t, tab.Transition(entity.TabReady))
	require.NoError(t, table.Settle(tab.ID))
	return tab
}

func TestNewTable_HasMainWindow(t *testing.T) {
	table := entity.NewTable()

	main := table.Main()
	require.NotNil(t, main)
	assert.Equal(t, entity.MainWindowID, main.ID)
	assert.True(t, main.IsMain)
	assert.True(t, main.IsEmpty())
	assert.Equal(t, 0, table.DetachedCount())
	assert.NoError(t, table.Validate())
}

func TestTable_NextTabIDIsMonotonic(t *testing.T) {
	table := entity.NewTable()

	a := table.NextTabID()
	b := table.NextTabID()
	c := table.NextTabID()

	assert.Equal(t, entity.TabID(1), a)
	assert.Equal(t, entity.TabID(2), b)
	assert.Equal(t, entity.TabID(3), c)
}

func TestTable_ActivateSwitchesFocus(t *testing.T) {
	table := entity.NewTable()
	a := insertTab(t, table, entity.MainWindowID, "https://a.test")
	b := insertTab(t, table, entity.MainWindowID, "https://b.test")

	require.NoError(t, table.Activate(a.ID))
	assert.Equal(t, entity.TabActive, a.State)
	assert.Equal(t, entity.TabInactive, b.State)

	require.NoError(t, table.Activate(b.ID))
	assert.Equal(t, entity.TabInactive, a.State)
	assert.Equal(t, entity.TabActive, b.State)
	assert.Equal(t, b.ID, table.Main().ActiveTabID)
	assert.NoError(t, table.Validate())
}

func TestTable_ActivateCreatingTabDefersState(t *testing.T) {
	table := entity.NewTable()
	a := insertTab(t, table, entity.MainWindowID, "https://a.test")
	require.NoError(t, table.Activate(a.ID))

	pending := entity.NewTab(table.NextTabID(), entity.MainWindowID, "https://slow.test")
	require.NoError(t, table.Insert(pending))
	require.NoError(t, table.Activate(pending.ID))

	assert.Equal(t, entity.TabCreating, pending.State)
	assert.Equal(t, entity.TabInactive, a.State)
	assert.Equal(t, pending.ID, table.Main().ActiveTabID)

	require.NoError(t, pending.Transition(entity.TabReady))
	require.NoError(t, table.Settle(pending.ID))
	assert.Equal(t, entity.TabActive, pending.State)
	assert.NoError(t, table.Validate())
}

func TestTable_ActivateUnknownTab(t *testing.T) {
	table := entity.NewTable()

	err := table.Activate(42)
	assert.ErrorIs(t, err, entity.ErrUnknownTab)
}

func TestTable_RemoveReturnsSuccessor(t *testing.T) {
	tests := []struct {
		name      string
		active    int
		remove    int
		successor int // index into the original strip, -1 for none
	}{
		{name: "active middle picks following", active: 1, remove: 1, successor: 2},
		{name: "active last picks previous", active: 2, remove: 2, successor: 1},
		{name: "inactive removal keeps focus", active: 0, remove: 2, successor: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := entity.NewTable()
			tabs := []*entity.Tab{
				insertTab(t, table, entity.MainWindowID, "https://a.test"),
				insertTab(t, table, entity.MainWindowID, "https://b.test"),
				insertTab(t, table, entity.MainWindowID, "https://c.test"),
			}
			require.NoError(t, table.Activate(tabs[tt.active].ID))

			windowID, successor, err := table.Remove(tabs[tt.remove].ID)
			require.NoError(t, err)
			assert.Equal(t, entity.MainWindowID, windowID)
			if tt.successor < 0 {
				assert.Zero(t, successor)
				assert.Equal(t, tabs[tt.active].ID, table.Main().ActiveTabID)
			} else {
				assert.Equal(t, tabs[tt.successor].ID, successor)
				assert.Zero(t, table.Main().ActiveTabID)
			}
			assert.Equal(t, 2, table.Main().Len())
			assert.NoError(t, table.Validate())
		})
	}
}

func TestTable_RemoveOnlyTab(t *testing.T) {
	table := entity.NewTable()
	a := insertTab(t, table, entity.MainWindowID, "https://a.test")
	require.NoError(t, table.Activate(a.ID))

	_, successor, err := table.Remove(a.ID)
	require.NoError(t, err)
	assert.Zero(t, successor)
	assert.True(t, table.Main().IsEmpty())
}

func TestTable_MoveKeepsOwnershipConsistent(t *testing.T) {
	table := entity.NewTable()
	a := insertTab(t, table, entity.MainWindowID, "https://a.test")
	b := insertTab(t, table, entity.MainWindowID, "https://b.test")
	require.NoError(t, table.Activate(b.ID))

	w := table.OpenWindow()
	assert.Equal(t, entity.WindowID(2), w.ID)
	assert.False(t, w.IsMain)

	successor, err := table.Move(b.ID, w.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, successor)
	assert.Equal(t, w.ID, b.WindowID)
	assert.Equal(t, []entity.TabID{a.ID}, table.Main().TabIDs)
	assert.Equal(t, []entity.TabID{b.ID}, w.TabIDs)

	// The moved tab is still marked active but its new window does not focus
	// it yet; activation completes the step.
	require.NoError(t, table.Activate(b.ID))
	require.NoError(t, table.Activate(a.ID))
	assert.NoError(t, table.Validate())
}

func TestTable_CloseWindow(t *testing.T) {
	table := entity.NewTable()

	err := table.CloseWindow(entity.MainWindowID)
	assert.ErrorIs(t, err, entity.ErrMainWindowRequired)

	w := table.OpenWindow()
	tab := insertTab(t, table, w.ID, "https://a.test")
	assert.Error(t, table.CloseWindow(w.ID))

	_, _, err = table.Remove(tab.ID)
	require.NoError(t, err)
	require.NoError(t, table.CloseWindow(w.ID))
	assert.Equal(t, 0, table.DetachedCount())

	_, err = table.Window(w.ID)
	assert.ErrorIs(t, err, entity.ErrUnknownWindow)
}

func TestTable_WindowIDsAreNotReused(t *testing.T) {
	table := entity.NewTable()
	first := table.OpenWindow()
	require.NoError(t, table.CloseWindow(first.ID))

	second := table.OpenWindow()
	assert.Greater(t, second.ID, first.ID)
}

func TestTable_ValidateDetectsMismatch(t *testing.T) {
	table := entity.NewTable()
	tab := insertTab(t, table, entity.MainWindowID, "https://a.test")
	w := table.OpenWindow()

	// Corrupt ownership without going through Move.
	tab.WindowID = w.ID

	assert.Error(t, table.Validate())
}

func TestTable_SnapshotWindow(t *testing.T) {
	table := entity.NewTable()
	a := insertTab(t, table, entity.MainWindowID, "https://a.test")
	b := insertTab(t, table, entity.MainWindowID, "https://b.test")
	b.Pinned = true
	b.SetTitle("Bee")
	b.LoadError = &entity.LoadError{URL: "https://b.test", Code: -105, Description: "name not resolved"}
	require.NoError(t, table.Activate(a.ID))
	table.OpenWindow()

	snap, err := table.SnapshotWindow(entity.MainWindowID, func(id entity.TabID) (bool, bool) {
		return id == a.ID, false
	})
	require.NoError(t, err)

	assert.True(t, snap.IsMain)
	assert.Equal(t, 1, snap.DetachedCount)
	require.Len(t, snap.Tabs, 2)
	assert.True(t, snap.Tabs[0].Active)
	assert.True(t, snap.Tabs[0].CanGoBack)
	assert.Equal(t, "Bee", snap.Tabs[1].Title)
	assert.True(t, snap.Tabs[1].Pinned)
	assert.Contains(t, snap.Tabs[1].LoadError, "name not resolved")

	active, ok := snap.ActiveTab()
	require.True(t, ok)
	assert.Equal(t, a.ID, active.ID)

	// Mutating the table afterwards must not leak into the snapshot.
	b.Pinned = false
	assert.True(t, snap.Tabs[1].Pinned)
}
