package history

import (
	"errors"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// counter is a minimal originator holding a slice, so tests can check that
// snapshots are not aliased.
type counter struct {
	values []int
	fail   bool
}

func (c *counter) Save() []int {
	return append([]int(nil), c.values...)
}

func (c *counter) Restore(s []int) error {
	if c.fail {
		return errors.New("restore refused")
	}
	c.values = append([]int(nil), s...)
	return nil
}

func (c *counter) push(v int) { c.values = append(c.values, v) }

func TestHistory_UndoRedo(t *testing.T) {
	c := &counter{}
	h := New[[]int](c)

	h.Commit()
	c.push(1)
	h.Commit()
	c.push(2)

	testutil.AssertTrue(t, h.CanUndo())
	testutil.AssertFalse(t, h.CanRedo())

	testutil.AssertTrue(t, h.Undo())
	testutil.AssertEqual(t, c.values, []int{1})
	testutil.AssertTrue(t, h.Undo())
	testutil.AssertEqual(t, c.values, []int(nil))
	testutil.AssertFalse(t, h.Undo(), "undo on empty stack")
	testutil.AssertEqual(t, c.values, []int(nil))

	testutil.AssertTrue(t, h.Redo())
	testutil.AssertEqual(t, c.values, []int{1})
	testutil.AssertTrue(t, h.Redo())
	testutil.AssertEqual(t, c.values, []int{1, 2})
	testutil.AssertFalse(t, h.Redo(), "redo on empty stack")
}

func TestHistory_CommitClearsRedo(t *testing.T) {
	c := &counter{}
	h := New[[]int](c)

	h.Commit()
	c.push(1)
	h.Undo()
	testutil.AssertTrue(t, h.CanRedo())

	h.Commit()
	c.push(7)
	testutil.AssertFalse(t, h.CanRedo())

	undo, redo := h.Len()
	testutil.AssertEqual(t, undo, 1)
	testutil.AssertEqual(t, redo, 0)
}

func TestHistory_CommitSnapshot(t *testing.T) {
	c := &counter{values: []int{3}}
	h := New[[]int](c)

	before := c.Save()
	c.push(4)
	h.CommitSnapshot(before)

	testutil.AssertTrue(t, h.Undo())
	testutil.AssertEqual(t, c.values, []int{3})
}

func TestHistory_SnapshotsAreIndependent(t *testing.T) {
	c := &counter{values: []int{1}}
	h := New[[]int](c)

	h.Commit()
	c.values[0] = 99
	h.Undo()
	testutil.AssertEqual(t, c.values, []int{1})

	c.values[0] = 50
	h.Redo()
	testutil.AssertEqual(t, c.values, []int{99})
}

func TestHistory_Reset(t *testing.T) {
	c := &counter{}
	h := New[[]int](c)
	h.Commit()
	h.Commit()
	h.Undo()

	h.Reset()
	testutil.AssertFalse(t, h.CanUndo())
	testutil.AssertFalse(t, h.CanRedo())
}

func TestHistory_FailedRestoreKeepsStacks(t *testing.T) {
	c := &counter{values: []int{1}}
	h := New[[]int](c)
	h.Commit()
	c.push(2)

	c.fail = true
	testutil.AssertFalse(t, h.Undo())
	testutil.AssertEqual(t, c.values, []int{1, 2})
	undo, redo := h.Len()
	testutil.AssertEqual(t, undo, 1)
	testutil.AssertEqual(t, redo, 0)
}
