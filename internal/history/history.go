// Package history keeps undo and redo stacks of value snapshots.
package history

// Originator produces snapshots of its state and restores from them.
// Snapshots must be independent values: restoring one must not leave the
// originator sharing mutable data with a stack entry.
type Originator[T any] interface {
	Save() T
	Restore(T) error
}

// History records snapshots of an Originator.
type History[T any] struct {
	origin Originator[T]
	undo   []T
	redo   []T
}

// New creates an empty history for origin.
func New[T any](origin Originator[T]) *History[T] {
	return &History[T]{origin: origin}
}

// Commit records the current state of the originator and drops the redo
// stack. Call it before the change that should become undoable.
func (h *History[T]) Commit() {
	h.CommitSnapshot(h.origin.Save())
}

// CommitSnapshot records a snapshot taken earlier, for callers that only
// know after the fact whether a change happened.
func (h *History[T]) CommitSnapshot(s T) {
	h.undo = append(h.undo, s)
	h.redo = nil
}

// Undo restores the most recent snapshot, saving the current state for
// Redo. It returns false when there is nothing to undo or restoring fails;
// in both cases the stacks are left as they were.
func (h *History[T]) Undo() bool {
	return h.step(&h.undo, &h.redo)
}

// Redo reapplies the most recently undone state.
func (h *History[T]) Redo() bool {
	return h.step(&h.redo, &h.undo)
}

func (h *History[T]) step(from, to *[]T) bool {
	n := len(*from)
	if n == 0 {
		return false
	}
	current := h.origin.Save()
	if err := h.origin.Restore((*from)[n-1]); err != nil {
		return false
	}
	var zero T
	(*from)[n-1] = zero
	*from = (*from)[:n-1]
	*to = append(*to, current)
	return true
}

// Reset clears both stacks.
func (h *History[T]) Reset() {
	h.undo = nil
	h.redo = nil
}

// CanUndo reports whether Undo would do anything.
func (h *History[T]) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History[T]) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the sizes of the undo and redo stacks.
func (h *History[T]) Len() (undo, redo int) { return len(h.undo), len(h.redo) }
