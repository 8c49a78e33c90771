package entity

// ResumeKind tags the variant of a resumable task.
type ResumeKind int

const (
	// ResumeNone - nothing to go back to; fall through to idle.
	ResumeNone ResumeKind = iota
	// ResumeForaging - return to a bush slot after an interruption.
	ResumeForaging
)

// Resume records an interrupted task so a pop can pick it back up instead of
// restarting from idle. The zero value means nothing is pending. Callers must
// validate the target still exists (and the slot is free) before acting on it.
type Resume struct {
	Kind      ResumeKind
	TargetID  string // Structure the task was running against
	SlotIndex int    // Slot the pop held on that structure
	TypeTag   string // Slot facing tag, for re-claiming the same spot
}

// ForagingAt builds a resume record for an interrupted forage task.
func ForagingAt(targetID string, slotIndex int, typeTag string) Resume {
	return Resume{Kind: ResumeForaging, TargetID: targetID, SlotIndex: slotIndex, TypeTag: typeTag}
}

// IsNone reports whether there is no pending task.
func (r Resume) IsNone() bool {
	return r.Kind == ResumeNone
}

// Clear resets the record to the no-task value.
func (r *Resume) Clear() {
	*r = Resume{}
}
