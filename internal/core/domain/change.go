package domain

// ChangeSet is the outcome of a diff against the source of truth.
// Paths are relative to the source root.
type ChangeSet struct {
	// Changed lists files that were added or modified since the cursor.
	Changed []string

	// Removed lists files that no longer exist in the source.
	Removed []string
}

// Empty returns true if the change set carries no changes.
func (c *ChangeSet) Empty() bool {
	return c == nil || (len(c.Changed) == 0 && len(c.Removed) == 0)
}
