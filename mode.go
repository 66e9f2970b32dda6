package domcmp

// MountMode defines how a cloned template root is inserted relative to the
// mount container's existing children.
//
// The default used by convenience call sites is MountReplace.
type MountMode string

const (
	// MountReplace removes the container's existing children and inserts
	// the component root as the sole child.
	MountReplace MountMode = "replace"

	// MountAppend inserts the component root after the container's existing
	// children. Useful for lists and slots holding several components.
	MountAppend MountMode = "append"

	// MountPrepend inserts the component root before the container's
	// existing children.
	MountPrepend MountMode = "prepend"
)

// valid reports whether the mode is one of the defined insertion modes.
func (m MountMode) valid() bool {
	switch m {
	case MountReplace, MountAppend, MountPrepend:
		return true
	}
	return false
}
