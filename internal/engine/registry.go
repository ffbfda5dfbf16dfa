package engine

// Default display names, independent of the move log.
const (
	DefaultNameX = "Player 1"
	DefaultNameO = "Player 2"
)

// Registry maps each of the two marks to a human-readable display name.
// It is independent of the move log and changes only through Rename.
type Registry map[Mark]string

// NewRegistry returns a registry with the default display names.
func NewRegistry() Registry {
	return Registry{
		MarkX: DefaultNameX,
		MarkO: DefaultNameO,
	}
}

// Name looks up the display name for a mark. Unknown marks fall back to
// the raw mark so an outcome is never nameless.
func (r Registry) Name(m Mark) string {
	if name, ok := r[m]; ok {
		return name
	}
	return string(m)
}

// Rename returns a copy of the registry with the mark renamed. The
// receiver is left untouched.
func (r Registry) Rename(m Mark, name string) Registry {
	next := make(Registry, len(r))
	for mark, n := range r {
		next[mark] = n
	}
	next[m] = name
	return next
}
