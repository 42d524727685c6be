/*
Package lightbox holds the state machine behind the full-screen photo
viewer. States are values; every transition returns a new State.
*/
package lightbox

const (
	KeyEscape     = "Escape"
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
)

type Action string

const (
	ActionOpen     Action = "open"
	ActionClose    Action = "close"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionKey      Action = "key"
)

type State struct {
	Open   bool
	Index  int
	Length int
}

// New returns a closed viewer over a list of length items.
func New(length int) State {
	if length < 0 {
		length = 0
	}

	return State{Length: length}
}

/*
OpenAt opens the viewer on the tile at index. Out of range indexes leave
the viewer closed.
*/
func (s State) OpenAt(index int) State {
	if index < 0 || index >= s.Length {
		return State{Length: s.Length}
	}

	return State{Open: true, Index: index, Length: s.Length}
}

func (s State) Close() State {
	return State{Length: s.Length}
}

// Next advances the index, wrapping from the last photo to the first.
func (s State) Next() State {
	if !s.Open || s.Length == 0 {
		return s
	}

	if s.Index == s.Length-1 {
		s.Index = 0
	} else {
		s.Index++
	}

	return s
}

// Previous moves back one photo, wrapping from the first photo to the last.
func (s State) Previous() State {
	if !s.Open || s.Length == 0 {
		return s
	}

	if s.Index == 0 {
		s.Index = s.Length - 1
	} else {
		s.Index--
	}

	return s
}

/*
HandleKey applies a keyboard event. Arrow keys do nothing while the viewer
is closed, and Escape on a closed viewer is a no-op.
*/
func (s State) HandleKey(key string) State {
	switch key {
	case KeyEscape:
		return s.Close()

	case KeyArrowRight:
		return s.Next()

	case KeyArrowLeft:
		return s.Previous()
	}

	return s
}

/*
Resize rebinds the state to a list of a new length. A different length
means a different list, so the viewer closes.
*/
func (s State) Resize(length int) State {
	if length == s.Length {
		return s
	}

	return New(length)
}

func (s State) Apply(action Action, key string) State {
	switch action {
	case ActionClose:
		return s.Close()

	case ActionNext:
		return s.Next()

	case ActionPrevious:
		return s.Previous()

	case ActionKey:
		return s.HandleKey(key)
	}

	return s
}
