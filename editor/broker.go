package editor

import "time"

type (
	// Broker carries messages between the GUI goroutine, which owns the
	// Model, and helper goroutines such as file dialogs. Anything that touches
	// the Model from another goroutine must be sent to ToModel, usually as a
	// func() that the GUI goroutine then runs.
	//
	// CloseGUI has a capacity of one, so a close request never blocks; if it
	// is full, closing is already underway. FinishedGUI is closed by the GUI
	// loop when it has exited.
	Broker struct {
		ToModel chan MsgToModel
		ToGUI   chan any

		CloseGUI    chan struct{}
		FinishedGUI chan struct{}
	}

	// MsgToModel wraps data sent to the model: a func() to run, an Alert to
	// show or a decoded document to install.
	MsgToModel struct {
		Data any
	}

	MsgToGUI struct {
		Kind  GUIMessageKind
		Param float64
	}

	GUIMessageKind int
)

const (
	GUIMessageKindNone GUIMessageKind = iota
	// GUIMessageFitDocument asks the view to scroll so the notes of a freshly
	// loaded document are visible.
	GUIMessageFitDocument
	// GUIMessageRevealTime asks the view to scroll horizontally so that the
	// time in Param is visible.
	GUIMessageRevealTime
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:     make(chan MsgToModel, 1024),
		ToGUI:       make(chan any, 1024),
		CloseGUI:    make(chan struct{}, 1),
		FinishedGUI: make(chan struct{}),
	}
}

// TrySend is a non-blocking send. It returns true if the value was sent and
// false if the channel was full.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive waits for a value on c for at most t. ok is false on
// timeout or if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
