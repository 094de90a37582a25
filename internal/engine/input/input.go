// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
	EventDropFile
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Button uint8
	File   string // dropped file path
}

// Input handles all input processing.
type Input struct {
	events []Event
	lastX  int
	lastY  int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{Key: e.Keysym.Scancode}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})
			i.lastX, i.lastY = int(e.X), int(e.Y)

		case *sdl.MouseButtonEvent:
			ev := Event{
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = EventMouseDown
			} else {
				ev.Type = EventMouseUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseWheel,
				DeltaX: int(e.X),
				DeltaY: int(e.Y),
				MouseX: i.lastX,
				MouseY: i.lastY,
			})

		case *sdl.DropEvent:
			if e.Type == sdl.DROPFILE {
				i.events = append(i.events, Event{
					Type: EventDropFile,
					File: e.File,
				})
			}
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
