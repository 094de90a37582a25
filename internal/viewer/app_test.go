package viewer

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/triforge/meshview/internal/engine/input"
)

func TestHomeKeyResetsCamera(t *testing.T) {
	_, rig, _ := newTestController()
	a := &App{rig: rig}

	home := rig.ViewMatrix()
	rig.Rotate(40, -25)
	rig.Pan(10, 5)
	rig.HandleZoom(3)
	if rig.ViewMatrix() == home {
		t.Fatal("camera did not move before reset")
	}

	a.handleKeyDown(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_HOME})
	if got := rig.ViewMatrix(); got != home {
		t.Errorf("view after reset = %v, want %v", got, home)
	}
}
