package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputSystem(t *testing.T) {
	require.NotNil(t, NewInputSystem())
}

func TestMenuIntents(t *testing.T) {
	tests := []struct {
		name       string
		input      InputState
		dialogOpen bool
		want       []Intent
	}{
		{"closed dialog ignores keys", InputState{Confirm: true, Back: true}, false, nil},
		{"enter submits", InputState{Confirm: true}, true, []Intent{SubmitIntent{}}},
		{"escape cancels", InputState{Back: true}, true, []Intent{CancelIntent{}}},
		{"enter wins over escape", InputState{Confirm: true, Back: true}, true, []Intent{SubmitIntent{}}},
		{"arrows do nothing", InputState{Left: true, Down: true}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MenuIntents(tt.input, tt.dialogOpen))
		})
	}
}

func TestDungeonIntents(t *testing.T) {
	tests := []struct {
		name  string
		input InputState
		want  []Intent
	}{
		{"idle", InputState{}, nil},
		{"back", InputState{Back: true}, []Intent{BackIntent{}}},
		{"toggle hud", InputState{ToggleHUD: true}, []Intent{ToggleHUDIntent{}}},
		{"pan diagonal", InputState{Left: true, Down: true}, []Intent{PanIntent{DX: -4, DY: 4}}},
		{"opposite keys cancel", InputState{Left: true, Right: true}, nil},
		{
			"back and pan",
			InputState{Back: true, Up: true},
			[]Intent{BackIntent{}, PanIntent{DY: -4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DungeonIntents(tt.input, 4))
		})
	}
}
