package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVolumeTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		letter  string
		wantErr bool
	}{
		{"bare letter", "C", false},
		{"lowercase letter", "c", false},
		{"with trailing colon", "C:", false},
		{"empty", "", true},
		{"too long", "CD", true},
		{"not a letter", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vt := VolumeTarget{Letter: tt.letter}
			err := vt.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVolumeTarget_Normalized(t *testing.T) {
	assert.Equal(t, "C", (&VolumeTarget{Letter: "c"}).Normalized())
	assert.Equal(t, "D", (&VolumeTarget{Letter: "D:"}).Normalized())
}

func TestVolumeTarget_IsEmptyAndString(t *testing.T) {
	empty := VolumeTarget{}
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "No volume", empty.String())

	vt := VolumeTarget{Letter: "E"}
	assert.False(t, vt.IsEmpty())
	assert.Equal(t, "Volume E:", vt.String())
}

func TestCommonError(t *testing.T) {
	cause := assert.AnError
	err := NewError(ErrCodeInvalidInput, "bad input", cause)
	assert.Equal(t, ErrCodeInvalidInput, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad input")

	bare := NewError(ErrCodeTimeout, "timed out", nil)
	assert.Equal(t, "timed out", bare.Error())
}

func TestProgressUpdate(t *testing.T) {
	p := &ProgressUpdate{Completed: 50, Total: 200}
	assert.Equal(t, 25, p.Percent())

	zero := &ProgressUpdate{}
	assert.Equal(t, 0, zero.Percent())
	assert.Equal(t, float64(0), zero.Rate())
	assert.Equal(t, time.Duration(0), zero.ETA())
}
