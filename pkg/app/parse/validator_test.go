package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackbirdforensics/croweye/pkg/app"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr bool
	}{
		{name: "valid live volume", request: Request{Target: app.VolumeTarget{Letter: "C"}, StorePath: "mft.db"}},
		{name: "valid image", request: Request{ImagePath: "disk.raw", StorePath: "mft.db"}},
		{name: "invalid volume letter", request: Request{Target: app.VolumeTarget{Letter: ""}, StorePath: "mft.db"}, wantErr: true},
		{name: "missing store path", request: Request{Target: app.VolumeTarget{Letter: "C"}}, wantErr: true},
		{name: "image skips volume validation", request: Request{ImagePath: "disk.raw", Target: app.VolumeTarget{}, StorePath: "mft.db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
