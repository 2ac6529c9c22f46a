package usn

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
		{name: "valid", request: Request{Target: app.VolumeTarget{Letter: "C"}, StorePath: "usn.db"}},
		{name: "missing volume", request: Request{StorePath: "usn.db"}, wantErr: true},
		{name: "missing store path", request: Request{Target: app.VolumeTarget{Letter: "C"}}, wantErr: true},
		{name: "stream flag doesn't bypass validation", request: Request{Stream: true}, wantErr: true},
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
