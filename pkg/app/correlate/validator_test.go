package correlate

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
		{
			name:    "valid",
			request: Request{Target: app.VolumeTarget{Letter: "C"}, MFTStorePath: "mft.db", USNStorePath: "usn.db"},
		},
		{
			name:    "missing volume",
			request: Request{MFTStorePath: "mft.db", USNStorePath: "usn.db"},
			wantErr: true,
		},
		{
			name:    "missing mft store",
			request: Request{Target: app.VolumeTarget{Letter: "C"}, USNStorePath: "usn.db"},
			wantErr: true,
		},
		{
			name:    "missing usn store",
			request: Request{Target: app.VolumeTarget{Letter: "C"}, MFTStorePath: "mft.db"},
			wantErr: true,
		},
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
