package postgres

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_EncodeDecode(t *testing.T) {
	svc, err := NewAuditService(nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		snapshot []byte
		wantAlgo CompressionAlgo
	}{
		{name: "small snapshot stays plain", snapshot: []byte(`{"name":"Springfield"}`), wantAlgo: CompressionNone},
		{name: "large snapshot is compressed", snapshot: bytes.Repeat([]byte(`{"k":"v"},`), 2048), wantAlgo: CompressionZstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, compressed, algo := svc.encode(tt.snapshot)
			assert.Equal(t, tt.wantAlgo, algo)
			if algo == CompressionZstd {
				assert.Nil(t, changes)
				assert.Less(t, len(compressed), len(tt.snapshot))
			}

			decoded, err := svc.decode(changes, compressed, algo)
			require.NoError(t, err)
			assert.Equal(t, tt.snapshot, decoded)
		})
	}
}
