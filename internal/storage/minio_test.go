package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"managerapi/internal/config"
)

func TestNewMinIO_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr string
	}{
		{
			name:    "missing endpoint",
			cfg:     config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"},
			wantErr: "minio endpoint is required",
		},
		{
			name:    "missing credentials",
			cfg:     config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"},
			wantErr: "minio credentials are required",
		},
		{
			name:    "missing bucket",
			cfg:     config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"},
			wantErr: "minio bucket is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(ctx, tt.cfg)
			assert.EqualError(t, err, tt.wantErr)
			assert.Nil(t, s)
		})
	}
}

func TestTranslateError(t *testing.T) {
	t.Run("missing key maps to ErrObjectNotFound", func(t *testing.T) {
		err := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound, Message: "gone"}
		assert.ErrorIs(t, translateError(err), ErrObjectNotFound)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		orig := errors.New("connection reset")
		assert.Equal(t, orig, translateError(orig))
	})
}
