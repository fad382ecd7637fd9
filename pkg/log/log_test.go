package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() { logrus.SetOutput(original) })
	return &buf
}

func TestWithFields(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		validate func(t *testing.T, out string)
	}{
		{
			name: "desenvolvimento omite campos irrelevantes",
			env:  "development",
			validate: func(t *testing.T, out string) {
				assert.Contains(t, out, "domain=keyword")
				assert.NotContains(t, out, "internal=x")
			},
		},
		{
			name: "produção mantém todos os campos",
			env:  "production",
			validate: func(t *testing.T, out string) {
				assert.Contains(t, out, "domain=keyword")
				assert.Contains(t, out, "internal=x")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			buf := captureOutput(t)
			logger := &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

			logger.WithFields(Fields{"domain": "keyword", "internal": "x"}).Info("teste")

			tt.validate(t, buf.String())
		})
	}
}

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Equal(t, "", GetCorrelationID(context.Background()))
}
