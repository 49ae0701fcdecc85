package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailgate/core/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields empty attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Error(nil)
		assert.Equal(t, slog.Attr{}, attr)
	})

	t.Run("non-nil error", func(t *testing.T) {
		t.Parallel()

		err := errors.New("boom")
		attr := logger.Error(err)
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, err, attr.Value.Any())
	})
}

func TestComponent(t *testing.T) {
	t.Parallel()

	attr := logger.Component("smtp-gateway")
	assert.Equal(t, "component", attr.Key)
	assert.Equal(t, "smtp-gateway", attr.Value.String())
}

func TestDuration(t *testing.T) {
	t.Parallel()

	attr := logger.Duration(2 * time.Second)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 2*time.Second, attr.Value.Duration())
}

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("smtp", slog.String("host", "mail.example.com"))
	assert.Equal(t, "smtp", attr.Key)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())
}
