package sl

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "boom", attr.Value.String())
}

func TestNew_Levels(t *testing.T) {
	ctx := t.Context()

	assert.True(t, New(EnvLocal).Enabled(ctx, slog.LevelDebug))
	assert.True(t, New(EnvDev).Enabled(ctx, slog.LevelDebug))
	assert.False(t, New(EnvProd).Enabled(ctx, slog.LevelDebug))
	assert.True(t, New("staging").Enabled(ctx, slog.LevelInfo))
}
