package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewConfigLevel(t *testing.T) {
	assert.Equal(t, zap.InfoLevel, NewConfig(false).Level.Level())
	assert.Equal(t, zap.DebugLevel, NewConfig(true).Level.Level())
}

func TestNew(t *testing.T) {
	log := New("test", true)
	assert.NotNil(t, log)
	assert.True(t, log.Desugar().Core().Enabled(zap.DebugLevel))
}
