package x86

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
)

func TestNewOptions_DefaultsAreZeroed(t *testing.T) {
	opts := NewOptions()
	assert.Equal(t, uint32(0), opts.initialIP)
	assert.Equal(t, uint16(0), opts.initialSP)
	assert.Equal(t, uint16(0), opts.initialCS)
}

func TestNewOptions_AppliesEachOption(t *testing.T) {
	opts := NewOptions(
		WithInitialIP(256),
		WithInitialSP(0x1000),
		WithInitialCS(1),
		WithInitialDS(2),
		WithInitialES(3),
		WithInitialSS(4),
	)
	assert.Equal(t, uint32(256), opts.initialIP)
	assert.Equal(t, uint16(0x1000), opts.initialSP)
	assert.Equal(t, uint16(1), opts.initialCS)
	assert.Equal(t, uint16(2), opts.initialDS)
	assert.Equal(t, uint16(3), opts.initialES)
	assert.Equal(t, uint16(4), opts.initialSS)
}
