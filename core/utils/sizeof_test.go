package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gamedata-manager/core/utils"
)

func TestEstimateSizeScalars(t *testing.T) {
	assert.Equal(t, 8, utils.EstimateSize(42))
	assert.Equal(t, 8, utils.EstimateSize(uint32(7)))
	assert.Equal(t, 8, utils.EstimateSize(3.14))
	assert.Equal(t, 1, utils.EstimateSize(true))
	assert.Equal(t, 0, utils.EstimateSize(nil))
}

func TestEstimateSizeStrings(t *testing.T) {
	assert.Equal(t, 0, utils.EstimateSize(""))
	assert.Equal(t, 10, utils.EstimateSize("hello"), "2 bytes per character")
}

func TestEstimateSizeComposites(t *testing.T) {
	assert.Equal(t, 24+16, utils.EstimateSize(make([]byte, 16)))
	assert.Equal(t, 24+3*8, utils.EstimateSize([]int{1, 2, 3}))

	m := map[string]int{"ab": 1}
	assert.Equal(t, 48+4+8, utils.EstimateSize(m))

	type record struct {
		ID   uint32
		Name string
	}
	assert.Equal(t, 16+8+8, utils.EstimateSize(record{ID: 1, Name: "spell"}),
		"struct overhead plus recursive field estimates")
}

func TestEstimateSizeNeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, utils.EstimateSize(struct{}{}), 0)
	assert.GreaterOrEqual(t, utils.EstimateSize([]any{nil, nil}), 0)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", utils.FormatBytes(512))
	assert.Equal(t, "1.0 KB", utils.FormatBytes(1024))
	assert.Equal(t, "1.5 MB", utils.FormatBytes(3*512*1024))
	assert.Equal(t, "2.0 GB", utils.FormatBytes(2*1024*1024*1024))
}
