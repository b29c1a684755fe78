package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearRangeUTC(t *testing.T) {
	MustInit("America/Los_Angeles")

	start, end := YearRangeUTC(2024)

	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), end)
}

func TestFileStamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "20240309-130507", FileStamp(ts))
}
