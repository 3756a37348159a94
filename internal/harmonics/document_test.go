package harmonics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredSections(t *testing.T) {
	tests := []struct {
		stationType string
		reference   bool
		want        []string
	}{
		{StationTypeTide, true, []string{"name", "type", "position", "timezone", "levelUnits", "harmonics", "source"}},
		{StationTypeTide, false, []string{"name", "type", "position", "timezone", "levelUnits", "offsets", "source"}},
		{StationTypeCurrent, true, []string{"name", "type", "position", "timezone", "levelUnits", "harmonics", "flow", "source"}},
		{StationTypeCurrent, false, []string{"name", "type", "position", "timezone", "levelUnits", "offsets", "flow", "source"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RequiredSections(tt.stationType, tt.reference))
	}
}

func TestExternalID(t *testing.T) {
	rec := &Record{StationIDContext: "NOAA", StationID: "8452660"}
	assert.Equal(t, "NOAA:8452660", rec.ExternalID())

	assert.Empty(t, (&Record{StationID: "8452660"}).ExternalID())
	assert.Empty(t, (&Record{StationIDContext: "NOAA"}).ExternalID())
	assert.Empty(t, (&Record{}).ExternalID())
}
