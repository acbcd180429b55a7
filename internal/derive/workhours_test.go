package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summerplanapp/summerplan-server/internal/domain"
)

func workProfile() *domain.Profile {
	return &domain.Profile{OwnerID: "acc-1", WorkStart: "08:00", WorkEnd: "17:30"}
}

func TestCampWorkFit_ExtendedCareCovers(t *testing.T) {
	camp := &domain.Camp{
		ID:           "cmp-1",
		Hours:        "9am-3pm",
		ExtendedCare: "7:30am-6pm",
	}

	fit := CampWorkFit(camp, workProfile())

	require.NotNil(t, fit.Covers)
	assert.True(t, *fit.Covers)
	assert.True(t, fit.NeedsExtendedCare)
	assert.Equal(t, 7*60+30, fit.EffectiveDropOff)
	assert.Equal(t, 18*60, fit.EffectivePickUp)
}

func TestCampWorkFit_BaseHoursCover(t *testing.T) {
	camp := &domain.Camp{ID: "cmp-1", Hours: "7am-6pm"}

	fit := CampWorkFit(camp, workProfile())

	require.NotNil(t, fit.Covers)
	assert.True(t, *fit.Covers)
	assert.False(t, fit.NeedsExtendedCare)
	assert.Equal(t, 7*60, fit.EffectiveDropOff)
}

func TestCampWorkFit_NoCoverage(t *testing.T) {
	camp := &domain.Camp{ID: "cmp-1", Hours: "9am-3pm"}

	fit := CampWorkFit(camp, workProfile())

	require.NotNil(t, fit.Covers)
	assert.False(t, *fit.Covers)
	assert.False(t, fit.NeedsExtendedCare)
}

func TestCampWorkFit_DropOffPickUpFieldsPreferred(t *testing.T) {
	camp := &domain.Camp{
		ID:      "cmp-1",
		Hours:   "9am-3pm", // stale display string
		DropOff: "7:45am",
		PickUp:  "6pm",
	}

	fit := CampWorkFit(camp, workProfile())

	require.NotNil(t, fit.Covers)
	assert.True(t, *fit.Covers)
	assert.Equal(t, 7*60+45, fit.EffectiveDropOff)
}

func TestCampWorkFit_UnparseableFailsOpen(t *testing.T) {
	camp := &domain.Camp{ID: "cmp-1", Hours: "call for hours"}

	fit := CampWorkFit(camp, workProfile())

	assert.Nil(t, fit.Covers, "unknown hours must not report false")
	assert.Equal(t, -1, fit.EffectiveDropOff)
	assert.Equal(t, -1, fit.EffectivePickUp)
}

func TestCampWorkFit_NoWorkWindowFailsOpen(t *testing.T) {
	camp := &domain.Camp{ID: "cmp-1", Hours: "7am-6pm"}

	fit := CampWorkFit(camp, nil)
	assert.Nil(t, fit.Covers)

	fit = CampWorkFit(camp, &domain.Profile{WorkStart: "whenever"})
	assert.Nil(t, fit.Covers)
}
