package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomValidators(t *testing.T) {
	v := NewValidator()
	day := 0

	ok := CreateSlotRequest{SubjectID: "AI", DayOfWeek: &day, StartTime: "08:00", EndTime: "09:00"}
	assert.NoError(t, v.Struct(ok))

	bad := ok
	bad.StartTime = "8:00"
	assert.Error(t, v.Struct(bad))

	missingDay := ok
	missingDay.DayOfWeek = nil
	assert.Error(t, v.Struct(missingDay))

	assert.NoError(t, v.Struct(CreateHolidayRequest{Date: "2026-03-20"}))
	assert.Error(t, v.Struct(CreateHolidayRequest{Date: "2026-02-30"}))

	pol := "sometimes"
	assert.Error(t, v.Struct(UpdateSettingsRequest{UnmarkedPolicy: &pol}))
}

func TestCreateOverrideRequest_ConditionalFields(t *testing.T) {
	v := NewValidator()
	dur := 60

	assert.NoError(t, v.Struct(CreateOverrideRequest{Date: "2026-01-05", Type: "cancelled", OriginalSlotID: "AI-0-0800"}))
	assert.Error(t, v.Struct(CreateOverrideRequest{Date: "2026-01-05", Type: "cancelled"}))
	assert.NoError(t, v.Struct(CreateOverrideRequest{Date: "2026-01-05", Type: "added", SubjectID: "AI", StartTime: "10:00", DurationMinutes: &dur}))
	assert.Error(t, v.Struct(CreateOverrideRequest{Date: "2026-01-05", Type: "added", SubjectID: "AI", DurationMinutes: &dur}))
	assert.Error(t, v.Struct(CreateOverrideRequest{Date: "2026-01-05", Type: "moved", OriginalSlotID: "x"}))
}
