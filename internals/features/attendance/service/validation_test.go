package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "attendku_backend/internals/features/attendance/model"
)

func TestNormalizeSubjectID(t *testing.T) {
	assert.Equal(t, "ATSA", NormalizeSubjectID("  atsa "))
}

func TestDurationBetween(t *testing.T) {
	d, err := DurationBetween("09:00", "10:30")
	assert.NoError(t, err)
	assert.Equal(t, 90, d)

	_, err = DurationBetween("10:00", "10:00")
	assert.ErrorIs(t, err, ErrEndBeforeStart)
	_, err = DurationBetween("9:00", "10:00")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		name string
		slot m.TimetableSlot
		want error
	}{
		{"ok", slot("A", "X", 0, "08:00", 60), nil},
		{"bad day", slot("A", "X", 7, "08:00", 60), ErrInvalidDayOfWeek},
		{"negative day", slot("A", "X", -1, "08:00", 60), ErrInvalidDayOfWeek},
		{"bad time", slot("A", "X", 0, "25:00", 60), ErrInvalidTime},
		{"zero duration", slot("A", "X", 0, "08:00", 0), ErrEndBeforeStart},
		{"past midnight", slot("A", "X", 0, "23:30", 60), ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlot(tt.slot)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFindSlotConflict(t *testing.T) {
	existing := []m.TimetableSlot{
		slot("A", "X", 0, "08:00", 60),
		slot("B", "Y", 1, "08:00", 60),
	}

	c, ok := FindSlotConflict(slot("N", "Z", 0, "08:30", 60), existing)
	assert.True(t, ok)
	assert.Equal(t, "A", c.ID)

	_, ok = FindSlotConflict(slot("N", "Z", 0, "09:00", 60), existing)
	assert.False(t, ok, "touching intervals do not overlap")

	_, ok = FindSlotConflict(slot("A", "X", 0, "08:15", 60), existing)
	assert.False(t, ok, "a slot never conflicts with itself")
}

func TestValidateOverride(t *testing.T) {
	assert.NoError(t, ValidateOverride(cancel("c", mon1, "A")))
	assert.NoError(t, ValidateOverride(added("a", mon1, "X", "10:00", 30)))

	assert.ErrorIs(t, ValidateOverride(cancel("c", "2026-02-31", "A")), ErrInvalidDate)
	assert.ErrorIs(t, ValidateOverride(cancel("c", mon1, "")), ErrInvalidInput)
	assert.ErrorIs(t, ValidateOverride(added("a", mon1, "X", "10:00", 0)), ErrEndBeforeStart)
	assert.ErrorIs(t, ValidateOverride(m.SlotOverride{ID: "x", Date: mon1, Type: "moved"}), ErrInvalidInput)
}
