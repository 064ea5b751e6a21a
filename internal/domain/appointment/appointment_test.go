package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

func validForm() BookingForm {
	return BookingForm{
		Name:     "Asha Rao",
		Email:    "Asha@Example.com ",
		Symptoms: "Red eyes",
		Time:     "2025-09-10T09:15",
	}
}

func TestFromFormHasEmptyHistory(t *testing.T) {
	ap := FromForm(validForm())

	assert.Equal(t, "asha@example.com", ap.Email)
	assert.Equal(t, "asha@example.com", ap.Key())
	require.NotNil(t, ap.History)
	assert.Empty(t, ap.History)
}

func TestCloneDoesNotShareHistory(t *testing.T) {
	orig := SeedAppointments()[0]
	cp := orig.Clone()
	cp.History[0] = "changed"

	assert.Equal(t, "05 Jan 2025 - Dry eye symptoms - Eye drops prescribed", orig.History[0])
}

func TestBookingFormSetAndReset(t *testing.T) {
	var f BookingForm
	require.NoError(t, f.Set(FieldName, "A"))
	require.NoError(t, f.Set(FieldEmail, "a@b.co"))
	require.NoError(t, f.Set(FieldSymptoms, "s"))
	require.NoError(t, f.Set(FieldTime, "2025-01-01T10:00"))
	assert.False(t, f.IsEmpty())

	err := f.Set("phone", "123")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnknownField))

	f.Reset()
	assert.True(t, f.IsEmpty())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BookingForm)
		code   string
	}{
		{"valid", func(*BookingForm) {}, ""},
		{"missing name", func(f *BookingForm) { f.Name = "  " }, httperr.CodeMissingField},
		{"missing symptoms", func(f *BookingForm) { f.Symptoms = "" }, httperr.CodeMissingField},
		{"missing time", func(f *BookingForm) { f.Time = "" }, httperr.CodeMissingField},
		{"bad email", func(f *BookingForm) { f.Email = "not-an-email" }, httperr.CodeInvalidEmail},
		{"bad time", func(f *BookingForm) { f.Time = "tomorrow morning" }, httperr.CodeInvalidTime},
		{"seconds accepted", func(f *BookingForm) { f.Time = "2025-09-10T09:15:30" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			err := Validate(f)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}
}

func TestParseTimeUsesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	got, err := ParseTime("2025-08-01T10:30", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 10, got.Hour())

	ap := Appointment{Time: "garbage"}
	assert.True(t, ap.StartsAt(loc).IsZero())
}

func TestSeedAppointments(t *testing.T) {
	seed := SeedAppointments()
	require.Len(t, seed, 2)
	assert.Equal(t, "John Doe", seed[0].Name)
	assert.Len(t, seed[0].History, 2)
	assert.Equal(t, []string{"10 Mar 2025 - Allergy symptoms - Advised antihistamines"}, seed[1].History)

	seed[1].History[0] = "mutated"
	assert.NotEqual(t, "mutated", SeedAppointments()[1].History[0])
}
