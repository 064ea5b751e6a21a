package appointment

import (
	"strings"
	"time"
)

// Appointment is a booked consultation request together with the patient's
// prior visit history.
type Appointment struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Symptoms string   `json:"symptoms"`
	Time     string   `json:"time"`
	History  []string `json:"history"`
}

// Key identifies the patient. Email is the only key used anywhere.
func (a Appointment) Key() string {
	return NormalizeKey(a.Email)
}

// StartsAt parses Time; the zero time is returned for malformed values.
func (a Appointment) StartsAt(loc *time.Location) time.Time {
	t, err := ParseTime(a.Time, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Clone returns a copy that shares no slice memory with a.
func (a Appointment) Clone() Appointment {
	out := a
	out.History = append([]string{}, a.History...)
	return out
}

// FromForm builds a new Appointment. New patients never carry history.
func FromForm(f BookingForm) Appointment {
	return Appointment{
		Name:     strings.TrimSpace(f.Name),
		Email:    NormalizeKey(f.Email),
		Symptoms: strings.TrimSpace(f.Symptoms),
		Time:     strings.TrimSpace(f.Time),
		History:  []string{},
	}
}

func NormalizeKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
