package consultation

import (
	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/httperr"
)

type Tab string

const (
	TabPatient Tab = "patient"
	TabDoctor  Tab = "doctor"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabPatient, TabDoctor:
		return Tab(s), nil
	}
	return "", httperr.ErrBusiness(httperr.CodeUnknownTab)
}

// UIState holds the mode flags of one widget. The two dialog flags are
// independent; the widget keeps at most one of them set.
type UIState struct {
	ActiveTab          Tab    `json:"active_tab"`
	DoctorLoggedIn     bool   `json:"doctor_logged_in"`
	HistoryDialogOpen  bool   `json:"history_dialog_open"`
	VideoDialogOpen    bool   `json:"video_dialog_open"`
	SelectedPatientKey string `json:"selected_patient_key"`
	Submitted          bool   `json:"submitted"`
}

// Snapshot is a detached copy of everything a render needs.
type Snapshot struct {
	WidgetID     string               `json:"widget_id"`
	State        UIState              `json:"state"`
	Form         domain.BookingForm   `json:"form"`
	Appointments []domain.Appointment `json:"appointments"`

	// SelectedPatient is nil when no key is selected.
	SelectedPatient *domain.Appointment `json:"selected_patient,omitempty"`
	Closed          bool                `json:"closed"`
}
