package view

import (
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/domain/consultation"
	"github.com/BruksfildServices01/teleconsult/internal/timezone"
)

const (
	Title              = "Dr. Madhya's Eye Care Teleconsultation"
	BookingHeading     = "Book Your Online Consultation"
	ConfirmationText   = "Thank you! Your consultation request has been received."
	LoginHeading       = "Doctor Login"
	DashboardHeading   = "Consultation Dashboard"
	VideoTitle         = "Video Consultation"
	VideoPlaceholder   = "[Simulated Video Call Interface]"
	HistoryTitle       = "Consultation History"
	NoHistoryText      = "No previous history found."
	RequestButtonLabel = "Request Consultation"
	LoginButtonLabel   = "Login"
)

type Page struct {
	WidgetID  string
	Title     string
	Tabs      []TabItem
	ActiveTab string
	Patient   PatientCard
	Doctor    DoctorCard
	Video     VideoDialog
	History   HistoryDialog
	Error     string
}

type TabItem struct {
	Value  string
	Label  string
	Active bool
}

type Field struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Rows     int
	Required bool
}

type PatientCard struct {
	Heading      string
	Confirmation string
	Fields       []Field
	SubmitLabel  string
}

// ShowForm reports whether the booking form replaces the banner.
func (p PatientCard) ShowForm() bool { return p.Confirmation == "" }

type DashboardRow struct {
	Key         string
	Name        string
	DisplayTime string
}

type DoctorCard struct {
	LoggedIn    bool
	Heading     string
	LoginFields []Field
	LoginLabel  string
	Rows        []DashboardRow
}

type VideoDialog struct {
	Open        bool
	Title       string
	Text        string
	Placeholder string
}

type HistoryDialog struct {
	Open    bool
	Title   string
	Intro   string
	Entries []string
}

// Render maps a widget snapshot to the page tree. It has no side effects.
func Render(snap consultation.Snapshot, loc *time.Location) Page {
	if loc == nil {
		loc = timezone.Location("")
	}

	page := Page{
		WidgetID:  snap.WidgetID,
		Title:     Title,
		ActiveTab: string(snap.State.ActiveTab),
		Tabs: []TabItem{
			{Value: string(consultation.TabPatient), Label: "Patient", Active: snap.State.ActiveTab == consultation.TabPatient},
			{Value: string(consultation.TabDoctor), Label: "Doctor", Active: snap.State.ActiveTab == consultation.TabDoctor},
		},
		Patient: renderPatient(snap),
		Doctor:  renderDoctor(snap, loc),
	}

	name := ""
	var history []string
	if snap.SelectedPatient != nil {
		name = snap.SelectedPatient.Name
		history = snap.SelectedPatient.History
	}

	page.Video = VideoDialog{
		Open:        snap.State.VideoDialogOpen,
		Title:       VideoTitle,
		Text:        fmt.Sprintf("Initiating video call with %s...", name),
		Placeholder: VideoPlaceholder,
	}

	entries := append([]string{}, history...)
	if len(entries) == 0 {
		entries = []string{NoHistoryText}
	}
	page.History = HistoryDialog{
		Open:    snap.State.HistoryDialogOpen,
		Title:   HistoryTitle,
		Intro:   fmt.Sprintf("History for %s:", name),
		Entries: entries,
	}

	return page
}

func renderPatient(snap consultation.Snapshot) PatientCard {
	card := PatientCard{
		Heading:     BookingHeading,
		SubmitLabel: RequestButtonLabel,
	}
	if snap.State.Submitted {
		card.Confirmation = ConfirmationText
		return card
	}

	card.Fields = []Field{
		{Name: domain.FieldName, Label: "Name", Type: "text", Value: snap.Form.Name, Required: true},
		{Name: domain.FieldEmail, Label: "Email", Type: "email", Value: snap.Form.Email, Required: true},
		{Name: domain.FieldSymptoms, Label: "Describe Your Eye Problem", Type: "textarea", Value: snap.Form.Symptoms, Rows: 4, Required: true},
		{Name: domain.FieldTime, Label: "Preferred Date & Time", Type: "datetime-local", Value: snap.Form.Time, Required: true},
	}
	return card
}

func renderDoctor(snap consultation.Snapshot, loc *time.Location) DoctorCard {
	if !snap.State.DoctorLoggedIn {
		return DoctorCard{
			Heading: LoginHeading,
			LoginFields: []Field{
				{Name: "username", Label: "Username", Type: "text", Required: true},
				{Name: "password", Label: "Password", Type: "password", Required: true},
			},
			LoginLabel: LoginButtonLabel,
		}
	}

	rows := make([]DashboardRow, 0, len(snap.Appointments))
	for _, ap := range snap.Appointments {
		rows = append(rows, DashboardRow{
			Key:         ap.Key(),
			Name:        ap.Name,
			DisplayTime: timezone.Display(ap.StartsAt(loc)),
		})
	}
	return DoctorCard{
		LoggedIn: true,
		Heading:  DashboardHeading,
		Rows:     rows,
	}
}
