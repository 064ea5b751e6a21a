package dto

import (
	"time"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/timezone"
)

type AppointmentListDTO struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Symptoms     string `json:"symptoms"`
	Time         string `json:"time"`
	DisplayTime  string `json:"display_time"`
	HistoryCount int    `json:"history_count"`
}

type PatientDTO struct {
	AppointmentListDTO
	History []string `json:"history"`
}

func FromAppointment(ap domain.Appointment, loc *time.Location) AppointmentListDTO {
	return AppointmentListDTO{
		Key:          ap.Key(),
		Name:         ap.Name,
		Email:        ap.Email,
		Symptoms:     ap.Symptoms,
		Time:         ap.Time,
		DisplayTime:  timezone.Display(ap.StartsAt(loc)),
		HistoryCount: len(ap.History),
	}
}

func PatientFromAppointment(ap domain.Appointment, loc *time.Location) PatientDTO {
	history := append([]string{}, ap.History...)
	return PatientDTO{
		AppointmentListDTO: FromAppointment(ap, loc),
		History:            history,
	}
}
