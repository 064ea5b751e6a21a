package appointment

// SeedAppointments returns fresh copies of the sample records every data
// source starts with.
func SeedAppointments() []Appointment {
	return []Appointment{
		{
			Name:     "John Doe",
			Email:    "john@example.com",
			Symptoms: "Blurred vision",
			Time:     "2025-08-01T10:30",
			History: []string{
				"05 Jan 2025 - Dry eye symptoms - Eye drops prescribed",
				"23 Feb 2025 - Follow-up - Condition improving",
			},
		},
		{
			Name:     "Jane Smith",
			Email:    "jane@example.com",
			Symptoms: "Itching eyes",
			Time:     "2025-08-01T11:00",
			History: []string{
				"10 Mar 2025 - Allergy symptoms - Advised antihistamines",
			},
		},
	}
}
