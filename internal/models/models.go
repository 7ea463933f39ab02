package models

// All lista os modelos na ordem do AutoMigrate (dependências primeiro).
func All() []any {
	return []any{
		&Plan{},
		&Professional{},
		&Service{},
		&WeeklyRule{},
		&ScheduleException{},
		&Client{},
		&Appointment{},
		&PixConfig{},
		&Style{},
		&AuditLog{},
	}
}
