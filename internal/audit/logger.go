package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/teleconsult/internal/models"
	"github.com/BruksfildServices01/teleconsult/pkg/logging"
)

// Logger stores events in the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		WidgetID:  ev.WidgetID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityKey: ev.EntityKey,
		Metadata:  metaJSON,
	}

	return l.db.Create(&row).Error
}

// LogSink writes events to the structured log when no database is configured.
type LogSink struct {
	logger *logging.Logger
}

func NewLogSink(logger *logging.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Log(ev Event) error {
	s.logger.Info("audit",
		"widget_id", ev.WidgetID,
		"action", ev.Action,
		"entity", ev.Entity,
		"entity_key", ev.EntityKey,
		"metadata", ev.Metadata,
	)
	return nil
}
