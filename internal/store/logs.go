package store

import (
	"time"

	"github.com/shahidarif12/AstraCommand/internal/model"
)

// AppendLog records a device-reported event. When commandID refers to one
// of the device's own commands, that command is completed with the log
// content as its output first; the completion is best-effort and the log
// is stored either way.
func (s *Store) AppendLog(deviceID, logType, content string, commandID uint) (*model.LogEntry, error) {
	exists, err := s.deviceExists(s.db, deviceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDeviceNotFound
	}

	if commandID > 0 {
		_ = s.CompleteCommand(commandID, deviceID, content)
	}

	entry := &model.LogEntry{
		DeviceID:  deviceID,
		Type:      logType,
		Content:   content,
		Timestamp: s.now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

type LogFilter struct {
	DeviceID string
	Type     string
	Contains string // content substring
	Since    time.Time
	Until    time.Time
	Limit    int
}

// QueryLogs returns matching logs newest-first, never more than
// queryRowCap rows.
func (s *Store) QueryLogs(f LogFilter) ([]model.LogEntry, error) {
	limit := f.Limit
	if limit <= 0 || limit > queryRowCap {
		limit = queryRowCap
	}
	q := s.db.Model(&model.LogEntry{}).Order("timestamp desc, id desc").Limit(limit)
	if f.DeviceID != "" {
		q = q.Where("device_id = ?", f.DeviceID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Contains != "" {
		q = q.Where("content LIKE ?", "%"+f.Contains+"%")
	}
	if !f.Since.IsZero() {
		q = q.Where("timestamp >= ?", f.Since)
	}
	if !f.Until.IsZero() {
		q = q.Where("timestamp <= ?", f.Until)
	}
	var logs []model.LogEntry
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) DeleteLog(id uint) error {
	res := s.db.Delete(&model.LogEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLogNotFound
	}
	return nil
}
