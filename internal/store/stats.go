package store

import (
	"time"

	"github.com/shahidarif12/AstraCommand/internal/model"
)

// Overview is the dashboard counter set.
type Overview struct {
	TotalDevices       int64 `json:"total_devices"`
	OnlineDevices      int64 `json:"online_devices"`
	OfflineDevices     int64 `json:"offline_devices"`
	TotalCommands      int64 `json:"total_commands"`
	PendingCommands    int64 `json:"pending_commands"`
	InProgressCommands int64 `json:"in_progress_commands"`
	CompleteCommands   int64 `json:"complete_commands"`
	TotalLogs          int64 `json:"total_logs"`
	LogsLast24h        int64 `json:"logs_last_24h"`
}

func (s *Store) GetOverview() (*Overview, error) {
	now := s.now()
	cutoff := now.Add(-model.OnlineWindow)

	var o Overview
	if err := s.db.Model(&model.Device{}).Count(&o.TotalDevices).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Device{}).Where("last_seen >= ?", cutoff).Count(&o.OnlineDevices).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Command{}).Count(&o.TotalCommands).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Command{}).Where("status = ?", model.CommandPending).Count(&o.PendingCommands).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Command{}).Where("status = ?", model.CommandInProgress).Count(&o.InProgressCommands).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Command{}).Where("status = ?", model.CommandComplete).Count(&o.CompleteCommands).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.LogEntry{}).Count(&o.TotalLogs).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.LogEntry{}).Where("timestamp >= ?", now.Add(-24*time.Hour)).Count(&o.LogsLast24h).Error; err != nil {
		return nil, err
	}

	o.OfflineDevices = o.TotalDevices - o.OnlineDevices
	return &o, nil
}
