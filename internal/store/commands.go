package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shahidarif12/AstraCommand/internal/model"
)

// EnqueueCommand appends a pending command to the device's queue.
func (s *Store) EnqueueCommand(deviceID, commandText string) (*model.Command, error) {
	exists, err := s.deviceExists(s.db, deviceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDeviceNotFound
	}

	cmd := &model.Command{
		DeviceID: deviceID,
		Command:  commandText,
		IssuedAt: s.now(),
		Status:   model.CommandPending,
		Output:   "",
	}
	if err := s.db.Create(cmd).Error; err != nil {
		return nil, err
	}
	return cmd, nil
}

// FetchNextCommand returns the oldest pending command for the device and
// marks it in_progress, or nil when the queue is empty. The row is claimed
// with a conditional update so two concurrent pollers can never both
// receive the same command: the loser of the race sees zero rows affected
// and moves on to the next pending command.
func (s *Store) FetchNextCommand(deviceID string) (*model.Command, error) {
	for {
		var cmd model.Command
		err := s.db.
			Where("device_id = ? AND status = ?", deviceID, model.CommandPending).
			Order("issued_at asc, id asc").
			First(&cmd).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		res := s.db.Model(&model.Command{}).
			Where("id = ? AND status = ?", cmd.ID, model.CommandPending).
			Update("status", model.CommandInProgress)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			cmd.Status = model.CommandInProgress
			return &cmd, nil
		}
	}
}

// CompleteCommand stores the output and marks the command complete, scoped
// by both command id and device id. Zero matched rows is a deliberate
// silent no-op: a device completing another device's command must learn
// nothing from the attempt.
func (s *Store) CompleteCommand(commandID uint, deviceID, output string) error {
	return s.db.Model(&model.Command{}).
		Where("id = ? AND device_id = ?", commandID, deviceID).
		Updates(map[string]any{
			"status": model.CommandComplete,
			"output": output,
		}).Error
}

func (s *Store) GetCommand(id uint) (*model.Command, error) {
	var cmd model.Command
	if err := s.db.First(&cmd, id).Error; err != nil {
		return nil, err
	}
	return &cmd, nil
}

type CommandFilter struct {
	DeviceID string
	Status   string
	Limit    int
}

// CommandHistory lists commands newest-first, bounded by queryRowCap.
func (s *Store) CommandHistory(f CommandFilter) ([]model.Command, error) {
	limit := f.Limit
	if limit <= 0 || limit > queryRowCap {
		limit = queryRowCap
	}
	q := s.db.Model(&model.Command{}).Order("issued_at desc, id desc").Limit(limit)
	if f.DeviceID != "" {
		q = q.Where("device_id = ?", f.DeviceID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var commands []model.Command
	if err := q.Find(&commands).Error; err != nil {
		return nil, err
	}
	return commands, nil
}
