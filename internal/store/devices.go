package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shahidarif12/AstraCommand/internal/model"
	"github.com/shahidarif12/AstraCommand/internal/token"
)

// RegisterDevice creates a device, or treats a repeated name as a
// re-registration: metadata and last_seen are refreshed and a fresh auth
// token replaces the old one, invalidating it. The returned bool reports
// whether an existing device was updated.
func (s *Store) RegisterDevice(name, osName, ipAddress string) (*model.Device, bool, error) {
	authToken, err := token.NewAuthToken()
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	var dev model.Device
	updated := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).First(&dev).Error
		switch {
		case err == nil:
			updated = true
			dev.OS = osName
			dev.IPAddress = ipAddress
			dev.AuthToken = authToken
			dev.LastSeen = now
			return tx.Model(&model.Device{}).Where("device_id = ?", dev.DeviceID).
				Updates(map[string]any{
					"os":         osName,
					"ip_address": ipAddress,
					"auth_token": authToken,
					"last_seen":  now,
				}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			dev = model.Device{
				DeviceID:  token.NewDeviceID(),
				Name:      name,
				OS:        osName,
				IPAddress: ipAddress,
				AuthToken: authToken,
				LastSeen:  now,
				Status:    model.DeviceActive,
			}
			return tx.Create(&dev).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	return &dev, updated, nil
}

// VerifyDeviceAuth reports whether the exact (deviceID, authToken) pair
// exists.
func (s *Store) VerifyDeviceAuth(deviceID, authToken string) (bool, error) {
	var count int64
	err := s.db.Model(&model.Device{}).
		Where("device_id = ? AND auth_token = ?", deviceID, authToken).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// TouchDevice moves last_seen to now. A missing device is not an error;
// callers that care inspect the returned bool.
func (s *Store) TouchDevice(deviceID string) (bool, error) {
	res := s.db.Model(&model.Device{}).
		Where("device_id = ?", deviceID).
		Update("last_seen", s.now())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) GetDevice(deviceID string) (*model.Device, error) {
	var dev model.Device
	err := s.db.Where("device_id = ?", deviceID).First(&dev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dev, nil
}

func (s *Store) deviceExists(tx *gorm.DB, deviceID string) (bool, error) {
	var count int64
	err := tx.Model(&model.Device{}).Where("device_id = ?", deviceID).Count(&count).Error
	return count > 0, err
}

type DeviceFilter struct {
	Search string // name substring
	OS     string
	Online *bool
}

func (s *Store) ListDevices(f DeviceFilter) ([]model.Device, error) {
	q := s.db.Model(&model.Device{}).Order("last_seen desc").Limit(queryRowCap)
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.OS != "" {
		q = q.Where("os = ?", f.OS)
	}
	if f.Online != nil {
		cutoff := s.now().Add(-model.OnlineWindow)
		if *f.Online {
			q = q.Where("last_seen >= ?", cutoff)
		} else {
			q = q.Where("last_seen < ?", cutoff)
		}
	}
	var devices []model.Device
	if err := q.Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// DeleteDevice removes the device together with its commands and logs in a
// single transaction, so no row can outlive its device.
func (s *Store) DeleteDevice(deviceID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", deviceID).Delete(&model.Command{}).Error; err != nil {
			return err
		}
		if err := tx.Where("device_id = ?", deviceID).Delete(&model.LogEntry{}).Error; err != nil {
			return err
		}
		res := tx.Where("device_id = ?", deviceID).Delete(&model.Device{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDeviceNotFound
		}
		return nil
	})
}
