package store

import (
	"testing"
	"time"

	"github.com/shahidarif12/AstraCommand/internal/model"
)

func TestGetOverview(t *testing.T) {
	s, clock := newTestStore(t)

	stale, _, err := s.RegisterDevice("stale", "Android", "10.0.0.5")
	if err != nil {
		t.Fatalf("RegisterDevice: %v", err)
	}
	if _, err := s.AppendLog(stale.DeviceID, "gps", "old", 0); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}

	clock.Advance(model.OnlineWindow + 25*time.Hour)
	fresh, _, err := s.RegisterDevice("fresh", "iOS", "10.0.0.6")
	if err != nil {
		t.Fatalf("RegisterDevice: %v", err)
	}
	cmd, err := s.EnqueueCommand(fresh.DeviceID, "getinfo")
	if err != nil {
		t.Fatalf("EnqueueCommand: %v", err)
	}
	if _, err := s.EnqueueCommand(fresh.DeviceID, "getsms"); err != nil {
		t.Fatalf("EnqueueCommand: %v", err)
	}
	if _, err := s.FetchNextCommand(fresh.DeviceID); err != nil {
		t.Fatalf("FetchNextCommand: %v", err)
	}
	if _, err := s.AppendLog(fresh.DeviceID, "text", "battery=80%", cmd.ID); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}

	o, err := s.GetOverview()
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if o.TotalDevices != 2 || o.OnlineDevices != 1 || o.OfflineDevices != 1 {
		t.Fatalf("unexpected device counts: %+v", o)
	}
	if o.TotalCommands != 2 || o.PendingCommands != 1 || o.CompleteCommands != 1 || o.InProgressCommands != 0 {
		t.Fatalf("unexpected command counts: %+v", o)
	}
	if o.TotalLogs != 2 || o.LogsLast24h != 1 {
		t.Fatalf("unexpected log counts: %+v", o)
	}
}
