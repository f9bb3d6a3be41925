package handler

import (
	"time"

	"github.com/fieldsight/device-monitor/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
}

type deviceView struct {
	DeviceID    string         `json:"deviceId"`
	Data        domain.Payload `json:"data"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

type deviceResponse struct {
	Device    deviceView `json:"device"`
	Timestamp int64      `json:"timestamp"`
}

type deviceListResponse struct {
	Devices   []deviceView `json:"devices"`
	Count     int          `json:"count"`
	Timestamp int64        `json:"timestamp"`
}

type identityListResponse struct {
	Users     []identityView `json:"users"`
	Count     int            `json:"count"`
	Timestamp int64          `json:"timestamp"`
}

func deviceToView(r *domain.DeviceRecord) deviceView {
	return deviceView{
		DeviceID:    r.DeviceID,
		Data:        r.Payload,
		LastUpdated: r.LastUpdated,
	}
}
