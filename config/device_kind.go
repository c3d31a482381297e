package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

type DeviceKind string

func (d *DeviceKind) String() string {
	switch *d {
	case DEVICE_LOCAL:
		return "local"
	default:
		return "Unknown"
	}
}

const (
	// a device mounted into the local file system
	DEVICE_LOCAL DeviceKind = "local"
)

func ParseDeviceKind(deviceKindStr string) (DeviceKind, error) {
	d := DeviceKind(strings.ToLower(deviceKindStr))
	switch d {
	case DEVICE_LOCAL:
		return DEVICE_LOCAL, nil
	default:
		return "", fmt.Errorf("invalid device kind: %s", deviceKindStr)
	}
}

func (deviceKind *DeviceKind) UnmarshalJSON(data []byte) error {
	var maybeKind string
	err := json.Unmarshal(data, &maybeKind)
	if err != nil {
		return err
	}
	d, err := ParseDeviceKind(maybeKind)
	if err != nil {
		return fmt.Errorf("unknown device kind: %s. supported kinds are: %s", maybeKind, DEVICE_LOCAL)
	}
	*deviceKind = d
	return nil
}
