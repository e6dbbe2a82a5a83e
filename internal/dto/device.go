package dto

type DeviceRequest struct {
	IP string `json:"ip"`
	UA string `json:"ua"`
}

// AdmitResult is the outcome of one admission attempt. Allowed=false
// with a populated Current/Max pair means the device limit was hit;
// the client may retry after disconnecting another device.
type AdmitResult struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message"`
	Current int    `json:"current"`
	Max     int    `json:"max"`
}
