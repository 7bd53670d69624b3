package device

type RegisterDeviceRequest struct {
	Account string `json:"account" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type DeviceResponse struct {
	ID      string `json:"id"`
	Account string `json:"account"`
	Name    string `json:"name"`
}
