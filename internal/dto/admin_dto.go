package dto

// ResetResult reports the document state after a factory reset.
type ResetResult struct {
	Students   int    `json:"students"`
	AppVersion string `json:"appVersion"`
}
