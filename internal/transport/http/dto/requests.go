package dto

import "time"

type RecordScanReq struct {
	ProductBarcode int64     `json:"productBarcode" validate:"required,gt=0"`
	Date           time.Time `json:"date" validate:"required"`
}

type ReportSymptomsReq struct {
	ScanID string `json:"scanId" validate:"required,uuid4"`
	// Optional; defaults to the server clock when absent.
	Date     *time.Time     `json:"date,omitempty"`
	Symptoms map[string]int `json:"symptoms" validate:"required,min=1"`
}
