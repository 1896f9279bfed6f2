package model

import "time"

// APICallAudit is an append-only record of one outbound platform API call.
type APICallAudit struct {
	Platform   string    `json:"platform" bson:"platform"`
	Endpoint   string    `json:"endpoint" bson:"endpoint"`
	StatusCode int       `json:"status_code" bson:"status_code"`
	Response   string    `json:"response" bson:"response"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
