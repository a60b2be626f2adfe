package models

import "time"

// OperationLog audit row written for every mutating API call
type OperationLog struct {
	ID            string      `json:"id" bson:"_id"`
	Method        string      `json:"method" bson:"method"`
	Path          string      `json:"path" bson:"path"`
	OperatorID    string      `json:"operatorId" bson:"operatorId"`
	OperatorName  string      `json:"operatorName" bson:"operatorName"`
	OperatorRoles []string    `json:"operatorRoles" bson:"operatorRoles"`
	RequestBody   interface{} `json:"requestBody" bson:"requestBody"`
	StatusCode    int         `json:"statusCode" bson:"statusCode"`
	Success       bool        `json:"success" bson:"success"`
	ErrorMessage  string      `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
	OperationTime time.Time   `json:"operationTime" bson:"operationTime"`
	ResponseTime  int64       `json:"responseTime" bson:"responseTime"` // ms
	IPAddress     string      `json:"ipAddress" bson:"ipAddress"`
	UserAgent     string      `json:"userAgent" bson:"userAgent"`
}

func (l OperationLog) GetID() string { return l.ID }
