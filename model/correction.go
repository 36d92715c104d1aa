package model

import "github.com/google/uuid"

type CorrectionStatus string

const (
	CorrectionPending  CorrectionStatus = "pending"
	CorrectionApproved CorrectionStatus = "approved"
	CorrectionRejected CorrectionStatus = "rejected"
)

// CorrectionRequest is the stable data shape for clock-time correction
// requests. The approval workflow itself lives outside this service.
type CorrectionRequest struct {
	ID                string           `json:"id"`
	UserID            string           `json:"userId"`
	RecordID          string           `json:"recordId"`
	Date              string           `json:"date"`
	CorrectedClockIn  *string          `json:"correctedClockIn"`
	CorrectedClockOut *string          `json:"correctedClockOut"`
	Reason            string           `json:"reason"`
	Status            CorrectionStatus `json:"status"`
	RequestedAt       string           `json:"requestedAt"`
	ProcessedAt       *string          `json:"processedAt"`
	ProcessedBy       *string          `json:"processedBy"`
}

func NewCorrectionRequest(userID, recordID, date, reason, requestedAt string) *CorrectionRequest {
	return &CorrectionRequest{
		ID:          uuid.NewString(),
		UserID:      userID,
		RecordID:    recordID,
		Date:        date,
		Reason:      reason,
		Status:      CorrectionPending,
		RequestedAt: requestedAt,
	}
}
