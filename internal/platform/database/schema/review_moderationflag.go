// Copyright (c) 2026 Leafmark. All rights reserved.

package schema

// ReviewModerationFlagTable represents the 'review.moderationflag' table
type ReviewModerationFlagTable struct {
	Table      string
	ID         string
	ReviewID   string
	ReporterID string
	Reason     string
	Status     string
	CreatedAt  string
}

// ReviewModerationFlag is the schema definition for review.moderationflag
var ReviewModerationFlag = ReviewModerationFlagTable{
	Table:      "review.moderationflag",
	ID:         "id",
	ReviewID:   "reviewid",
	ReporterID: "reporterid",
	Reason:     "reason",
	Status:     "status",
	CreatedAt:  "createdat",
}
