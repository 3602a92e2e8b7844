package dto

// Boundary messages are part of the command contract: navigation at the
// edge of the catalog is a normal result, not an error.
const (
	MessageAdvanced    = "Advanced to next lot"
	MessageMovedBack   = "Moved to previous lot"
	MessageEndOfLots   = "End of lots"
	MessageStartOfLots = "Start of lots"
)

type NavigationResponse struct {
	Moved   bool   `json:"moved"`
	Message string `json:"message"`
}

type PacingResponse struct {
	CurrentDuration int    `json:"current_duration"`
	AverageDuration *int   `json:"average_duration"`
	Suggestion      string `json:"suggestion"`
}

// SnapshotResponse is the complete live-state payload: pushed to every
// viewer on mutation, and served as-is by the one-shot state query.
type SnapshotResponse struct {
	Type    string          `json:"type"`
	Lot     *LotResponse    `json:"lot"`
	Bidders []BuyerResponse `json:"bidders"`
	Pacing  *PacingResponse `json:"pacing"`
}

type AddBidResponse struct {
	Message    string `json:"message"`
	Identifier int    `json:"identifier"`
	Duplicate  bool   `json:"duplicate"`
}

type UndoBidResponse struct {
	Message    string `json:"message"`
	Identifier int    `json:"identifier"`
	LotNumber  string `json:"lot_number"`
}

type MergeBuyersResponse struct {
	Message    string `json:"message"`
	Reassigned int    `json:"reassigned"`
	Dropped    int    `json:"dropped"`
}
