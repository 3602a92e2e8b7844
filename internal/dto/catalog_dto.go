package dto

// LotResponse mirrors the wire shape the original viewer clients consume:
// spreadsheet-style keys for the descriptive fields, snake_case for the
// image URL.
type LotResponse struct {
	LotNumber   string  `json:"LotNumber"`
	StudentName string  `json:"StudentName"`
	Department  string  `json:"Department"`
	ImageURL    *string `json:"image_url"`
}

type ImportResultResponse struct {
	Message string `json:"message"`
	Rows    int    `json:"rows"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
}

type UploadImageResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
