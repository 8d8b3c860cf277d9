package record

import "time"

// historyLimit caps how many records a single /history call returns.
const historyLimit = 50

type saveDTO struct {
	ImageURL string `json:"imageUrl"`
	Markdown string `json:"markdown"`
}

type recordResponse struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Markdown  string    `json:"markdown"`
	CreatedAt time.Time `json:"createdAt"`
}
