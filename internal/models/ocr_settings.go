package models

// OcrSettingsModel stores per-user OCR provider credentials and prompt
// overrides. One row per user, last-write-wins upserts.
//
// The stored APIKey is the real secret; masking happens only at the
// settings-read boundary.
type OcrSettingsModel struct {
	Base
	UserID         string `json:"userId"         gorm:"uniqueIndex;not null"`
	Provider       string `json:"apiProvider"`
	APIKey         string `json:"-"              gorm:"type:text"`
	Model          string `json:"model"`
	CustomEndpoint string `json:"customEndpoint"`
	UseOwnKeys     bool   `json:"useOwnKeys"`
	Prompt         string `json:"ocrPrompt"      gorm:"type:text"`
}

func (OcrSettingsModel) TableName() string { return "user_settings" }
