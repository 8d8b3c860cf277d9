package models

// OcrRecordModel is a persisted OCR extraction. Records are immutable once
// created and owned exclusively by the creating user.
type OcrRecordModel struct {
	Base
	UserID   string `json:"userId"   gorm:"index;not null"`
	ImageURL string `json:"imageUrl" gorm:"type:text;not null"`
	Markdown string `json:"markdown" gorm:"type:longtext;not null"`
}

func (OcrRecordModel) TableName() string { return "ocr_texts" }
