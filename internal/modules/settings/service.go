package settings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/snapocr/core/internal/models"
	"github.com/snapocr/core/internal/modules/ocr"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the user's stored settings, or nil when none exist.
func (s *Service) Get(userID string) (*models.OcrSettingsModel, error) {
	var stored models.OcrSettingsModel
	err := s.db.Where("user_id = ?", userID).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Upsert creates or updates the user's settings row. Only the mask sentinel
// preserves the stored key; any other value, empty included, replaces it. A
// round-tripped masked response therefore never clobbers the real credential,
// while clients can still clear a key by writing "".
func (s *Service) Upsert(userID string, dto settingsDTO) (*models.OcrSettingsModel, error) {
	stored, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if stored == nil {
		stored = &models.OcrSettingsModel{UserID: userID}
	}
	if dto.APIKey != MaskSentinel {
		stored.APIKey = dto.APIKey
	}

	stored.Provider = dto.Provider
	stored.Model = dto.Model
	stored.CustomEndpoint = dto.CustomEndpoint
	stored.UseOwnKeys = dto.UseOwnKeys
	stored.Prompt = dto.Prompt

	if err := s.db.Save(stored).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

// Render masks the credential before anything leaves the service. The raw key
// is write-only from the client's point of view.
func Render(stored *models.OcrSettingsModel) settingsResponse {
	if stored == nil {
		return settingsResponse{
			Provider:   string(ocr.ProviderTogether),
			Model:      ocr.DefaultModel,
			UseOwnKeys: false,
			Prompt:     ocr.DefaultPrompt,
		}
	}
	resp := settingsResponse{
		Provider:       stored.Provider,
		Model:          stored.Model,
		CustomEndpoint: stored.CustomEndpoint,
		UseOwnKeys:     stored.UseOwnKeys,
		Prompt:         stored.Prompt,
	}
	if stored.APIKey != "" {
		resp.APIKey = MaskSentinel
	}
	return resp
}
