package settings

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snapocr/core/internal/database"
	"github.com/snapocr/core/internal/models"
	"github.com/snapocr/core/internal/modules/ocr"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUpsertCreatesAndMasks(t *testing.T) {
	svc := NewService(newTestDB(t))

	stored, err := svc.Upsert("u1", settingsDTO{
		Provider:   "groq",
		APIKey:     "sk-real-key",
		Model:      "llava-v1.6",
		UseOwnKeys: true,
		Prompt:     "transcribe",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if stored.APIKey != "sk-real-key" {
		t.Errorf("stored key = %q", stored.APIKey)
	}

	resp := Render(stored)
	if resp.APIKey != MaskSentinel {
		t.Errorf("rendered key = %q, want mask", resp.APIKey)
	}
	if resp.Provider != "groq" || !resp.UseOwnKeys {
		t.Errorf("rendered = %+v", resp)
	}
}

func TestUpsertSentinelPreservesStoredKey(t *testing.T) {
	svc := NewService(newTestDB(t))

	if _, err := svc.Upsert("u1", settingsDTO{Provider: "together", APIKey: "sk-original", UseOwnKeys: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Round-tripping the masked response must not clobber the credential.
	stored, err := svc.Upsert("u1", settingsDTO{Provider: "groq", APIKey: MaskSentinel, UseOwnKeys: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if stored.APIKey != "sk-original" {
		t.Errorf("stored key = %q, want original preserved", stored.APIKey)
	}
	if stored.Provider != "groq" {
		t.Errorf("provider = %q, non-key fields should update", stored.Provider)
	}
}

func TestUpsertSentinelOnCreateStoresNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	stored, err := svc.Upsert("u1", settingsDTO{Provider: "together", APIKey: MaskSentinel})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if stored.APIKey != "" {
		t.Errorf("stored key = %q, want empty", stored.APIKey)
	}

	var fromDB models.OcrSettingsModel
	if err := db.Where("user_id = ?", "u1").First(&fromDB).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fromDB.APIKey != "" {
		t.Errorf("db key = %q, want empty", fromDB.APIKey)
	}
}

func TestUpsertNewKeyReplacesOld(t *testing.T) {
	svc := NewService(newTestDB(t))

	svc.Upsert("u1", settingsDTO{Provider: "together", APIKey: "sk-old"})
	stored, err := svc.Upsert("u1", settingsDTO{Provider: "together", APIKey: "sk-new"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if stored.APIKey != "sk-new" {
		t.Errorf("stored key = %q, want sk-new", stored.APIKey)
	}
}

func TestUpsertEmptyKeyClearsStored(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	if _, err := svc.Upsert("u1", settingsDTO{Provider: "together", APIKey: "sk-original"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Only the sentinel means "keep the key"; an explicit empty write clears it.
	stored, err := svc.Upsert("u1", settingsDTO{Provider: "together", APIKey: ""})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if stored.APIKey != "" {
		t.Errorf("stored key = %q, want cleared", stored.APIKey)
	}

	var fromDB models.OcrSettingsModel
	if err := db.Where("user_id = ?", "u1").First(&fromDB).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fromDB.APIKey != "" {
		t.Errorf("db key = %q, want cleared", fromDB.APIKey)
	}
}

func TestRenderDefaultsWhenUnset(t *testing.T) {
	resp := Render(nil)
	if resp.Provider != "together" {
		t.Errorf("provider = %q", resp.Provider)
	}
	if resp.Model != ocr.DefaultModel {
		t.Errorf("model = %q", resp.Model)
	}
	if resp.UseOwnKeys {
		t.Error("useOwnKeys should default to false")
	}
	if resp.Prompt != ocr.DefaultPrompt {
		t.Errorf("prompt = %q", resp.Prompt)
	}
	if resp.APIKey != "" {
		t.Errorf("api key = %q, want empty (nothing stored)", resp.APIKey)
	}
}
