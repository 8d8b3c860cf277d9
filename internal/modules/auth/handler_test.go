package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snapocr/core/internal/database"
	"github.com/snapocr/core/internal/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	api := r.Group("")
	NewHandler(db, zap.NewNop()).RegisterRoutes(api, middleware.Auth(db))
	return r, db
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/auth/register", `{"username":"alice","password":"s3cret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
	var created userResponse
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Username != "alice" || created.ID == "" {
		t.Errorf("register response = %+v", created)
	}

	w = postJSON(r, "/auth/login", `{"username":"alice","password":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Token == "" {
		t.Error("login did not return a token")
	}
	if body.User.ID != created.ID {
		t.Errorf("login user = %+v", body.User)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := postJSON(r, "/auth/register", `{"username":"alice","password":"a"}`); w.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", w.Code)
	}
	if w := postJSON(r, "/auth/register", `{"username":"alice","password":"b"}`); w.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", w.Code)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{`{}`, `{"username":"alice"}`, `{"password":"x"}`} {
		if w := postJSON(r, "/auth/register", body); w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestRegisterNeverReturnsPasswordHash(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/auth/register", `{"username":"alice","password":"s3cret"}`)
	if strings.Contains(w.Body.String(), "password") || strings.Contains(w.Body.String(), "$2a$") {
		t.Errorf("response leaks password material: %s", w.Body.String())
	}
}
