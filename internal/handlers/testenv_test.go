package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carshop/backend/internal/hash"
	"github.com/carshop/backend/internal/middleware/auth"
	"github.com/carshop/backend/internal/models"
	"github.com/carshop/backend/internal/repo"
	"github.com/carshop/backend/internal/service/token"
	"github.com/carshop/backend/internal/upload"
)

const (
	testAdminName     = "boss"
	testAdminPassword = "admin_pw"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Repo   *repo.GormRepo
	Tokens *token.Service
	A      *AuthHandler
	Adm    *AdminHandler
	Cars   *CarHandler
	MW     *auth.Middleware
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Admin{}, &models.Car{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	store := repo.New(db)

	adminHash, err := hash.HashPassword(testAdminPassword)
	require.NoError(t, err)
	require.NoError(t, store.EnsureAdmin(context.Background(), testAdminName, adminHash))

	tokens, err := token.New([]byte("test_secret"), "HS256", 30*time.Minute)
	require.NoError(t, err)

	uploads, err := upload.NewStore(t.TempDir() + "/uploads")
	require.NoError(t, err)

	env := &testEnv{
		T:      t,
		E:      echo.New(),
		Repo:   store,
		Tokens: tokens,
		A:      &AuthHandler{Repo: store, Tokens: tokens},
		Adm: &AdminHandler{
			Repo:      store,
			Tokens:    tokens,
			Uploads:   uploads,
			AdminName: testAdminName,
		},
		Cars: &CarHandler{Repo: store},
		MW:   &auth.Middleware{Tokens: tokens, Repo: store, AdminName: testAdminName},
	}
	return env
}

func (env *testEnv) doJSONRequest(method, path string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	body, err := json.Marshal(payload)
	require.NoError(env.T, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doFormRequest(method, path string, form url.Values) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) registerUser(username, password string) *models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)
	user, err := env.Repo.CreateUser(context.Background(), username, pwHash)
	require.NoError(env.T, err)
	return user
}

func (env *testEnv) adminToken() string {
	raw, err := env.Tokens.Issue(testAdminName, time.Minute)
	require.NoError(env.T, err)
	return raw
}

func pngBytes(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

type carForm struct {
	Brand        string
	Model        string
	Power        string
	Displacement string
	Drive        string
	Price        string
	Filename     string
	Image        []byte
}

func defaultCarForm(image []byte, filename string) carForm {
	return carForm{
		Brand:        "VW",
		Model:        "Golf",
		Power:        "150",
		Displacement: "2.0",
		Drive:        "front",
		Price:        "10000",
		Filename:     filename,
		Image:        image,
	}
}

func (env *testEnv) doCreateCarRequest(f carForm) (*httptest.ResponseRecorder, echo.Context) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for k, v := range map[string]string{
		"brand":        f.Brand,
		"model":        f.Model,
		"power":        f.Power,
		"displacement": f.Displacement,
		"drive":        f.Drive,
		"price":        f.Price,
	} {
		require.NoError(env.T, w.WriteField(k, v))
	}

	fw, err := w.CreateFormFile("image", f.Filename)
	require.NoError(env.T, err)
	_, err = fw.Write(f.Image)
	require.NoError(env.T, err)
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/create_car", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}
