package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"benchracers_backend/database"
	"benchracers_backend/internal/app"
	"benchracers_backend/internal/config"
	"benchracers_backend/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer создает тестовый сервер поверх тестовой БД.
// DATABASE_URL должен указывать на отдельную базу.
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить миграции тестовой БД: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	log.Printf("✅ Тестовый сервер запущен, тестовая БД (%s) настроена.", dsn)

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables очищает все таблицы между тестами.
func (ts *TestServer) ClearTables() {
	err := ts.DB.Exec("TRUNCATE TABLE users, entries, entry_photos, entry_upvotes, entry_mods, entry_tags, mods, tags, comments, comment_likes, awards, reports RESTART IDENTITY CASCADE").Error
	if err != nil {
		log.Fatalf("Не удалось очистить таблицы: %v", err)
	}
}

// SendRequest шлет JSON-запрос на тестовый сервер
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader = nil
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}
