package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"benchracers_backend/internal/models"
	"benchracers_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestFeed_ExcludesOwnAndSwiped - лента не содержит собственных
// записей и уже показанных ID
func TestFeed_ExcludesOwnAndSwiped(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, viewer := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, other := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	// Фильтр northeast/exotic изолирует тест от параллельных записей
	makeEntry := func(ownerEmail, carMake, carModel string) models.Entry {
		entry := models.Entry{
			UserEmail: ownerEmail,
			CarMake:   carMake,
			CarModel:  carModel,
			Region:    models.RegionNortheast,
			Category:  models.CategoryExotic,
		}
		assert.NoError(t, ts.DB.Create(&entry).Error)
		return entry
	}

	own := makeEntry(viewer.Email, "Subaru", "WRX STI")
	visible := makeEntry(other.Email, "Mitsubishi", "Evo IX")
	swiped := makeEntry(other.Email, "Nissan", "GT-R R35")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/explore/cars", token, map[string]interface{}{
		"swipedCars": []string{swiped.ID},
		"limit":      50,
		"region":     "northeast",
		"category":   "exotic",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		Cars []struct {
			ID string `json:"id"`
		} `json:"cars"`
		Count int `json:"count"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, len(resp.Cars), resp.Count)

	for _, car := range resp.Cars {
		assert.NotEqual(t, own.ID, car.ID, "Лента не должна содержать собственную запись")
		assert.NotEqual(t, swiped.ID, car.ID, "Лента не должна содержать swiped ID")
	}

	found := false
	for _, car := range resp.Cars {
		if car.ID == visible.ID {
			found = true
		}
	}
	assert.True(t, found, "Запись другого пользователя должна попадать в ленту")
}

// TestFeed_ExcludesUnverifiedOwners - записи неверифицированных
// владельцев не видны
func TestFeed_ExcludesUnverifiedOwners(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, other := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	hidden := helpers.CreateEntry(t, ts.DB, other.Email, "Lada", "2107")
	assert.NoError(t, ts.DB.Model(&models.User{}).Where("email = ?", other.Email).Update("is_verified", false).Error)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/explore/cars", token, map[string]interface{}{
		"limit": 50,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, hidden.ID)
}

// TestFeed_LimitClamped - limit ограничивается максимумом 50
func TestFeed_LimitClamped(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/explore/cars", token, map[string]interface{}{
		"limit": 500,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		Count int `json:"count"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.LessOrEqual(t, resp.Count, 50)
}

// TestToggleUpvote - переключение голоса в обе стороны
func TestToggleUpvote(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "BMW", "M3 E46")

	// Первый вызов: голос добавлен
	res1, body1 := ts.SendRequest(t, "POST", "/api/explore/like", token, map[string]interface{}{
		"carId": entry.ID,
	})
	assert.Equal(t, http.StatusOK, res1.StatusCode)

	var resp1 struct {
		Action     string `json:"action"`
		Upvotes    int    `json:"upvotes"`
		HasUpvoted bool   `json:"hasUpvoted"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body1), &resp1))
	assert.Equal(t, "upvoted", resp1.Action)
	assert.Equal(t, 1, resp1.Upvotes)
	assert.True(t, resp1.HasUpvoted)

	// Второй вызов: голос снят, счетчик вернулся к нулю
	res2, body2 := ts.SendRequest(t, "POST", "/api/explore/like", token, map[string]interface{}{
		"carId": entry.ID,
	})
	assert.Equal(t, http.StatusOK, res2.StatusCode)

	var resp2 struct {
		Action     string `json:"action"`
		Upvotes    int    `json:"upvotes"`
		HasUpvoted bool   `json:"hasUpvoted"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body2), &resp2))
	assert.Equal(t, "unupvoted", resp2.Action)
	assert.Equal(t, 0, resp2.Upvotes)
	assert.False(t, resp2.HasUpvoted)

	// Счетчик в БД согласован с join-таблицей
	var fresh models.Entry
	assert.NoError(t, ts.DB.Where("id = ?", entry.ID).First(&fresh).Error)
	assert.Equal(t, 0, fresh.Upvotes)
}

// TestToggleUpvote_UnknownEntry
func TestToggleUpvote_UnknownEntry(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, "POST", "/api/explore/like", token, map[string]interface{}{
		"carId": "00000000-0000-0000-0000-000000000000",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestReportEntry - жалоба сохраняется для модерации
func TestReportEntry(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, reporter := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Dodge", "Charger")

	res, _ := ts.SendRequest(t, "POST", "/api/explore/report", token, map[string]interface{}{
		"carId":  entry.ID,
		"reason": "Stolen photos",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var report models.Report
	assert.NoError(t, ts.DB.Where("entry_id = ?", entry.ID).First(&report).Error)
	assert.Equal(t, reporter.Email, report.ReporterEmail)
	assert.False(t, report.Resolved)
}

// TestStats - статистика текущего пользователя
func TestStats(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, other := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	helpers.CreateEntry(t, ts.DB, user.Email, "Chevrolet", "Corvette")
	foreign := helpers.CreateEntry(t, ts.DB, other.Email, "Audi", "RS6")
	helpers.CreateComment(t, ts.DB, foreign.ID, user.Email, "Clean build", nil)

	// Голос за чужую запись
	likeRes, _ := ts.SendRequest(t, "POST", "/api/explore/like", token, map[string]interface{}{
		"carId": foreign.ID,
	})
	assert.Equal(t, http.StatusOK, likeRes.StatusCode)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/explore/stats", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var stats struct {
		TotalEntries    int64 `json:"totalEntries"`
		UpvotesGiven    int64 `json:"upvotesGiven"`
		CommentsWritten int64 `json:"commentsWritten"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &stats))
	assert.Equal(t, int64(1), stats.TotalEntries)
	assert.Equal(t, int64(1), stats.UpvotesGiven)
	assert.Equal(t, int64(1), stats.CommentsWritten)
}

// TestRankings_Public - топ доступен без токена
func TestRankings_Public(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/explore/rankings", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "rankings")
}
