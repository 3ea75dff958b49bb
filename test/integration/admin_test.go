package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"benchracers_backend/internal/models"
	"benchracers_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestAdminRoutes_RequireEditor - обычный пользователь получает 403
func TestAdminRoutes_RequireEditor(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, "GET", "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestAdminRoutes_RevokedEditorFlag - флаг редактора перепроверяется
// по базе, отозванный токен с isEditor=true не помогает
func TestAdminRoutes_RevokedEditorFlag(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	editorToken, editor := helpers.CreateAndLoginEditor(t, ts, ts.DB)

	// Отзываем права после выдачи токена
	assert.NoError(t, ts.DB.Model(&models.User{}).
		Where("email = ?", editor.Email).Update("is_editor", false).Error)

	res, _ := ts.SendRequest(t, "GET", "/api/admin/users", editorToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestAdminListUsers
func TestAdminListUsers(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	editorToken, _ := helpers.CreateAndLoginEditor(t, ts, ts.DB)
	_, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/admin/users?limit=100", editorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Email)
}

// TestAdminPromoteUser - выдача прав редактора
func TestAdminPromoteUser(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	editorToken, _ := helpers.CreateAndLoginEditor(t, ts, ts.DB)
	_, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, "PUT", "/api/admin/users/"+user.Email, editorToken, map[string]interface{}{
		"isEditor": true,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var fresh models.User
	assert.NoError(t, ts.DB.Where("email = ?", user.Email).First(&fresh).Error)
	assert.True(t, fresh.IsEditor)
}

// TestAdminModCatalogCRUD
func TestAdminModCatalogCRUD(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	editorToken, _ := helpers.CreateAndLoginEditor(t, ts, ts.DB)

	createRes, createBody := ts.SendRequest(t, "POST", "/api/admin/mods", editorToken, map[string]interface{}{
		"brand":    "HKS",
		"category": "exhaust",
		"cost":     1200.50,
		"link":     "https://example.com/hks",
	})
	assert.Equal(t, http.StatusCreated, createRes.StatusCode)

	var mod struct {
		ID    string  `json:"id"`
		Brand string  `json:"brand"`
		Cost  float64 `json:"cost"`
	}
	assert.NoError(t, json.Unmarshal([]byte(createBody), &mod))
	assert.NotEmpty(t, mod.ID)

	updRes, updBody := ts.SendRequest(t, "PUT", "/api/admin/mods/"+mod.ID, editorToken, map[string]interface{}{
		"cost": 999.99,
	})
	assert.Equal(t, http.StatusOK, updRes.StatusCode)
	assert.Contains(t, updBody, "999.99")

	delRes, _ := ts.SendRequest(t, "DELETE", "/api/admin/mods/"+mod.ID, editorToken, nil)
	assert.Equal(t, http.StatusOK, delRes.StatusCode)
}

// TestAdminDeleteEntry - модераторское удаление корректирует
// счетчик владельца
func TestAdminDeleteEntry(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	editorToken, _ := helpers.CreateAndLoginEditor(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Plymouth", "Barracuda")
	assert.NoError(t, ts.DB.Model(&models.User{}).
		Where("email = ?", owner.Email).Update("total_entries", 1).Error)

	res, _ := ts.SendRequest(t, "DELETE", "/api/admin/entries/"+entry.ID, editorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var fresh models.User
	assert.NoError(t, ts.DB.Where("email = ?", owner.Email).First(&fresh).Error)
	assert.Equal(t, 0, fresh.TotalEntries)
}

// TestAdminAwards - ручная выдача и просмотр наград
func TestAdminAwards(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	editorToken, _ := helpers.CreateAndLoginEditor(t, ts, ts.DB)
	userToken, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/admin/awards", editorToken, map[string]interface{}{
		"userEmail": user.Email,
		"awardType": "editors_choice",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	awardsRes, awardsBody := ts.SendRequest(t, "GET", "/api/users/awards", userToken, nil)
	assert.Equal(t, http.StatusOK, awardsRes.StatusCode)
	assert.Contains(t, awardsBody, "editors_choice")
}

// TestAdminReportsFlow - жалоба видна и разрешается
func TestAdminReportsFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	editorToken, _ := helpers.CreateAndLoginEditor(t, ts, ts.DB)
	reporterToken, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Pontiac", "GTO")

	repRes, _ := ts.SendRequest(t, "POST", "/api/explore/report", reporterToken, map[string]interface{}{
		"carId":  entry.ID,
		"reason": "Not a real build",
	})
	assert.Equal(t, http.StatusCreated, repRes.StatusCode)

	var report models.Report
	assert.NoError(t, ts.DB.Where("entry_id = ?", entry.ID).First(&report).Error)

	listRes, listBody := ts.SendRequest(t, "GET", "/api/admin/reports?limit=100", editorToken, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Contains(t, listBody, report.ID)

	resolveRes, _ := ts.SendRequest(t, "POST", "/api/admin/reports/"+report.ID+"/resolve", editorToken, nil)
	assert.Equal(t, http.StatusOK, resolveRes.StatusCode)

	var fresh models.Report
	assert.NoError(t, ts.DB.Where("id = ?", report.ID).First(&fresh).Error)
	assert.True(t, fresh.Resolved)
}

// TestAdminPhotoModeration - удаление фото и смена главного фото
func TestAdminPhotoModeration(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	editorToken, _ := helpers.CreateAndLoginEditor(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Nissan", "Silvia")

	first := models.EntryPhoto{EntryID: entry.ID, S3Key: "photos/a.jpg", IsMainPhoto: true}
	second := models.EntryPhoto{EntryID: entry.ID, S3Key: "photos/b.jpg"}
	assert.NoError(t, ts.DB.Create(&first).Error)
	assert.NoError(t, ts.DB.Create(&second).Error)

	// Второе фото становится главным, с первого флаг снимается
	mainRes, _ := ts.SendRequest(t, "POST", "/api/admin/photos/"+second.ID+"/main", editorToken, nil)
	assert.Equal(t, http.StatusOK, mainRes.StatusCode)

	var freshFirst, freshSecond models.EntryPhoto
	assert.NoError(t, ts.DB.Where("id = ?", first.ID).First(&freshFirst).Error)
	assert.NoError(t, ts.DB.Where("id = ?", second.ID).First(&freshSecond).Error)
	assert.False(t, freshFirst.IsMainPhoto)
	assert.True(t, freshSecond.IsMainPhoto)

	delRes, _ := ts.SendRequest(t, "DELETE", "/api/admin/photos/"+first.ID, editorToken, nil)
	assert.Equal(t, http.StatusOK, delRes.StatusCode)

	var count int64
	assert.NoError(t, ts.DB.Model(&models.EntryPhoto{}).
		Where("entry_id = ?", entry.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	missingRes, _ := ts.SendRequest(t, "DELETE", "/api/admin/photos/"+first.ID, editorToken, nil)
	assert.Equal(t, http.StatusNotFound, missingRes.StatusCode)
}
