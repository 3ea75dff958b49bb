package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"benchracers_backend/internal/models"
	"benchracers_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestCreateEntry_FullPayload - создание записи с фото, тегами
// и каскадом счетчиков
func TestCreateEntry_FullPayload(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	body := map[string]interface{}{
		"carMake":     "Nissan",
		"carModel":    "Silvia S15",
		"carYear":     2001,
		"carColor":    "white",
		"description": "Street drift build",
		"region":      "west",
		"category":    "jdm",
		"photos": []map[string]interface{}{
			{"s3Key": "photos/test/main.jpg", "isMainPhoto": true},
			{"s3Key": "photos/test/side.jpg"},
		},
		"tags": []string{"Drift", "drift", "turbo"},
	}

	res, bodyStr := ts.SendRequest(t, "POST", "/api/garage/entries", token, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var entry struct {
		ID     string `json:"id"`
		Photos []struct {
			S3Key       string `json:"s3Key"`
			IsMainPhoto bool   `json:"isMainPhoto"`
		} `json:"photos"`
		Tags []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}
	err := json.Unmarshal([]byte(bodyStr), &entry)
	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Len(t, entry.Photos, 2)
	// Теги дедуплицируются без учета регистра
	assert.Len(t, entry.Tags, 2)

	// Счетчик totalEntries владельца инкрементирован
	var fresh models.User
	err = ts.DB.Where("email = ?", user.Email).First(&fresh).Error
	assert.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalEntries)
}

// TestUpdateEntry_NotOwner - чужую запись править нельзя
func TestUpdateEntry_NotOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	strangerToken, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Toyota", "Supra")

	res, _ := ts.SendRequest(t, "PUT", "/api/garage/entries/"+entry.ID, strangerToken, map[string]interface{}{
		"carColor": "red",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestDeleteEntry_DecrementsCounter
func TestDeleteEntry_DecrementsCounter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	createRes, createBody := ts.SendRequest(t, "POST", "/api/garage/entries", token, map[string]interface{}{
		"carMake":  "Honda",
		"carModel": "Civic EK9",
	})
	assert.Equal(t, http.StatusCreated, createRes.StatusCode)

	var entry struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal([]byte(createBody), &entry))

	delRes, _ := ts.SendRequest(t, "DELETE", "/api/garage/entries/"+entry.ID, token, nil)
	assert.Equal(t, http.StatusOK, delRes.StatusCode)

	var fresh models.User
	assert.NoError(t, ts.DB.Where("email = ?", user.Email).First(&fresh).Error)
	assert.Equal(t, 0, fresh.TotalEntries)

	// Запись действительно исчезла
	getRes, _ := ts.SendRequest(t, "GET", "/api/garage/entries/"+entry.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, getRes.StatusCode)
}

// TestListEntries_OnlyOwn - гараж показывает только свои записи
func TestListEntries_OnlyOwn(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, other := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	helpers.CreateEntry(t, ts.DB, user.Email, "Mazda", "RX-7")
	helpers.CreateEntry(t, ts.DB, other.Email, "Ford", "Mustang")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/garage/entries", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "RX-7")
	assert.NotContains(t, bodyStr, "Mustang")
}

// TestPresignedURL_RequiresImageContentType
func TestPresignedURL_RequiresImageContentType(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, "GET", "/api/garage/s3/presigned-url?fileName=doc.pdf&fileType=application/pdf", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	okRes, okBody := ts.SendRequest(t, "GET", "/api/garage/s3/presigned-url?fileName=car.jpg&fileType=image/jpeg", token, nil)
	assert.Equal(t, http.StatusOK, okRes.StatusCode)

	var resp struct {
		UploadURL string `json:"uploadUrl"`
		Key       string `json:"key"`
		ExpiresIn int    `json:"expiresIn"`
	}
	assert.NoError(t, json.Unmarshal([]byte(okBody), &resp))
	assert.NotEmpty(t, resp.UploadURL)
	assert.Contains(t, resp.Key, ".jpg")
	assert.Greater(t, resp.ExpiresIn, 0)
}
