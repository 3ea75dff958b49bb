package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"benchracers_backend/internal/models"
	"benchracers_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestCreateComment_TrimsAndCounts - текст триммится, счетчик
// commentCount записи растет
func TestCreateComment_TrimsAndCounts(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Porsche", "911 GT3")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":     entry.ID,
		"commentText": "   What a build!   ",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var comment struct {
		ID          string `json:"id"`
		CommentText string `json:"commentText"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &comment))
	assert.Equal(t, "What a build!", comment.CommentText)

	var fresh models.Entry
	assert.NoError(t, ts.DB.Where("id = ?", entry.ID).First(&fresh).Error)
	assert.Equal(t, 1, fresh.CommentCount)
}

// TestCreateComment_Bounds - пустой после trim и слишком длинный
// текст отбиваются
func TestCreateComment_Bounds(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Lotus", "Elise")

	res1, _ := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":     entry.ID,
		"commentText": "    ",
	})
	assert.Equal(t, http.StatusBadRequest, res1.StatusCode)

	res2, _ := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":     entry.ID,
		"commentText": strings.Repeat("a", 1001),
	})
	assert.Equal(t, http.StatusBadRequest, res2.StatusCode)

	// Ровно 1000 символов проходит
	res3, _ := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":     entry.ID,
		"commentText": strings.Repeat("a", 1000),
	})
	assert.Equal(t, http.StatusCreated, res3.StatusCode)

	// Граница считается в символах, не в байтах: 1000 кириллических
	// символов - это 2000 байт, но текст валиден
	res4, _ := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":     entry.ID,
		"commentText": strings.Repeat("ж", 1000),
	})
	assert.Equal(t, http.StatusCreated, res4.StatusCode)

	res5, _ := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":     entry.ID,
		"commentText": strings.Repeat("ж", 1001),
	})
	assert.Equal(t, http.StatusBadRequest, res5.StatusCode)
}

// TestCreateReply_CounterUnchanged - commentCount записи считает
// только top-level комментарии, создание ответа его не меняет
func TestCreateReply_CounterUnchanged(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Subaru", "WRX STI")

	topRes, _ := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":     entry.ID,
		"commentText": "clean build",
	})
	assert.Equal(t, http.StatusCreated, topRes.StatusCode)

	var afterTop models.Entry
	assert.NoError(t, ts.DB.Where("id = ?", entry.ID).First(&afterTop).Error)
	assert.Equal(t, 1, afterTop.CommentCount)

	top := helpers.CreateComment(t, ts.DB, entry.ID, user.Email, "seeded top", nil)
	replyRes, _ := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":         entry.ID,
		"commentText":     "thanks!",
		"parentCommentId": top.ID,
	})
	assert.Equal(t, http.StatusCreated, replyRes.StatusCode)

	var afterReply models.Entry
	assert.NoError(t, ts.DB.Where("id = ?", entry.ID).First(&afterReply).Error)
	assert.Equal(t, 1, afterReply.CommentCount)
}

// TestReplyNesting_OneLevel - ответ на ответ запрещен
func TestReplyNesting_OneLevel(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Ferrari", "F40")

	top := helpers.CreateComment(t, ts.DB, entry.ID, user.Email, "top level", nil)
	reply := helpers.CreateComment(t, ts.DB, entry.ID, user.Email, "reply", &top.ID)

	res, _ := ts.SendRequest(t, "POST", "/api/explore/comments", token, map[string]interface{}{
		"entryId":         entry.ID,
		"commentText":     "reply to reply",
		"parentCommentId": reply.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestListComments_RepliesPreview - новые top-level первыми,
// до 5 старейших ответов и hasMoreReplies
func TestListComments_RepliesPreview(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "McLaren", "720S")

	top := helpers.CreateComment(t, ts.DB, entry.ID, user.Email, "top", nil)
	for i := 0; i < 7; i++ {
		helpers.CreateComment(t, ts.DB, entry.ID, user.Email, fmt.Sprintf("reply %d", i), &top.ID)
	}

	res, bodyStr := ts.SendRequest(t, "GET", "/api/explore/comments/"+entry.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var resp struct {
		Comments []struct {
			ID             string `json:"id"`
			ReplyCount     int64  `json:"replyCount"`
			HasMoreReplies bool   `json:"hasMoreReplies"`
			Replies        []struct {
				CommentText string `json:"commentText"`
			} `json:"replies"`
		} `json:"comments"`
		Total int64 `json:"total"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, int64(1), resp.Total)
	assert.Len(t, resp.Comments, 1)
	assert.Equal(t, int64(7), resp.Comments[0].ReplyCount)
	assert.True(t, resp.Comments[0].HasMoreReplies)
	assert.Len(t, resp.Comments[0].Replies, 5)
	// Превью отдает старейшие ответы
	assert.Equal(t, "reply 0", resp.Comments[0].Replies[0].CommentText)
}

// TestUpdateComment_AuthorOnly
func TestUpdateComment_AuthorOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, author := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	strangerToken, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Koenigsegg", "Agera")

	comment := helpers.CreateComment(t, ts.DB, entry.ID, author.Email, "original", nil)

	res, _ := ts.SendRequest(t, "PUT", "/api/explore/comments/"+comment.ID, strangerToken, map[string]interface{}{
		"commentText": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestDeleteComment_CascadesToReplies - мягкое удаление top-level
// скрывает ответы, а счетчик top-level комментариев уменьшается
// ровно на 1 с полом в ноль
func TestDeleteComment_CascadesToReplies(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Bugatti", "Veyron")

	top := helpers.CreateComment(t, ts.DB, entry.ID, user.Email, "top", nil)
	helpers.CreateComment(t, ts.DB, entry.ID, user.Email, "reply 1", &top.ID)
	helpers.CreateComment(t, ts.DB, entry.ID, user.Email, "reply 2", &top.ID)
	assert.NoError(t, ts.DB.Model(&models.Entry{}).Where("id = ?", entry.ID).Update("comment_count", 1).Error)

	res, _ := ts.SendRequest(t, "DELETE", "/api/explore/comments/"+top.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Все три комментария скрыты
	var hiddenCount int64
	assert.NoError(t, ts.DB.Model(&models.Comment{}).
		Where("entry_id = ? AND is_deleted = true", entry.ID).Count(&hiddenCount).Error)
	assert.Equal(t, int64(3), hiddenCount)

	var fresh models.Entry
	assert.NoError(t, ts.DB.Where("id = ?", entry.ID).First(&fresh).Error)
	assert.Equal(t, 0, fresh.CommentCount)

	// Список больше не показывает удаленный тред
	listRes, listBody := ts.SendRequest(t, "GET", "/api/explore/comments/"+entry.ID, "", nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.NotContains(t, listBody, top.ID)
}

// TestDeleteComment_EditorCanModerate
func TestDeleteComment_EditorCanModerate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, author := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	editorToken, _ := helpers.CreateAndLoginEditor(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Pagani", "Zonda")

	comment := helpers.CreateComment(t, ts.DB, entry.ID, author.Email, "spam", nil)

	res, _ := ts.SendRequest(t, "DELETE", "/api/explore/comments/"+comment.ID, editorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

// TestCommentLikeToggle - лайк переключается, счетчик согласован
func TestCommentLikeToggle(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, author := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	_, owner := helpers.CreateAndLoginRandomUser(t, ts, ts.DB)
	entry := helpers.CreateEntry(t, ts.DB, owner.Email, "Aston Martin", "DB11")

	comment := helpers.CreateComment(t, ts.DB, entry.ID, author.Email, "nice", nil)

	res1, body1 := ts.SendRequest(t, "POST", "/api/explore/comments/"+comment.ID+"/like", token, nil)
	assert.Equal(t, http.StatusOK, res1.StatusCode)

	var resp1 struct {
		Action  string `json:"action"`
		Likes   int    `json:"likes"`
		IsLiked bool   `json:"isLiked"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body1), &resp1))
	assert.Equal(t, "liked", resp1.Action)
	assert.Equal(t, 1, resp1.Likes)
	assert.True(t, resp1.IsLiked)

	res2, body2 := ts.SendRequest(t, "POST", "/api/explore/comments/"+comment.ID+"/like", token, nil)
	assert.Equal(t, http.StatusOK, res2.StatusCode)

	var resp2 struct {
		Action string `json:"action"`
		Likes  int    `json:"likes"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body2), &resp2))
	assert.Equal(t, "unliked", resp2.Action)
	assert.Equal(t, 0, resp2.Likes)
}
