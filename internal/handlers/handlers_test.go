package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskerrand-api/internal/authz"
	"github.com/yukikurage/taskerrand-api/internal/constants"
	"github.com/yukikurage/taskerrand-api/internal/dto"
	"github.com/yukikurage/taskerrand-api/internal/identity"
	"github.com/yukikurage/taskerrand-api/internal/middleware"
	"github.com/yukikurage/taskerrand-api/internal/models"
	"github.com/yukikurage/taskerrand-api/internal/repository"
	"github.com/yukikurage/taskerrand-api/internal/services"
	"github.com/yukikurage/taskerrand-api/internal/storage"
	"github.com/yukikurage/taskerrand-api/internal/testutil"
	"gorm.io/gorm"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

// stubResolver accepts tokens of the form "tok-<email>"
type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, token string) (*identity.Identity, error) {
	email, ok := strings.CutPrefix(token, "tok-")
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return &identity.Identity{ExternalID: "ext-" + email, Email: email}, nil
}

type HandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	taskService *services.TaskService

	poster *models.User
	seeker *models.User
	other  *models.User
	admin  *models.User
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.db = testutil.NewDB(s.T())

	policy := authz.NewAdminPolicy([]string{"admin@example.com"})
	store := storage.NewLocalProofStore(s.T().TempDir(), "/uploads", 1<<20)

	userRepo := repository.NewUserRepository(s.db)
	taskRepo := repository.NewTaskRepository(s.db)
	notificationService := services.NewNotificationService(repository.NewNotificationRepository(s.db))
	userService := services.NewUserService(userRepo, policy)
	s.taskService = services.NewTaskService(taskRepo, store, notificationService, policy)
	messageService := services.NewMessageService(repository.NewMessageRepository(s.db), taskRepo, notificationService)
	feedbackService := services.NewFeedbackService(repository.NewFeedbackRepository(s.db), taskRepo, userRepo)
	reportService := services.NewReportService(repository.NewReportRepository(s.db), taskRepo, policy)

	taskHandler := NewTaskHandler(s.taskService)
	userHandler := NewUserHandler(userService, feedbackService)
	messageHandler := NewMessageHandler(messageService)
	feedbackHandler := NewFeedbackHandler(feedbackService)
	reportHandler := NewReportHandler(reportService)
	notificationHandler := NewNotificationHandler(notificationService)
	adminHandler := NewAdminHandler(userService)

	r := gin.New()
	api := r.Group("/api", middleware.RequireAuth(stubResolver{}, userService))
	api.GET("/users/me", userHandler.GetMe)
	api.PUT("/users/me", userHandler.UpdateMe)
	api.GET("/users/me/tasks", taskHandler.ListMyTasks)
	api.GET("/users/:id", userHandler.GetUser)
	api.GET("/users/:id/feedback", userHandler.ListFeedback)
	api.POST("/tasks", taskHandler.CreateTask)
	api.GET("/tasks", taskHandler.ListTasks)
	api.GET("/tasks/search", taskHandler.SearchTasks)
	task := api.Group("/tasks/:id", middleware.RequireTaskID())
	task.GET("", taskHandler.GetTask)
	task.PUT("", taskHandler.UpdateTask)
	task.DELETE("", taskHandler.DeleteTask)
	task.POST("/accept", taskHandler.AcceptTask)
	task.POST("/proof", taskHandler.UploadProof)
	task.POST("/complete", taskHandler.CompleteTask)
	task.POST("/confirm", taskHandler.ConfirmTask)
	task.POST("/cancel", taskHandler.CancelTask)
	task.GET("/messages", messageHandler.ListTaskMessages)
	api.POST("/messages", messageHandler.SendMessage)
	api.GET("/messages", messageHandler.ListMessages)
	api.POST("/feedback", feedbackHandler.CreateFeedback)
	api.POST("/reports", reportHandler.CreateReport)
	api.GET("/reports", reportHandler.ListReports)
	api.GET("/notifications", notificationHandler.ListNotifications)
	api.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
	api.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	api.DELETE("/notifications/:id", notificationHandler.DeleteNotification)
	admin := api.Group("/admin", middleware.RequireAdmin(policy))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/tasks", taskHandler.ListTasks)
	s.router = r

	s.poster = testutil.CreateUser(s.T(), s.db, "poster@example.com")
	s.seeker = testutil.CreateUser(s.T(), s.db, "seeker@example.com")
	s.other = testutil.CreateUser(s.T(), s.db, "other@example.com")
	s.admin = testutil.CreateUser(s.T(), s.db, "admin@example.com")
}

func (s *HandlerTestSuite) request(method, url string, body any, user *models.User) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		req.Header.Set("Authorization", "Bearer tok-"+user.Email)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) uploadProof(taskID uint64, user *models.User, data []byte, contentType string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="proof.png"`, constants.ProofFormField))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write(data)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/tasks/%d/proof", taskID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer tok-"+user.Email)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) createTask(title string) *models.Task {
	task, err := s.taskService.Create(context.Background(), s.poster, services.CreateTaskInput{
		Title:       title,
		Description: "Walk the dog",
		Payment:     decimal.NewFromInt(50),
		LocationLat: 14.5,
		LocationLng: 121.0,
	})
	s.Require().NoError(err)
	return task
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (s *HandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var body map[string]any
	s.decode(w, &body)
	code, _ := body["code"].(string)
	return code
}

func (s *HandlerTestSuite) TestRequiresBearerToken() {
	w := s.request(http.MethodGet, "/api/tasks", nil, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("UNAUTHORIZED", s.errorCode(w))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer forged")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestFirstRequestCreatesUser() {
	newcomer := &models.User{Email: "new@example.com"}

	w := s.request(http.MethodGet, "/api/users/me", nil, newcomer)
	s.Require().Equal(http.StatusOK, w.Code)

	var me dto.UserDTO
	s.decode(w, &me)
	s.Equal("new@example.com", me.Email)
	s.Equal("ext-new@example.com", me.ExternalID)
	s.False(me.IsAdmin)
}

func (s *HandlerTestSuite) TestUpdateMe() {
	w := s.request(http.MethodPut, "/api/users/me", map[string]any{
		"first_name":     "  Ana ",
		"contact_number": "0917",
	}, s.seeker)
	s.Require().Equal(http.StatusOK, w.Code)

	var me dto.UserDTO
	s.decode(w, &me)
	s.Equal("Ana", me.FirstName)
	s.Equal("0917", me.ContactNumber)
}

func (s *HandlerTestSuite) TestCreateTask() {
	w := s.request(http.MethodPost, "/api/tasks", map[string]any{
		"title":        "Buy groceries",
		"description":  "Milk and eggs",
		"payment":      "150.50",
		"location_lat": 14.55,
		"location_lng": 121.03,
		"locations": []map[string]any{
			{"lat": 14.56, "lng": 121.04, "address": "Market", "idx": 1},
			{"lat": 14.57, "lng": 121.05, "address": "Home", "idx": 0},
		},
	}, s.poster)
	s.Require().Equal(http.StatusCreated, w.Code)

	var task dto.TaskDTO
	s.decode(w, &task)
	s.Equal("Buy groceries", task.Title)
	s.Equal(models.TaskStatusAvailable, task.Status)
	s.Equal(s.poster.ID, task.PosterID)
	s.True(task.Payment.Equal(decimal.RequireFromString("150.50")))
	s.Require().Len(task.Locations, 2)
	s.Equal("Home", task.Locations[0].Address)
}

func (s *HandlerTestSuite) TestCreateTask_InvalidBody() {
	w := s.request(http.MethodPost, "/api/tasks", map[string]any{
		"title": "No description",
	}, s.poster)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", s.errorCode(w))

	w = s.request(http.MethodPost, "/api/tasks", map[string]any{
		"title":        "Negative",
		"description":  "x",
		"payment":      -1,
		"location_lat": 0,
		"location_lng": 0,
	}, s.poster)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestListTasks_TotalCountHeader() {
	s.createTask("first")
	s.createTask("second")

	w := s.request(http.MethodGet, "/api/tasks?page=1&limit=1", nil, s.seeker)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2", w.Header().Get(TotalCountHeader))

	var tasks []dto.TaskDTO
	s.decode(w, &tasks)
	s.Len(tasks, 1)
}

func (s *HandlerTestSuite) TestListTasks_InvalidStatusFilter() {
	w := s.request(http.MethodGet, "/api/tasks?status_filter=archived", nil, s.seeker)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", s.errorCode(w))
}

func (s *HandlerTestSuite) TestSearchTasks() {
	s.createTask("Fix the FENCE")
	s.createTask("Paint the wall")

	w := s.request(http.MethodGet, "/api/tasks/search?query=fence", nil, s.seeker)
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []dto.TaskDTO
	s.decode(w, &tasks)
	s.Require().Len(tasks, 1)
	s.Equal("Fix the FENCE", tasks[0].Title)
}

func (s *HandlerTestSuite) TestGetTask() {
	w := s.request(http.MethodGet, "/api/tasks/abc", nil, s.seeker)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodGet, "/api/tasks/999", nil, s.seeker)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", s.errorCode(w))

	task := s.createTask("Visible")
	w = s.request(http.MethodPost, "/api/reports", map[string]any{
		"task_id":     task.ID,
		"report_type": "spam",
	}, s.seeker)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.other)
	s.Require().Equal(http.StatusOK, w.Code)

	var got dto.TaskDTO
	s.decode(w, &got)
	s.Equal(int64(1), got.ReportCount)
}

func (s *HandlerTestSuite) TestUpdateTask_OnlyPoster() {
	task := s.createTask("Original")

	w := s.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]any{"title": "Hijacked"}, s.other)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]any{
		"title":  "Renamed",
		"status": "completed",
	}, s.poster)
	s.Require().Equal(http.StatusOK, w.Code)

	var got dto.TaskDTO
	s.decode(w, &got)
	s.Equal("Renamed", got.Title)
	s.Equal(models.TaskStatusAvailable, got.Status)
}

func (s *HandlerTestSuite) TestDeleteTask() {
	task := s.createTask("Doomed")

	w := s.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.other)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.poster)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, s.poster)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestAcceptOwnTask() {
	task := s.createTask("Mine")

	w := s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/accept", task.ID), nil, s.poster)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_OPERATION", s.errorCode(w))
}

func (s *HandlerTestSuite) TestUploadProof_RejectsNonImage() {
	task := s.createTask("Proof")
	w := s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/accept", task.ID), nil, s.seeker)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.uploadProof(task.ID, s.seeker, []byte("plain text"), "text/plain")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", s.errorCode(w))

	w = s.uploadProof(task.ID, s.other, pngBytes, "image/png")
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestLifecycle() {
	task := s.createTask("Full cycle")
	taskURL := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := s.request(http.MethodPost, taskURL+"/accept", nil, s.seeker)
	s.Require().Equal(http.StatusOK, w.Code)
	var got dto.TaskDTO
	s.decode(w, &got)
	s.Equal(models.TaskStatusOngoing, got.Status)
	s.Require().NotNil(got.SeekerID)
	s.Equal(s.seeker.ID, *got.SeekerID)

	w = s.request(http.MethodPost, taskURL+"/accept", nil, s.other)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_OPERATION", s.errorCode(w))

	w = s.request(http.MethodPost, taskURL+"/complete", nil, s.seeker)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", s.errorCode(w))

	w = s.uploadProof(task.ID, s.seeker, pngBytes, "image/png")
	s.Require().Equal(http.StatusOK, w.Code)
	var proof struct {
		ProofImage string `json:"proof_image"`
	}
	s.decode(w, &proof)
	s.True(strings.HasPrefix(proof.ProofImage, "/uploads/"))

	w = s.request(http.MethodPost, taskURL+"/complete", nil, s.seeker)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, taskURL+"/confirm", nil, s.seeker)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, taskURL+"/confirm", nil, s.poster)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &got)
	s.Equal(models.TaskStatusCompleted, got.Status)

	feedback := map[string]any{
		"task_id":   task.ID,
		"seeker_id": s.seeker.ID,
		"rating":    5,
		"comment":   "Great",
	}
	w = s.request(http.MethodPost, "/api/feedback", feedback, s.poster)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, "/api/feedback", feedback, s.poster)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("ALREADY_EXISTS", s.errorCode(w))

	w = s.request(http.MethodGet, fmt.Sprintf("/api/users/%d/feedback", s.seeker.ID), nil, s.other)
	s.Require().Equal(http.StatusOK, w.Code)
	var received []dto.FeedbackDTO
	s.decode(w, &received)
	s.Require().Len(received, 1)
	s.Equal(5, received[0].Rating)
}

func (s *HandlerTestSuite) TestCancelBySeekerReopens() {
	task := s.createTask("Reopen")
	taskURL := fmt.Sprintf("/api/tasks/%d", task.ID)
	s.Require().Equal(http.StatusOK, s.request(http.MethodPost, taskURL+"/accept", nil, s.seeker).Code)

	w := s.request(http.MethodPost, taskURL+"/cancel", nil, s.other)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, taskURL+"/cancel", nil, s.seeker)
	s.Require().Equal(http.StatusOK, w.Code)

	var got dto.TaskDTO
	s.decode(w, &got)
	s.Equal(models.TaskStatusAvailable, got.Status)
	s.Nil(got.SeekerID)
}

func (s *HandlerTestSuite) TestMessages() {
	task := s.createTask("Chat")
	s.Require().Equal(http.StatusOK, s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/accept", task.ID), nil, s.seeker).Code)

	w := s.request(http.MethodPost, "/api/messages", map[string]any{"task_id": task.ID, "content": "hi"}, s.other)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/api/messages", map[string]any{"task_id": task.ID, "content": "On my way"}, s.seeker)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, fmt.Sprintf("/api/messages?task_id=%d", task.ID), nil, s.poster)
	s.Require().Equal(http.StatusOK, w.Code)
	var messages []dto.MessageDTO
	s.decode(w, &messages)
	s.Require().Len(messages, 1)
	s.Equal("On my way", messages[0].Content)

	w = s.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d/messages", task.ID), nil, s.seeker)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/messages", nil, s.seeker)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestNotifications() {
	task := s.createTask("Notify")
	s.Require().Equal(http.StatusOK, s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/accept", task.ID), nil, s.seeker).Code)

	w := s.request(http.MethodGet, "/api/notifications", nil, s.poster)
	s.Require().Equal(http.StatusOK, w.Code)
	var notifications []dto.NotificationDTO
	s.decode(w, &notifications)
	s.Require().Len(notifications, 1)
	s.Equal("Task Accepted", notifications[0].Title)
	s.False(notifications[0].Seen)

	notifURL := fmt.Sprintf("/api/notifications/%d", notifications[0].ID)
	w = s.request(http.MethodPut, notifURL+"/read", nil, s.seeker)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPut, "/api/notifications/read-all", nil, s.poster)
	s.Require().Equal(http.StatusOK, w.Code)
	var marked struct {
		Updated int64 `json:"updated"`
	}
	s.decode(w, &marked)
	s.Equal(int64(1), marked.Updated)

	w = s.request(http.MethodDelete, notifURL, nil, s.poster)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodPut, notifURL+"/read", nil, s.poster)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestReports_AdminOnlyReads() {
	task := s.createTask("Suspicious")

	w := s.request(http.MethodPost, "/api/reports", map[string]any{"task_id": task.ID, "report_type": "scam"}, s.poster)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/reports", map[string]any{"task_id": task.ID, "report_type": "scam"}, s.seeker)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, "/api/reports", nil, s.seeker)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodGet, "/api/reports", nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("1", w.Header().Get(TotalCountHeader))
}

func (s *HandlerTestSuite) TestAdminRoutes() {
	w := s.request(http.MethodGet, "/api/admin/users", nil, s.seeker)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodGet, "/api/admin/users", nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code)
	var users []dto.UserDTO
	s.decode(w, &users)
	s.Len(users, 4)
	s.Equal("4", w.Header().Get(TotalCountHeader))

	task := s.createTask("Ongoing")
	s.Require().Equal(http.StatusOK, s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/accept", task.ID), nil, s.seeker).Code)
	s.createTask("Open")

	w = s.request(http.MethodGet, "/api/admin/tasks", nil, s.admin)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2", w.Header().Get(TotalCountHeader))

	w = s.request(http.MethodGet, "/api/tasks", nil, s.other)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("1", w.Header().Get(TotalCountHeader))
}

func (s *HandlerTestSuite) TestListMyTasks() {
	task := s.createTask("Posted")
	s.createTask("Also posted")
	s.Require().Equal(http.StatusOK, s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/accept", task.ID), nil, s.seeker).Code)

	w := s.request(http.MethodGet, "/api/users/me/tasks?task_type=posted", nil, s.poster)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2", w.Header().Get(TotalCountHeader))

	w = s.request(http.MethodGet, "/api/users/me/tasks?task_type=accepted", nil, s.seeker)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("1", w.Header().Get(TotalCountHeader))

	w = s.request(http.MethodGet, "/api/users/me/tasks?task_type=bogus", nil, s.seeker)
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestRespondServiceError_Internal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondServiceError(c, errors.New("boom"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Fatalf("internal error details leaked: %s", w.Body.String())
	}
}

func TestRespondServiceError_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondServiceError(c, fmt.Errorf("accept: %w", services.ErrTransitionConflict))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}
