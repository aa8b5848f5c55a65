package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nestlink/internal/models"
	"nestlink/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func boardTestServer(boardRepo *MockBoardRepository, userRepo *MockUserRepository) *Server {
	return &Server{
		boardRepo:    boardRepo,
		userRepo:     userRepo,
		boardService: service.NewBoardService(boardRepo, userRepo),
	}
}

func TestCreateBoardPost(t *testing.T) {
	app := fiber.New()
	boardRepo := new(MockBoardRepository)
	userRepo := new(MockUserRepository)
	s := boardTestServer(boardRepo, userRepo)
	withUser(app, 1)
	app.Post("/board/posts", s.CreateBoardPost)

	userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)
	boardRepo.On("CreatePost", mock.Anything, mock.MatchedBy(func(p *models.BoardPost) bool {
		return p.AuthorID == 1 && p.Status == models.BoardPostActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.BoardPost).ID = 3
	}).Return(nil)
	boardRepo.On("GetPost", mock.Anything, uint(3)).Return(
		&models.BoardPost{ID: 3, AuthorID: 1, Status: models.BoardPostActive}, nil)

	body, _ := json.Marshal(map[string]string{
		"type":        "need_nanny",
		"description": "Friday evening sitter needed",
		"city":        "Springfield",
	})
	req := httptest.NewRequest(http.MethodPost, "/board/posts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// bogus type
	bad, _ := json.Marshal(map[string]string{
		"type": "garage_sale", "description": "d", "city": "Springfield",
	})
	badReq := httptest.NewRequest(http.MethodPost, "/board/posts", bytes.NewReader(bad))
	badReq.Header.Set("Content-Type", "application/json")
	badResp, _ := app.Test(badReq)
	defer func() { _ = badResp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestGetBoardPost_CountsView(t *testing.T) {
	app := fiber.New()
	boardRepo := new(MockBoardRepository)
	s := boardTestServer(boardRepo, new(MockUserRepository))
	withUser(app, 1)
	app.Get("/board/posts/:id", s.GetBoardPost)

	boardRepo.On("GetPost", mock.Anything, uint(3)).Return(
		&models.BoardPost{ID: 3, ViewCount: 4, Status: models.BoardPostActive}, nil)
	boardRepo.On("IncrementViewCount", mock.Anything, uint(3)).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/board/posts/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var post models.BoardPost
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(t, 5, post.ViewCount)
	boardRepo.AssertExpectations(t)
}

func TestRespondToBoardPost(t *testing.T) {
	tests := []struct {
		name           string
		post           *models.BoardPost
		responderID    uint
		hasResponse    bool
		expectedStatus int
	}{
		{
			name:           "Success",
			post:           &models.BoardPost{ID: 3, AuthorID: 1, Status: models.BoardPostActive},
			responderID:    2,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Closed post",
			post:           &models.BoardPost{ID: 3, AuthorID: 1, Status: models.BoardPostClosed},
			responderID:    2,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Own post",
			post:           &models.BoardPost{ID: 3, AuthorID: 2, Status: models.BoardPostActive},
			responderID:    2,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Duplicate response",
			post:           &models.BoardPost{ID: 3, AuthorID: 1, Status: models.BoardPostActive},
			responderID:    2,
			hasResponse:    true,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			boardRepo := new(MockBoardRepository)
			userRepo := new(MockUserRepository)
			s := boardTestServer(boardRepo, userRepo)
			withUser(app, tt.responderID)
			app.Post("/board/posts/:id/responses", s.RespondToBoardPost)

			boardRepo.On("GetPost", mock.Anything, uint(3)).Return(tt.post, nil)
			userRepo.On("GetByID", mock.Anything, tt.responderID).Return(&models.User{ID: tt.responderID}, nil)
			boardRepo.On("HasResponse", mock.Anything, uint(3), tt.responderID).Return(tt.hasResponse, nil)
			boardRepo.On("CreateResponse", mock.Anything, mock.Anything).Return(nil)

			body, _ := json.Marshal(map[string]string{"message": "I can help"})
			req := httptest.NewRequest(http.MethodPost, "/board/posts/3/responses", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUpdateBoardPost(t *testing.T) {
	t.Run("selecting responder closes the post", func(t *testing.T) {
		app := fiber.New()
		boardRepo := new(MockBoardRepository)
		s := boardTestServer(boardRepo, new(MockUserRepository))
		withUser(app, 1)
		app.Patch("/board/posts/:id", s.UpdateBoardPost)

		boardRepo.On("GetPost", mock.Anything, uint(3)).Return(
			&models.BoardPost{ID: 3, AuthorID: 1, Status: models.BoardPostActive}, nil).Once()
		boardRepo.On("UpdatePost", mock.Anything, mock.MatchedBy(func(p *models.BoardPost) bool {
			return p.Status == models.BoardPostClosed &&
				p.SelectedResponderID != nil && *p.SelectedResponderID == 2
		})).Return(nil)
		boardRepo.On("GetPost", mock.Anything, uint(3)).Return(
			&models.BoardPost{ID: 3, AuthorID: 1, Status: models.BoardPostClosed}, nil)

		body, _ := json.Marshal(map[string]any{"selected_responder_id": 2})
		req := httptest.NewRequest(http.MethodPatch, "/board/posts/3", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		boardRepo.AssertExpectations(t)
	})

	t.Run("non-author gets 403", func(t *testing.T) {
		app := fiber.New()
		boardRepo := new(MockBoardRepository)
		s := boardTestServer(boardRepo, new(MockUserRepository))
		withUser(app, 99)
		app.Patch("/board/posts/:id", s.UpdateBoardPost)

		boardRepo.On("GetPost", mock.Anything, uint(3)).Return(
			&models.BoardPost{ID: 3, AuthorID: 1, Status: models.BoardPostActive}, nil)

		body, _ := json.Marshal(map[string]string{"status": "closed"})
		req := httptest.NewRequest(http.MethodPatch, "/board/posts/3", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("reopening a closed post is rejected", func(t *testing.T) {
		app := fiber.New()
		boardRepo := new(MockBoardRepository)
		s := boardTestServer(boardRepo, new(MockUserRepository))
		withUser(app, 1)
		app.Patch("/board/posts/:id", s.UpdateBoardPost)

		boardRepo.On("GetPost", mock.Anything, uint(3)).Return(
			&models.BoardPost{ID: 3, AuthorID: 1, Status: models.BoardPostClosed}, nil)

		body, _ := json.Marshal(map[string]string{"status": "active"})
		req := httptest.NewRequest(http.MethodPatch, "/board/posts/3", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSavedPostEndpoints(t *testing.T) {
	t.Run("save then duplicate save", func(t *testing.T) {
		app := fiber.New()
		boardRepo := new(MockBoardRepository)
		s := boardTestServer(boardRepo, new(MockUserRepository))
		withUser(app, 1)
		app.Post("/board/posts/:id/save", s.SaveBoardPost)

		boardRepo.On("GetPost", mock.Anything, uint(3)).Return(
			&models.BoardPost{ID: 3, Status: models.BoardPostActive}, nil)
		boardRepo.On("GetSaved", mock.Anything, uint(1), uint(3)).Return(nil, nil).Once()
		boardRepo.On("CreateSaved", mock.Anything, mock.Anything).Return(nil).Once()
		boardRepo.On("GetSaved", mock.Anything, uint(1), uint(3)).Return(
			&models.SavedPost{ID: 5, UserID: 1, PostID: 3}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/board/posts/3/save", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		dup := httptest.NewRequest(http.MethodPost, "/board/posts/3/save", nil)
		dupResp, _ := app.Test(dup)
		defer func() { _ = dupResp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, dupResp.StatusCode)
	})

	t.Run("saved listing annotates posts", func(t *testing.T) {
		app := fiber.New()
		boardRepo := new(MockBoardRepository)
		s := boardTestServer(boardRepo, new(MockUserRepository))
		withUser(app, 1)
		app.Get("/board/saved", s.GetSavedPosts)

		boardRepo.On("ListSavedByUser", mock.Anything, uint(1)).Return([]models.SavedPost{
			{UserID: 1, PostID: 3, Post: models.BoardPost{ID: 3, City: "Springfield"}},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/board/saved", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Posts []models.BoardPost `json:"posts"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		require.Len(t, payload.Posts, 1)
		assert.True(t, payload.Posts[0].Saved)
	})
}
