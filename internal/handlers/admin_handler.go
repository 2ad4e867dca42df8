package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"quiz-backend/internal/dto"
	"quiz-backend/internal/middleware"
	"quiz-backend/internal/services"
	"quiz-backend/utils/response"
)

// AdminHandler serves routes wrapped in AuthMiddleware.RequireAdmin.
type AdminHandler struct {
	quizzes *services.QuizService
}

func NewAdminHandler(quizzes *services.QuizService) *AdminHandler {
	return &AdminHandler{quizzes: quizzes}
}

func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.quizzes.CreateCategory(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEntity) {
			response.Error(w, http.StatusBadRequest, "Category already exists")
			return
		}
		writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "category added", "category_id", category.ID, "by", actingUser(r))
	response.JSON(w, http.StatusCreated, dto.CreatedResponse{
		Success: true,
		Message: "Category added successfully",
		ID:      category.ID,
	})
}

func (h *AdminHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	question, err := h.quizzes.CreateQuestion(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "question added", "question_id", question.ID, "category_id", question.CategoryID, "by", actingUser(r))
	response.JSON(w, http.StatusCreated, dto.CreatedResponse{
		Success: true,
		Message: "Question added successfully",
		ID:      question.ID,
	})
}

func actingUser(r *http.Request) string {
	if identity := middleware.IdentityFromContext(r.Context()); identity != nil {
		return identity.UserID.String()
	}
	return ""
}
