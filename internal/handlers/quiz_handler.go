package handlers

import (
	"net/http"

	"quiz-backend/internal/dto"
	"quiz-backend/internal/middleware"
	"quiz-backend/internal/services"
	"quiz-backend/utils/response"
)

type QuizHandler struct {
	service *services.QuizService
}

func NewQuizHandler(service *services.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

func (h *QuizHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, categories)
}

func (h *QuizHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "category_id")
	if !ok {
		return
	}

	questions, err := h.service.ListQuestions(r.Context(), categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, questions)
}

// SubmitQuiz scores the answers for the acting user from the token. No user
// id is read from the body.
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	var req dto.SubmitQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SubmitQuiz(r.Context(), identity.UserID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *QuizHandler) MyResults(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	results, err := h.service.ListUserResults(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, results)
}
