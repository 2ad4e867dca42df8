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

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.RegisterUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEntity) {
			response.Error(w, http.StatusBadRequest, "Username or email already exists")
			return
		}
		writeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "user registered", "user_id", user.ID, "username", user.Username)
	response.Message(w, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.LoginUser(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, http.StatusUnauthorized, "Token is missing")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SuccessResponse{
		Success: true,
		Data:    user,
	})
}
