package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskerrand-api/internal/dto"
	"github.com/yukikurage/taskerrand-api/internal/services"
	"github.com/yukikurage/taskerrand-api/internal/utils"
)

// AdminHandler serves the moderation views that have no per-user counterpart.
// Admin task and report routes reuse TaskHandler and ReportHandler, whose
// services already widen their results for admins.
type AdminHandler struct {
	userService *services.UserService
}

func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
	}
}

// ListUsers lists every registered user
func (h *AdminHandler) ListUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	users, total, err := h.userService.ListAll(c.Request.Context(), user, utils.GetPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.UserDTO, len(users))
	for i, u := range users {
		out[i] = dto.ToUserDTO(u, h.userService.IsAdmin(&u))
	}
	writeList(c, total, out)
}
