package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/validation"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// FindMember resolves an email to a user so it can be added to the team
func (h *TeamHandler) FindMember(c *gin.Context) {
	type FindMemberRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req FindMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.teamService.FindUserByEmail(req.Email)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListTeam returns the team of the resolved project
func (h *TeamHandler) ListTeam(c *gin.Context) {
	members, err := h.teamService.ListTeam(middleware.Scope(c).Project)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team": dto.ToTeamMemberDTOs(members),
	})
}

// AddMember puts a user on the team of the resolved project
func (h *TeamHandler) AddMember(c *gin.Context) {
	type AddMemberRequest struct {
		ID string `json:"id" binding:"required,uuid"`
	}

	var req AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, ok := validation.ParseID(req.ID)
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.teamService.AddMember(middleware.Scope(c).Project, userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// RemoveMember takes a user off the team of the resolved project
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, ok := validation.ParseID(c.Param(constants.ParamUserID))
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.teamService.RemoveMember(middleware.Scope(c).Project, userID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member removed successfully"})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrManagerCannotJoinTeam):
		apierrors.InvalidAction(c, "The project manager cannot be added to the team")
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, "User is already on the team")
	case errors.Is(err, services.ErrNotTeamMember):
		apierrors.Conflict(c, "User is not on the team")
	default:
		internalError(c, "team", err)
	}
}
