package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/woorifc/kickmate/internal/apperrors"
	"github.com/woorifc/kickmate/internal/middleware"
	"github.com/woorifc/kickmate/pkg/responses"
)

// TeamController handles team-related HTTP requests.
type TeamController struct {
	repo    TeamRepository
	service *TeamService
}

func NewTeamController(repo TeamRepository, service *TeamService) *TeamController {
	return &TeamController{repo: repo, service: service}
}

// --- DTOs ---

type CreateTeamRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=100"`
	Logo         string    `json:"logo"`
	Description  string    `json:"description" binding:"max=1000"`
	Level        TeamLevel `json:"level" binding:"omitempty,oneof=BEG INT ADV PRO"`
	Region       string    `json:"region"`
	IsRecruiting *bool     `json:"is_recruiting"`
}

type UpdateTeamRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Logo         *string    `json:"logo"`
	Description  *string    `json:"description" binding:"omitempty,max=1000"`
	Level        *TeamLevel `json:"level" binding:"omitempty,oneof=BEG INT ADV PRO"`
	Region       *string    `json:"region"`
	IsRecruiting *bool      `json:"is_recruiting"`
}

type JoinTeamRequest struct {
	Message  string    `json:"message" binding:"max=500"`
	Position *Position `json:"position" binding:"omitempty,oneof=GK DF MF FW"`
}

type UpdateMemberRoleRequest struct {
	Role MemberRole `json:"role" binding:"required,oneof=CAPTAIN MANAGER PLAYER"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}

// --- Team handlers ---

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a team owned by the authenticated user, who becomes its captain.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team data"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t := &Team{
		Name:        req.Name,
		Logo:        req.Logo,
		Description: req.Description,
		Region:      req.Region,
		OwnerID:     userID,
		Rating:      1000,
	}
	if req.Level != "" {
		t.Level = req.Level
	}
	if req.IsRecruiting != nil {
		t.IsRecruiting = *req.IsRecruiting
	} else {
		t.IsRecruiting = true
	}

	if err := tc.service.CreateTeam(t); err != nil {
		responses.SendError(c, apperrors.Status(err), "Failed to create team: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", t)
}

// GetTeamByID godoc
// @Summary Get a team by ID
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", t)
}

// GetAllTeams godoc
// @Summary List teams
// @Tags Teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param level query string false "Filter by level"
// @Param region query string false "Filter by region"
// @Param is_recruiting query bool false "Filter by recruiting flag"
// @Param name query string false "Search by name"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Router /teams [get]
func (tc *TeamController) GetAllTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filters := make(map[string]interface{})
	if level := c.Query("level"); level != "" {
		filters["level"] = level
	}
	if region := c.Query("region"); region != "" {
		filters["region"] = region
	}
	if recruiting := c.Query("is_recruiting"); recruiting != "" {
		filters["is_recruiting"] = recruiting == "true"
	}
	if name := c.Query("name"); name != "" {
		filters["name"] = name
	}

	teams, total, err := tc.repo.GetAllTeams(page, limit, filters)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve teams: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", teams, total, page, limit)
}

// UpdateTeam godoc
// @Summary Update a team
// @Description Only the team owner can update team details.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := tc.service.UpdateTeam(teamID, userID, func(t *Team) {
		if req.Name != nil {
			t.Name = *req.Name
		}
		if req.Logo != nil {
			t.Logo = *req.Logo
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Level != nil {
			t.Level = *req.Level
		}
		if req.Region != nil {
			t.Region = *req.Region
		}
		if req.IsRecruiting != nil {
			t.IsRecruiting = *req.IsRecruiting
		}
	})
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", t)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Description Only the team owner can delete the team. Memberships and join requests go with it.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	if err := tc.service.DeleteTeam(teamID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

// GetMyTeams godoc
// @Summary List teams the authenticated user belongs to
// @Tags Teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Security ApiKeyAuth
// @Router /me/teams [get]
func (tc *TeamController) GetMyTeams(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	teams, total, err := tc.repo.GetTeamsByUserID(userID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve teams: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", teams, total, page, limit)
}

// --- Membership handlers ---

// GetTeamMembers godoc
// @Summary List team members
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamMember}
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{team_id}/members [get]
func (tc *TeamController) GetTeamMembers(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	t, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	members, err := tc.repo.GetMembers(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve members: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Members retrieved successfully", members)
}

// RemoveMember godoc
// @Summary Remove a member from a team
// @Description Team owner may remove any member; a member may remove themselves. The owner cannot be removed.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param member_id path uint true "Membership ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/members/{member_id} [delete]
func (tc *TeamController) RemoveMember(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "member_id")
	if !ok {
		return
	}

	if err := tc.service.RemoveMember(teamID, memberID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed successfully", nil)
}

// UpdateMemberRole godoc
// @Summary Change a member's role
// @Description Owner-only. Any number of captains or managers is allowed.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param member_id path uint true "Membership ID"
// @Param body body UpdateMemberRoleRequest true "New role"
// @Success 200 {object} responses.SuccessResponse{data=TeamMember}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/members/{member_id}/role [put]
func (tc *TeamController) UpdateMemberRole(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "member_id")
	if !ok {
		return
	}

	var req UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	member, err := tc.service.UpdateMemberRole(teamID, memberID, req.Role, userID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member role updated successfully", member)
}

// LeaveTeam godoc
// @Summary Leave a team
// @Description The owner cannot leave their own team.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/leave [post]
func (tc *TeamController) LeaveTeam(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	if err := tc.service.LeaveTeam(teamID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Left team successfully", nil)
}

// --- Join request handlers ---

// RequestToJoin godoc
// @Summary Request to join a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param body body JoinTeamRequest true "Join request payload"
// @Success 201 {object} responses.SuccessResponse{data=TeamJoinRequest}
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests [post]
func (tc *TeamController) RequestToJoin(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	request, err := tc.service.RequestJoin(teamID, userID, req.Message, req.Position)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Join request created successfully", request)
}

// ListJoinRequests godoc
// @Summary List a team's join requests
// @Description Owner-only. Filter by status via query parameter.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param status query string false "Filter by status (PENDING/ACCEPTED/REJECTED)"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamJoinRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests [get]
func (tc *TeamController) ListJoinRequests(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	requests, err := tc.service.ListJoinRequests(teamID, userID, JoinRequestStatus(c.Query("status")))
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join requests retrieved successfully", requests)
}

// AcceptJoinRequest godoc
// @Summary Accept a join request
// @Description Owner-only. Creates the membership and marks the request accepted atomically.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param request_id path uint true "Join request ID"
// @Success 200 {object} responses.SuccessResponse{data=TeamMember}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests/{request_id}/accept [post]
func (tc *TeamController) AcceptJoinRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	member, err := tc.service.AcceptJoinRequest(teamID, requestID, userID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request accepted", member)
}

// RejectJoinRequest godoc
// @Summary Reject a join request
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param request_id path uint true "Join request ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests/{request_id}/reject [post]
func (tc *TeamController) RejectJoinRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	if err := tc.service.RejectJoinRequest(teamID, requestID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request rejected", nil)
}

// CancelJoinRequest godoc
// @Summary Cancel own pending join request
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 422 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests [delete]
func (tc *TeamController) CancelJoinRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}

	if err := tc.service.CancelJoinRequest(teamID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request canceled", nil)
}

// GetMyJoinRequests godoc
// @Summary List own join requests
// @Tags Teams
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamJoinRequest}
// @Security ApiKeyAuth
// @Router /me/join-requests [get]
func (tc *TeamController) GetMyJoinRequests(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	requests, err := tc.repo.GetJoinRequestsByUser(userID, JoinRequestStatus(c.Query("status")))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve join requests: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join requests retrieved successfully", requests)
}
