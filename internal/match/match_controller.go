package match

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/woorifc/kickmate/internal/apperrors"
	"github.com/woorifc/kickmate/internal/middleware"
	"github.com/woorifc/kickmate/internal/user"
	"github.com/woorifc/kickmate/pkg/responses"
)

// MatchController handles match-related HTTP requests.
type MatchController struct {
	repo    MatchRepository
	service *MatchService
}

func NewMatchController(repo MatchRepository, service *MatchService) *MatchController {
	return &MatchController{repo: repo, service: service}
}

// --- DTOs ---

type CreateMatchRequest struct {
	Title          string          `json:"title" binding:"required,min=2,max=100"`
	Description    string          `json:"description" binding:"max=1000"`
	VenueID        uint            `json:"venue_id" binding:"required"`
	Date           string          `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime      string          `json:"start_time" binding:"required,len=5"`
	EndTime        string          `json:"end_time" binding:"required,len=5"`
	MaxPlayers     int             `json:"max_players" binding:"required,min=2,max=50"`
	SkillLevel     user.SkillLevel `json:"skill_level" binding:"omitempty,oneof=BEG INT ADV PRO"`
	Gender         GenderPolicy    `json:"gender" binding:"omitempty,oneof=MALE FEMALE MIXED"`
	PricePerPlayer int             `json:"price_per_player" binding:"min=0"`
	HomeTeamID     *uint           `json:"home_team_id"`
	AwayTeamID     *uint           `json:"away_team_id"`
}

type UpdateMatchRequest struct {
	Title          *string          `json:"title" binding:"omitempty,min=2,max=100"`
	Description    *string          `json:"description" binding:"omitempty,max=1000"`
	Date           *string          `json:"date"`
	StartTime      *string          `json:"start_time" binding:"omitempty,len=5"`
	EndTime        *string          `json:"end_time" binding:"omitempty,len=5"`
	MaxPlayers     *int             `json:"max_players" binding:"omitempty,min=2,max=50"`
	SkillLevel     *user.SkillLevel `json:"skill_level" binding:"omitempty,oneof=BEG INT ADV PRO"`
	Gender         *GenderPolicy    `json:"gender" binding:"omitempty,oneof=MALE FEMALE MIXED"`
	PricePerPlayer *int             `json:"price_per_player" binding:"omitempty,min=0"`
}

type RecordResultRequest struct {
	HomeScore int    `json:"home_score" binding:"min=0"`
	AwayScore int    `json:"away_score" binding:"min=0"`
	MVPID     *uint  `json:"mvp_id"`
	Summary   string `json:"summary" binding:"max=2000"`
}

type MarkAttendanceRequest struct {
	UserID uint              `json:"user_id" binding:"required"`
	Status ParticipantStatus `json:"status" binding:"required,oneof=ATTENDED NOSHOW"`
}

// MatchResponse decorates a match with its derived capacity fields.
type MatchResponse struct {
	Match
	ActivePlayers  int64 `json:"active_players"`
	AvailableSpots int   `json:"available_spots"`
	IsFull         bool  `json:"is_full"`
	IsPast         bool  `json:"is_past"`
}

func (mc *MatchController) toResponse(m *Match) (*MatchResponse, error) {
	count, err := mc.repo.CountActiveParticipants(m.ID)
	if err != nil {
		return nil, err
	}
	return &MatchResponse{
		Match:          *m,
		ActivePlayers:  count,
		AvailableSpots: m.AvailableSpots(count),
		IsFull:         m.IsFull(count),
		IsPast:         m.IsPast(mc.service.now()),
	}, nil
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

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// --- Match handlers ---

// CreateMatch godoc
// @Summary Create a match
// @Description Creates a match hosted by the authenticated user.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match data"
// @Success 201 {object} responses.SuccessResponse{data=Match}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	m := &Match{
		Title:          req.Title,
		Description:    req.Description,
		VenueID:        req.VenueID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		MaxPlayers:     req.MaxPlayers,
		Gender:         req.Gender,
		PricePerPlayer: req.PricePerPlayer,
		HostID:         userID,
		HomeTeamID:     req.HomeTeamID,
		AwayTeamID:     req.AwayTeamID,
	}
	if req.SkillLevel != "" {
		m.SkillLevel = req.SkillLevel
	}
	if m.Gender == "" {
		m.Gender = GenderMixed
	}

	if err := mc.service.CreateMatch(m); err != nil {
		responses.SendError(c, apperrors.Status(err), "Failed to create match: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match created successfully", m)
}

// GetMatchByID godoc
// @Summary Get a match by ID
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchResponse}
// @Failure 404 {object} responses.ErrorResponse
// @Router /matches/{match_id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}
	m, err := mc.repo.GetMatchByID(matchID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match: "+err.Error())
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}
	resp, err := mc.toResponse(m)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match retrieved successfully", resp)
}

// GetAllMatches godoc
// @Summary List matches
// @Tags Matches
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status"
// @Param venue_id query int false "Filter by venue"
// @Param skill_level query string false "Filter by skill level"
// @Param gender query string false "Filter by gender policy"
// @Param date_from query string false "Earliest date (YYYY-MM-DD)"
// @Param date_to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} responses.PaginatedResponse{data=[]Match}
// @Router /matches [get]
func (mc *MatchController) GetAllMatches(c *gin.Context) {
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
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if venueID := c.Query("venue_id"); venueID != "" {
		filters["venue_id"] = venueID
	}
	if skill := c.Query("skill_level"); skill != "" {
		filters["skill_level"] = skill
	}
	if gender := c.Query("gender"); gender != "" {
		filters["gender"] = gender
	}
	if from := c.Query("date_from"); from != "" {
		filters["date_from"] = from
	}
	if to := c.Query("date_to"); to != "" {
		filters["date_to"] = to
	}

	matches, total, err := mc.repo.GetAllMatches(page, limit, filters)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve matches: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Matches retrieved successfully", matches, total, page, limit)
}

// UpdateMatch godoc
// @Summary Update a match
// @Description Host-only. Completed and canceled matches cannot be edited.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path uint true "Match ID"
// @Param match body UpdateMatchRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{match_id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	m, err := mc.service.UpdateMatch(matchID, userID, func(m *Match) {
		if req.Title != nil {
			m.Title = *req.Title
		}
		if req.Description != nil {
			m.Description = *req.Description
		}
		if date != nil {
			m.Date = *date
		}
		if req.StartTime != nil {
			m.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			m.EndTime = *req.EndTime
		}
		if req.MaxPlayers != nil {
			m.MaxPlayers = *req.MaxPlayers
		}
		if req.SkillLevel != nil {
			m.SkillLevel = *req.SkillLevel
		}
		if req.Gender != nil {
			m.Gender = *req.Gender
		}
		if req.PricePerPlayer != nil {
			m.PricePerPlayer = *req.PricePerPlayer
		}
	})
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match updated successfully", m)
}

// DeleteMatch godoc
// @Summary Delete a match
// @Description Host-only. A match that has already been played cannot be deleted.
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{match_id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}

	if err := mc.service.DeleteMatch(matchID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match deleted successfully", nil)
}

// CancelMatch godoc
// @Summary Cancel a match
// @Description Host-only. Moves the match to its terminal CANCELED state.
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{match_id}/cancel [post]
func (mc *MatchController) CancelMatch(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}

	m, err := mc.service.CancelMatch(matchID, userID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match canceled successfully", m)
}

// GetMyMatches godoc
// @Summary List matches hosted by or joined by the authenticated user
// @Tags Matches
// @Produce json
// @Param role query string false "hosting or playing" default(playing)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Match}
// @Security ApiKeyAuth
// @Router /me/matches [get]
func (mc *MatchController) GetMyMatches(c *gin.Context) {
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

	var (
		matches []Match
		total   int64
		err     error
	)
	if c.DefaultQuery("role", "playing") == "hosting" {
		matches, total, err = mc.repo.GetMatchesByHostID(userID, page, limit)
	} else {
		matches, total, err = mc.repo.GetMatchesByParticipant(userID, page, limit)
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve matches: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Matches retrieved successfully", matches, total, page, limit)
}

// --- Participation handlers ---

// JoinMatch godoc
// @Summary Join a match
// @Description Registers the authenticated user. Joining the last open slot closes the match.
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 201 {object} responses.SuccessResponse{data=MatchParticipant}
// @Failure 409 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{match_id}/join [post]
func (mc *MatchController) JoinMatch(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}

	participant, err := mc.service.JoinMatch(matchID, userID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Joined match successfully", participant)
}

// LeaveMatch godoc
// @Summary Leave a match
// @Description Cancels the registration. Leaving a closed match reopens it.
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 422 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{match_id}/leave [post]
func (mc *MatchController) LeaveMatch(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}

	if err := mc.service.LeaveMatch(matchID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Left match successfully", nil)
}

// ListParticipants godoc
// @Summary List match participants
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]MatchParticipant}
// @Failure 404 {object} responses.ErrorResponse
// @Router /matches/{match_id}/participants [get]
func (mc *MatchController) ListParticipants(c *gin.Context) {
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}
	participants, err := mc.service.ListParticipants(matchID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Participants retrieved successfully", participants)
}

// MarkAttendance godoc
// @Summary Mark a participant's attendance
// @Description Host-only, after the match has been played. Status is ATTENDED or NOSHOW.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path uint true "Match ID"
// @Param body body MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} responses.SuccessResponse{data=MatchParticipant}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{match_id}/attendance [post]
func (mc *MatchController) MarkAttendance(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}

	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	participant, err := mc.service.MarkAttendance(matchID, req.UserID, userID, req.Status)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Attendance updated successfully", participant)
}

// --- Result handlers ---

// RecordResult godoc
// @Summary Record the final score of a match
// @Description Host-only, once, after the match has been played. Flips the match to COMPLETED.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path uint true "Match ID"
// @Param result body RecordResultRequest true "Result payload"
// @Success 201 {object} responses.SuccessResponse{data=MatchResult}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Failure 422 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{match_id}/result [post]
func (mc *MatchController) RecordResult(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}

	var req RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := mc.service.RecordResult(matchID, userID, req.HomeScore, req.AwayScore, req.MVPID, req.Summary)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Result recorded successfully", result)
}

// GetResult godoc
// @Summary Get the recorded result of a match
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchResult}
// @Failure 404 {object} responses.ErrorResponse
// @Router /matches/{match_id}/result [get]
func (mc *MatchController) GetResult(c *gin.Context) {
	matchID, ok := parseIDParam(c, "match_id")
	if !ok {
		return
	}
	result, err := mc.service.GetResult(matchID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Result retrieved successfully", result)
}
