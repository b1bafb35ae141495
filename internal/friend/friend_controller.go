package friend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/woorifc/kickmate/internal/apperrors"
	"github.com/woorifc/kickmate/internal/middleware"
	"github.com/woorifc/kickmate/pkg/responses"
)

// FriendController handles friendship HTTP requests.
type FriendController struct {
	service *FriendService
}

func NewFriendController(service *FriendService) *FriendController {
	return &FriendController{service: service}
}

type SendFriendRequestBody struct {
	ToUserID uint `json:"to_user_id" binding:"required"`
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

// SendRequest godoc
// @Summary Send a friend request
// @Tags Friends
// @Accept json
// @Produce json
// @Param body body SendFriendRequestBody true "Target user"
// @Success 201 {object} responses.SuccessResponse{data=Friendship}
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /friends/requests [post]
func (fc *FriendController) SendRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req SendFriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	f, err := fc.service.SendRequest(userID, req.ToUserID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Friend request sent", f)
}

// AcceptRequest godoc
// @Summary Accept a friend request
// @Tags Friends
// @Produce json
// @Param request_id path uint true "Friend request ID"
// @Success 200 {object} responses.SuccessResponse{data=Friendship}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /friends/requests/{request_id}/accept [post]
func (fc *FriendController) AcceptRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	f, err := fc.service.AcceptRequest(requestID, userID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Friend request accepted", f)
}

// RejectRequest godoc
// @Summary Reject a friend request
// @Tags Friends
// @Produce json
// @Param request_id path uint true "Friend request ID"
// @Success 200 {object} responses.SuccessResponse{data=Friendship}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /friends/requests/{request_id}/reject [post]
func (fc *FriendController) RejectRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	f, err := fc.service.RejectRequest(requestID, userID)
	if err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Friend request rejected", f)
}

// CancelRequest godoc
// @Summary Cancel own pending friend request
// @Tags Friends
// @Produce json
// @Param request_id path uint true "Friend request ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /friends/requests/{request_id} [delete]
func (fc *FriendController) CancelRequest(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		return
	}

	if err := fc.service.CancelRequest(requestID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Friend request canceled", nil)
}

// DeleteFriendship godoc
// @Summary Remove a friend
// @Description Either party of an accepted friendship may remove it.
// @Tags Friends
// @Produce json
// @Param friendship_id path uint true "Friendship ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /friendships/{friendship_id} [delete]
func (fc *FriendController) DeleteFriendship(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	friendshipID, ok := parseIDParam(c, "friendship_id")
	if !ok {
		return
	}

	if err := fc.service.DeleteFriendship(friendshipID, userID); err != nil {
		responses.SendError(c, apperrors.Status(err), err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Friend removed", nil)
}

// ListFriends godoc
// @Summary List accepted friends
// @Tags Friends
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Friendship}
// @Security ApiKeyAuth
// @Router /friends [get]
func (fc *FriendController) ListFriends(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	friendships, err := fc.service.ListFriends(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve friends: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Friends retrieved successfully", friendships)
}

// ListIncoming godoc
// @Summary List pending incoming friend requests
// @Tags Friends
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Friendship}
// @Security ApiKeyAuth
// @Router /friends/requests/incoming [get]
func (fc *FriendController) ListIncoming(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	requests, err := fc.service.ListIncoming(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve requests: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Incoming requests retrieved successfully", requests)
}

// ListOutgoing godoc
// @Summary List pending outgoing friend requests
// @Tags Friends
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Friendship}
// @Security ApiKeyAuth
// @Router /friends/requests/outgoing [get]
func (fc *FriendController) ListOutgoing(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	requests, err := fc.service.ListOutgoing(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve requests: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Outgoing requests retrieved successfully", requests)
}
