package directory

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/application/directory/usecases"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

const importFileField = "file"

type UserHandler struct {
	list        ListUsersExecutor
	get         GetUserExecutor
	create      CreateUserExecutor
	update      UpdateUserExecutor
	delete      DeleteUserExecutor
	importUsers ImportUsersExecutor
	logger      logger.Interface
}

func NewUserHandler(
	list ListUsersExecutor,
	get GetUserExecutor,
	create CreateUserExecutor,
	update UpdateUserExecutor,
	del DeleteUserExecutor,
	importUsers ImportUsersExecutor,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		list:        list,
		get:         get,
		create:      create,
		update:      update,
		delete:      del,
		importUsers: importUsers,
		logger:      logger,
	}
}

// ListUsers handles GET /users
//
//	@Summary	Directory users
//	@Tags		users
//	@Produce	json
//	@Param		search		query		string	false	"Name or email"
//	@Param		site_id		query		int		false	"Site filter"
//	@Param		role_id		query		int		false	"Role filter"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse}
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.list.Execute(c.Request.Context(), usecases.ListUsersQuery{
		Actor:    actor,
		Search:   strings.TrimSpace(c.Query("search")),
		SiteID:   utils.ParseOptionalUintQuery(c, "site_id"),
		RoleID:   utils.ParseOptionalUintQuery(c, "role_id"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// GetUser handles GET /users/:id
//
//	@Summary	A directory user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	utils.APIResponse{data=dto.UserDTO}
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	user, err := h.get.Execute(c.Request.Context(), actor, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", user)
}

// CreateUser handles POST /users
//
//	@Summary	Create a directory user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateUserRequest	true	"User"
//	@Success	201		{object}	utils.APIResponse{data=dto.UserDTO}
//	@Failure	409		{object}	utils.APIResponse
//	@Router		/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	user, err := h.create.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, user, "User created successfully")
}

// UpdateUser handles PATCH /users/:id
//
//	@Summary	Update a directory user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"User ID"
//	@Param		body	body		UpdateUserRequest	true	"Changed fields"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update user", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.update.Execute(c.Request.Context(), req.ToCommand(actor, userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "No changes made"
	if result.Changed {
		message = "User updated successfully"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// DeleteUser handles DELETE /users/:id
//
//	@Summary	Delete a user with no tickets
//	@Tags		users
//	@Param		id	path	int	true	"User ID"
//	@Success	204
//	@Failure	409	{object}	utils.APIResponse
//	@Router		/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actor, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ImportUsers handles POST /users/import (multipart/form-data, field "file").
//
//	@Summary	Bulk create or update users from CSV or XLSX
//	@Tags		users
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"CSV or XLSX"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/users/import [post]
func (h *UserHandler) ImportUsers(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxImportBytes)

	header, err := c.FormFile(importFileField)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("an import file is required"))
		return
	}
	f, err := header.Open()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("could not read import file"))
		return
	}
	defer f.Close()

	result, err := h.importUsers.Execute(c.Request.Context(), usecases.ImportUsersCommand{
		Actor:    actor,
		Filename: header.Filename,
		Content:  f,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Import completed", result)
}
