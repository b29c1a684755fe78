package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/application/banner/dto"
	"github.com/assistitk12/assistitk12/internal/application/banner/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

type BannerService interface {
	List(ctx context.Context, actor access.Actor, page, pageSize int) (*usecases.ListBannersResult, error)
	Create(ctx context.Context, actor access.Actor, name, content string) (*dto.BannerDTO, error)
	Edit(ctx context.Context, cmd usecases.EditBannerCommand) (*usecases.BannerResult, error)
	SetStatus(ctx context.Context, actor access.Actor, id uint, status string) (*usecases.BannerResult, error)
	Delete(ctx context.Context, actor access.Actor, id uint) error
	Active(ctx context.Context) ([]dto.ActiveBannerDTO, error)
}

var _ BannerService = (*usecases.BannerUseCases)(nil)

type BannerHandler struct {
	banners BannerService
	logger  logger.Interface
}

func NewBannerHandler(banners BannerService, logger logger.Interface) *BannerHandler {
	return &BannerHandler{banners: banners, logger: logger}
}

type BannerRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Content string `json:"content" binding:"required,max=20000"`
}

type BannerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Active Inactive"`
}

// ActiveBanners handles GET /banners/active. It is public so the login
// page can show it.
//
//	@Summary	Rendered active banner
//	@Tags		banners
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse
//	@Router		/banners/active [get]
func (h *BannerHandler) ActiveBanners(c *gin.Context) {
	banners, err := h.banners.Active(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if banners == nil {
		banners = []dto.ActiveBannerDTO{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", banners)
}

// ListBanners handles GET /banners
//
//	@Summary	All banners
//	@Tags		banners
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse{data=utils.ListResponse}
//	@Router		/banners [get]
func (h *BannerHandler) ListBanners(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	p := utils.ParsePagination(c)
	result, err := h.banners.List(c.Request.Context(), actor, p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Banners, result.Total, result.Page, result.PageSize)
}

// CreateBanner handles POST /banners
//
//	@Summary	Create an inactive banner
//	@Tags		banners
//	@Accept		json
//	@Param		body	body		BannerRequest	true	"Banner"
//	@Success	201		{object}	utils.APIResponse{data=dto.BannerDTO}
//	@Router		/banners [post]
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	b, err := h.banners.Create(c.Request.Context(), actor, req.Name, req.Content)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, b, "Banner created successfully")
}

// UpdateBanner handles PUT /banners/:id
//
//	@Summary	Edit a banner
//	@Tags		banners
//	@Accept		json
//	@Param		id		path		int				true	"Banner ID"
//	@Param		body	body		BannerRequest	true	"Banner"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/banners/{id} [put]
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "banner")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	result, err := h.banners.Edit(c.Request.Context(), usecases.EditBannerCommand{
		Actor:   actor,
		ID:      id,
		Name:    req.Name,
		Content: req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, changedMessage(result.Changed, "Banner"), result.Banner)
}

// SetBannerStatus handles PATCH /banners/:id/status
//
//	@Summary	Activate or deactivate a banner
//	@Tags		banners
//	@Accept		json
//	@Param		id		path		int					true	"Banner ID"
//	@Param		body	body		BannerStatusRequest	true	"Status"
//	@Success	200		{object}	utils.APIResponse
//	@Failure	409		{object}	utils.APIResponse
//	@Router		/banners/{id}/status [patch]
func (h *BannerHandler) SetBannerStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "banner")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req BannerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	result, err := h.banners.SetStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, changedMessage(result.Changed, "Banner"), result.Banner)
}

// DeleteBanner handles DELETE /banners/:id
//
//	@Summary	Delete a banner
//	@Tags		banners
//	@Param		id	path	int	true	"Banner ID"
//	@Success	204
//	@Router		/banners/{id} [delete]
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "banner")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.banners.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

func requireActor(c *gin.Context) (access.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
	}
	return actor, ok
}

func changedMessage(changed bool, entity string) string {
	if !changed {
		return "No changes made"
	}
	return entity + " updated successfully"
}
