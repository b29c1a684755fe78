package directory

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/interfaces/http/middleware"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
	"github.com/assistitk12/assistitk12/internal/shared/utils"
)

// CatalogHandler serves roles, sites and issue titles.
type CatalogHandler struct {
	roles  RoleService
	sites  SiteService
	titles TitleService
	logger logger.Interface
}

func NewCatalogHandler(roles RoleService, sites SiteService, titles TitleService, logger logger.Interface) *CatalogHandler {
	return &CatalogHandler{roles: roles, sites: sites, titles: titles, logger: logger}
}

// ListRoles handles GET /roles
//
//	@Summary	Roles
//	@Tags		directory
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse
//	@Router		/roles [get]
func (h *CatalogHandler) ListRoles(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	roles, err := h.roles.List(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", roles)
}

// CreateRole handles POST /roles
//
//	@Summary	Create a role
//	@Tags		directory
//	@Accept		json
//	@Param		body	body		NameRequest	true	"Role"
//	@Success	201		{object}	utils.APIResponse
//	@Router		/roles [post]
func (h *CatalogHandler) CreateRole(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	role, err := h.roles.Create(c.Request.Context(), actor, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, role, "Role created successfully")
}

// UpdateRole handles PUT /roles/:id
//
//	@Summary	Rename a role
//	@Tags		directory
//	@Accept		json
//	@Param		id		path		int			true	"Role ID"
//	@Param		body	body		NameRequest	true	"Role"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/roles/{id} [put]
func (h *CatalogHandler) UpdateRole(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	role, err := h.roles.Update(c.Request.Context(), actor, id, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Role updated successfully", role)
}

// DeleteRole handles DELETE /roles/:id
//
//	@Summary	Delete an unused role
//	@Tags		directory
//	@Param		id	path	int	true	"Role ID"
//	@Success	204
//	@Router		/roles/{id} [delete]
func (h *CatalogHandler) DeleteRole(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.roles.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListSites handles GET /sites
//
//	@Summary	Sites
//	@Tags		directory
//	@Produce	json
//	@Param		search		query		string	false	"Name filter"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse}
//	@Router		/sites [get]
func (h *CatalogHandler) ListSites(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.sites.List(c.Request.Context(), strings.TrimSpace(c.Query("search")), p.Page, p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Sites, result.Total, result.Page, result.PageSize)
}

// CreateSite handles POST /sites
//
//	@Summary	Create a site
//	@Tags		directory
//	@Accept		json
//	@Param		body	body		SiteRequest	true	"Site"
//	@Success	201		{object}	utils.APIResponse
//	@Router		/sites [post]
func (h *CatalogHandler) CreateSite(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req SiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	site, err := h.sites.Create(c.Request.Context(), actor, req.ToDetails())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, site, "Site created successfully")
}

// UpdateSite handles PUT /sites/:id
//
//	@Summary	Update a site
//	@Tags		directory
//	@Accept		json
//	@Param		id		path		int			true	"Site ID"
//	@Param		body	body		SiteRequest	true	"Site"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/sites/{id} [put]
func (h *CatalogHandler) UpdateSite(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "site")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req SiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	result, err := h.sites.Update(c.Request.Context(), actor, id, req.ToDetails())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, changedMessage(result.Changed, "Site"), result.Site)
}

// DeleteSite handles DELETE /sites/:id
//
//	@Summary	Delete a site with no users or tickets
//	@Tags		directory
//	@Param		id	path	int	true	"Site ID"
//	@Success	204
//	@Router		/sites/{id} [delete]
func (h *CatalogHandler) DeleteSite(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "site")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.sites.Delete(c.Request.Context(), actor, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListTitles handles GET /titles
//
//	@Summary	Issue titles
//	@Tags		directory
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse
//	@Router		/titles [get]
func (h *CatalogHandler) ListTitles(c *gin.Context) {
	titles, err := h.titles.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", titles)
}

// CreateTitle handles POST /titles
//
//	@Summary	Create an issue title
//	@Tags		directory
//	@Accept		json
//	@Param		body	body		NameRequest	true	"Title"
//	@Success	201		{object}	utils.APIResponse
//	@Router		/titles [post]
func (h *CatalogHandler) CreateTitle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	title, err := h.titles.Create(c.Request.Context(), actor, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, title, "Title created successfully")
}

// UpdateTitle handles PUT /titles/:id
//
//	@Summary	Rename an issue title
//	@Tags		directory
//	@Accept		json
//	@Param		id		path		int			true	"Title ID"
//	@Param		body	body		NameRequest	true	"Title"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/titles/{id} [put]
func (h *CatalogHandler) UpdateTitle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "title")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	result, err := h.titles.Update(c.Request.Context(), actor, id, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, changedMessage(result.Changed, "Title"), result.Title)
}

// DeleteTitle handles DELETE /titles/:id
//
//	@Summary	Delete an unused issue title
//	@Tags		directory
//	@Param		id	path	int	true	"Title ID"
//	@Success	204
//	@Router		/titles/{id} [delete]
func (h *CatalogHandler) DeleteTitle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, err := utils.ParseUintParam(c, "id", "title")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.titles.Delete(c.Request.Context(), actor, id); err != nil {
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
