package directory

import (
	"context"

	"github.com/assistitk12/assistitk12/internal/application/directory/dto"
	"github.com/assistitk12/assistitk12/internal/application/directory/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
)

type ListUsersExecutor interface {
	Execute(ctx context.Context, query usecases.ListUsersQuery) (*usecases.ListUsersResult, error)
}

type GetUserExecutor interface {
	Execute(ctx context.Context, actor access.Actor, userID uint) (*dto.UserDTO, error)
}

type CreateUserExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*dto.UserDTO, error)
}

type UpdateUserExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateUserCommand) (*usecases.UpdateUserResult, error)
}

type DeleteUserExecutor interface {
	Execute(ctx context.Context, actor access.Actor, userID uint) error
}

type ImportUsersExecutor interface {
	Execute(ctx context.Context, cmd usecases.ImportUsersCommand) (*usecases.ImportUsersResult, error)
}

type RoleService interface {
	List(ctx context.Context, actor access.Actor) ([]dto.RoleDTO, error)
	Create(ctx context.Context, actor access.Actor, name string) (*dto.RoleDTO, error)
	Update(ctx context.Context, actor access.Actor, id uint, name string) (*dto.RoleDTO, error)
	Delete(ctx context.Context, actor access.Actor, id uint) error
}

type SiteService interface {
	List(ctx context.Context, search string, page, pageSize int) (*usecases.ListSitesResult, error)
	Create(ctx context.Context, actor access.Actor, d directory.SiteDetails) (*dto.SiteDTO, error)
	Update(ctx context.Context, actor access.Actor, id uint, d directory.SiteDetails) (*usecases.SiteUpdateResult, error)
	Delete(ctx context.Context, actor access.Actor, id uint) error
}

type TitleService interface {
	List(ctx context.Context) ([]dto.TitleDTO, error)
	Create(ctx context.Context, actor access.Actor, name string) (*dto.TitleDTO, error)
	Update(ctx context.Context, actor access.Actor, id uint, name string) (*usecases.TitleUpdateResult, error)
	Delete(ctx context.Context, actor access.Actor, id uint) error
}

var (
	_ RoleService  = (*usecases.RoleUseCases)(nil)
	_ SiteService  = (*usecases.SiteUseCases)(nil)
	_ TitleService = (*usecases.TitleUseCases)(nil)
)
