package directory

import (
	"github.com/assistitk12/assistitk12/internal/application/directory/usecases"
	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
)

type CreateUserRequest struct {
	FirstName  string `json:"first_name" binding:"required,max=50"`
	MiddleName string `json:"middle_name" binding:"max=50"`
	LastName   string `json:"last_name" binding:"required,max=50"`
	Email      string `json:"email" binding:"required,email"`
	RmNum      string `json:"rm_num" binding:"max=20"`
	RoleID     uint   `json:"role_id" binding:"required,gt=0"`
	SiteID     uint   `json:"site_id" binding:"required,gt=0"`
	Status     string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Password   string `json:"password" binding:"required"`
}

func (r *CreateUserRequest) ToCommand(actor access.Actor) usecases.CreateUserCommand {
	return usecases.CreateUserCommand{
		Actor:      actor,
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		LastName:   r.LastName,
		Email:      r.Email,
		RmNum:      r.RmNum,
		RoleID:     r.RoleID,
		SiteID:     r.SiteID,
		Status:     r.Status,
		Password:   r.Password,
	}
}

// UpdateUserRequest is a partial update; nil fields are left unchanged.
type UpdateUserRequest struct {
	FirstName  *string `json:"first_name" binding:"omitempty,max=50"`
	MiddleName *string `json:"middle_name" binding:"omitempty,max=50"`
	LastName   *string `json:"last_name" binding:"omitempty,max=50"`
	Email      *string `json:"email" binding:"omitempty,email"`
	RmNum      *string `json:"rm_num" binding:"omitempty,max=20"`
	RoleID     *uint   `json:"role_id" binding:"omitempty,gt=0"`
	SiteID     *uint   `json:"site_id" binding:"omitempty,gt=0"`
	Status     *string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Password   *string `json:"password"`
}

func (r *UpdateUserRequest) ToCommand(actor access.Actor, userID uint) usecases.UpdateUserCommand {
	return usecases.UpdateUserCommand{
		Actor:      actor,
		UserID:     userID,
		FirstName:  r.FirstName,
		MiddleName: r.MiddleName,
		LastName:   r.LastName,
		Email:      r.Email,
		RmNum:      r.RmNum,
		RoleID:     r.RoleID,
		SiteID:     r.SiteID,
		Status:     r.Status,
		Password:   r.Password,
	}
}

type NameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type SiteRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	GUID    string `json:"guid" binding:"max=64"`
	CDS     string `json:"cds" binding:"max=20"`
	Code    string `json:"code" binding:"max=20"`
	Abbr    string `json:"abbr" binding:"max=20"`
	Address string `json:"address" binding:"max=255"`
	Type    string `json:"type" binding:"max=50"`
}

func (r *SiteRequest) ToDetails() directory.SiteDetails {
	return directory.SiteDetails{
		Name:    r.Name,
		GUID:    r.GUID,
		CDS:     r.CDS,
		Code:    r.Code,
		Abbr:    r.Abbr,
		Address: r.Address,
		Type:    r.Type,
	}
}
