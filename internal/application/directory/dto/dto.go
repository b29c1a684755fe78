package dto

import (
	"time"

	"github.com/assistitk12/assistitk12/internal/domain/directory"
)

type UserDTO struct {
	ID                uint      `json:"id"`
	FirstName         string    `json:"first_name"`
	MiddleName        string    `json:"middle_name,omitempty"`
	LastName          string    `json:"last_name"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Status            string    `json:"status"`
	RmNum             string    `json:"rm_num,omitempty"`
	RoleID            uint      `json:"role_id"`
	RoleName          string    `json:"role_name,omitempty"`
	SiteID            uint      `json:"site_id"`
	SiteName          string    `json:"site_name,omitempty"`
	MustResetPassword bool      `json:"must_reset_password"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type RoleDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Reserved bool   `json:"reserved"`
}

type SiteDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	GUID    string `json:"guid"`
	CDS     string `json:"cds"`
	Code    string `json:"code"`
	Abbr    string `json:"abbr"`
	Address string `json:"address,omitempty"`
	Type    string `json:"type,omitempty"`
}

type TitleDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BulkUploadLogDTO struct {
	ID           uint      `json:"id"`
	Filename     string    `json:"filename"`
	UploadedAt   time.Time `json:"uploaded_at"`
	UploadedBy   uint      `json:"uploaded_by"`
	TotalRows    int       `json:"total_rows"`
	Added        int       `json:"added"`
	Updated      int       `json:"updated"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	RowErrors    []string  `json:"row_errors,omitempty"`
}

// Lookup names roles and sites when assembling user DTOs.
type Lookup struct {
	Roles map[uint]string
	Sites map[uint]string
}

func ToUserDTO(u *directory.User, l Lookup) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:                u.ID(),
		FirstName:         u.FirstName(),
		MiddleName:        u.MiddleName(),
		LastName:          u.LastName(),
		FullName:          u.FullName(),
		Email:             u.Email(),
		Status:            u.Status().String(),
		RmNum:             u.RmNum(),
		RoleID:            u.RoleID(),
		RoleName:          l.Roles[u.RoleID()],
		SiteID:            u.SiteID(),
		SiteName:          l.Sites[u.SiteID()],
		MustResetPassword: u.MustResetPassword(),
		CreatedAt:         u.CreatedAt(),
		UpdatedAt:         u.UpdatedAt(),
	}
}

func ToUserDTOs(users []*directory.User, l Lookup) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u, l))
	}
	return out
}

func ToRoleDTO(r *directory.Role) RoleDTO {
	return RoleDTO{ID: r.ID(), Name: r.Name(), Reserved: directory.IsReservedRole(r.ID())}
}

func ToSiteDTO(s *directory.Site) SiteDTO {
	d := s.Details()
	return SiteDTO{
		ID:      s.ID(),
		Name:    d.Name,
		GUID:    d.GUID,
		CDS:     d.CDS,
		Code:    d.Code,
		Abbr:    d.Abbr,
		Address: d.Address,
		Type:    d.Type,
	}
}

func ToTitleDTO(t *directory.Title) TitleDTO {
	return TitleDTO{ID: t.ID(), Name: t.Name()}
}

func ToBulkUploadLogDTO(l *directory.BulkUploadLog) BulkUploadLogDTO {
	return BulkUploadLogDTO{
		ID:           l.ID,
		Filename:     l.Filename,
		UploadedAt:   l.UploadedAt,
		UploadedBy:   l.UploadedBy,
		TotalRows:    l.TotalRows,
		Added:        l.Added,
		Updated:      l.Updated,
		Status:       string(l.Status),
		ErrorMessage: l.ErrorMessage,
		RowErrors:    l.RowErrors,
	}
}
