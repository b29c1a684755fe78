package mappers

import (
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	"github.com/assistitk12/assistitk12/internal/infrastructure/persistence/models"
)

func RoleToDomain(m *models.RoleModel) *directory.Role {
	if m == nil {
		return nil
	}
	return directory.ReconstructRole(m.ID, m.Name)
}

func RoleToModel(r *directory.Role) *models.RoleModel {
	return &models.RoleModel{ID: r.ID(), Name: r.Name()}
}

func SiteToDomain(m *models.SiteModel) *directory.Site {
	if m == nil {
		return nil
	}
	return directory.ReconstructSite(m.ID, directory.SiteDetails{
		Name:    m.Name,
		GUID:    m.GUID,
		CDS:     m.CDS,
		Code:    m.Code,
		Abbr:    m.Abbr,
		Address: m.Address,
		Type:    m.Type,
	})
}

func SiteToModel(s *directory.Site) *models.SiteModel {
	d := s.Details()
	return &models.SiteModel{
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

func TitleToDomain(m *models.TitleModel) *directory.Title {
	if m == nil {
		return nil
	}
	return directory.ReconstructTitle(m.ID, m.Name)
}

func TitleToModel(t *directory.Title) *models.TitleModel {
	return &models.TitleModel{ID: t.ID(), Name: t.Name()}
}

func BulkUploadLogToDomain(m *models.BulkUploadLogModel) *directory.BulkUploadLog {
	return &directory.BulkUploadLog{
		ID:           m.ID,
		Filename:     m.Filename,
		UploadedAt:   m.UploadedAt,
		UploadedBy:   m.UploadedBy,
		TotalRows:    m.TotalRows,
		Added:        m.Added,
		Updated:      m.Updated,
		Status:       directory.BulkUploadStatus(m.Status),
		ErrorMessage: m.ErrorMessage,
		RowErrors:    []string(m.RowErrors),
	}
}

func BulkUploadLogToModel(l *directory.BulkUploadLog) *models.BulkUploadLogModel {
	return &models.BulkUploadLogModel{
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
