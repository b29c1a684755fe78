package models

const (
	TableUsers          = "users"
	TableRoles          = "roles"
	TableSites          = "sites"
	TableTitles         = "titles"
	TableTickets        = "tickets"
	TableComments       = "ticket_comments"
	TableAttachments    = "ticket_attachments"
	TableBanners        = "banner_notifications"
	TableOrganization   = "organization"
	TableBulkUploadLogs = "bulk_upload_logs"
)
