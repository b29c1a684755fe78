package usecases

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
	"github.com/assistitk12/assistitk12/internal/shared/constants"
	"github.com/assistitk12/assistitk12/internal/shared/db"
	"github.com/assistitk12/assistitk12/internal/shared/errors"
	"github.com/assistitk12/assistitk12/internal/shared/logger"
)

// Import column names.
const (
	ColFirstName  = "first_name"
	ColMiddleName = "middle_name"
	ColLastName   = "last_name"
	ColEmail      = "email"
	ColRoleID     = "role_id"
	ColSiteName   = "site_name"
	ColRmNum      = "rm_num"
	ColStatus     = "status"
)

var requiredImportColumns = []string{ColFirstName, ColLastName, ColEmail, ColRoleID, ColSiteName, ColRmNum}

// RowReader parses an uploaded sheet into rows keyed by lower-cased header.
type RowReader interface {
	ReadRows(filename string, r io.Reader) ([]map[string]string, error)
}

type ImportUsersCommand struct {
	Actor    access.Actor
	Filename string
	Content  io.Reader
}

type ImportUsersResult struct {
	LogID   uint
	Total   int
	Added   int
	Updated int
}

type importRow struct {
	line    int
	profile directory.UserProfile
	site    string
}

type ImportUsersUseCase struct {
	userRepo  directory.UserRepository
	roleRepo  directory.RoleRepository
	siteRepo  directory.SiteRepository
	logRepo   directory.BulkUploadLogRepository
	reader    RowReader
	hasher    directory.PasswordHasher
	txManager db.Transactor
	cache     directory.AssignableUserCache
	logger    logger.Interface
}

func NewImportUsersUseCase(
	userRepo directory.UserRepository,
	roleRepo directory.RoleRepository,
	siteRepo directory.SiteRepository,
	logRepo directory.BulkUploadLogRepository,
	reader RowReader,
	hasher directory.PasswordHasher,
	txManager db.Transactor,
	cache directory.AssignableUserCache,
	logger logger.Interface,
) *ImportUsersUseCase {
	return &ImportUsersUseCase{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		siteRepo:  siteRepo,
		logRepo:   logRepo,
		reader:    reader,
		hasher:    hasher,
		txManager: txManager,
		cache:     cache,
		logger:    logger,
	}
}

// Execute validates every row, then upserts all of them by email in one
// transaction. Any invalid row rejects the whole file. Each attempt is
// recorded in the bulk upload log.
func (uc *ImportUsersUseCase) Execute(ctx context.Context, cmd ImportUsersCommand) (*ImportUsersResult, error) {
	uc.logger.Infow("executing import users use case", "filename", cmd.Filename, "user_id", cmd.Actor.UserID)

	if err := cmd.Actor.Require(access.ManageDirectory); err != nil {
		return nil, err
	}

	entry := directory.NewBulkUploadLog(cmd.Filename, cmd.Actor.UserID)

	raw, err := uc.reader.ReadRows(cmd.Filename, cmd.Content)
	if err != nil {
		return nil, uc.reject(ctx, entry, 0, fmt.Sprintf("could not read file: %v", err), nil)
	}
	if len(raw) == 0 {
		return nil, uc.reject(ctx, entry, 0, "file has no data rows", nil)
	}

	rows, rowErrs := parseImportRows(raw)
	if len(rowErrs) == 0 {
		rowErrs, err = uc.resolve(ctx, rows)
		if err != nil {
			uc.logger.Errorw("failed to resolve import references", "error", err)
			return nil, uc.reject(ctx, entry, len(raw), constants.ErrMsgStorageFailure, nil)
		}
	}
	if len(rowErrs) > 0 {
		return nil, uc.reject(ctx, entry, len(raw), rowErrs[0], rowErrs)
	}

	hash, err := uc.hasher.Hash(constants.DefaultImportPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash default password", "error", err)
		return nil, errors.NewInternalError("failed to hash password")
	}

	var added, updated int
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		emails := make([]string, 0, len(rows))
		for _, r := range rows {
			emails = append(emails, r.profile.Email)
		}
		existing, err := uc.userRepo.GetByEmails(txCtx, emails)
		if err != nil {
			return fmt.Errorf("failed to load existing users: %w", err)
		}
		byEmail := make(map[string]*directory.User, len(existing))
		for _, u := range existing {
			byEmail[u.Email()] = u
		}

		for _, r := range rows {
			if u, ok := byEmail[r.profile.Email]; ok {
				if u.ApplyImport(r.profile.RmNum, r.profile.RoleID, r.profile.SiteID) {
					if err := uc.userRepo.Update(txCtx, u); err != nil {
						return fmt.Errorf("row %d: failed to update user: %w", r.line, err)
					}
				}
				updated++
				continue
			}

			u, err := directory.NewUser(r.profile, hash)
			if err != nil {
				return errors.NewValidationError(fmt.Sprintf("row %d: %v", r.line, err))
			}
			if err := u.SetPasswordHash(hash, true); err != nil {
				return err
			}
			if err := uc.userRepo.Create(txCtx, u); err != nil {
				return fmt.Errorf("row %d: failed to create user: %w", r.line, err)
			}
			added++
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, uc.reject(ctx, entry, len(rows), err.Error(), nil)
		}
		uc.logger.Errorw("user import transaction failed", "filename", cmd.Filename, "error", err)
		return nil, uc.reject(ctx, entry, len(rows), constants.ErrMsgStorageFailure, nil)
	}

	entry.Succeed(len(rows), added, updated)
	uc.writeLog(ctx, entry)
	invalidateAssignable(ctx, uc.cache, uc.logger)

	uc.logger.Infow("users imported", "filename", cmd.Filename, "added", added, "updated", updated)

	return &ImportUsersResult{LogID: entry.ID, Total: len(rows), Added: added, Updated: updated}, nil
}

// reject records the failed attempt and returns the validation error.
func (uc *ImportUsersUseCase) reject(ctx context.Context, entry *directory.BulkUploadLog, total int, msg string, rowErrs []string) error {
	entry.Fail(total, msg, rowErrs)
	uc.writeLog(ctx, entry)
	uc.logger.Warnw("user import rejected", "filename", entry.Filename, "reason", msg, "row_errors", len(rowErrs))
	if msg == constants.ErrMsgStorageFailure {
		return errors.NewStorageError(msg)
	}
	return errors.NewValidationError(msg, rowErrs...)
}

func (uc *ImportUsersUseCase) writeLog(ctx context.Context, entry *directory.BulkUploadLog) {
	if err := uc.logRepo.Create(ctx, entry); err != nil {
		uc.logger.Errorw("failed to write bulk upload log", "filename", entry.Filename, "error", err)
	}
}

// resolve fills in site ids and checks that every role exists.
func (uc *ImportUsersUseCase) resolve(ctx context.Context, rows []*importRow) ([]string, error) {
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	knownRoles := make(map[uint]struct{}, len(roles))
	for _, r := range roles {
		knownRoles[r.ID()] = struct{}{}
	}

	names := make([]string, 0, len(rows))
	seen := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seen[r.site]; !ok {
			seen[r.site] = struct{}{}
			names = append(names, r.site)
		}
	}
	sites, err := uc.siteRepo.GetByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sites: %w", err)
	}

	var rowErrs []string
	for _, r := range rows {
		if _, ok := knownRoles[r.profile.RoleID]; !ok {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: role %d not found", r.line, r.profile.RoleID))
		}
		site, ok := sites[r.site]
		if !ok {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: site %q not found", r.line, r.site))
			continue
		}
		r.profile.SiteID = site.ID()
	}
	return rowErrs, nil
}

// parseImportRows checks the shape of every row. Line numbers count the
// header as line 1.
func parseImportRows(raw []map[string]string) ([]*importRow, []string) {
	rows := make([]*importRow, 0, len(raw))
	var rowErrs []string
	emails := make(map[string]int, len(raw))

	for i, rec := range raw {
		line := i + 2
		get := func(col string) string { return strings.TrimSpace(rec[col]) }

		var missing []string
		for _, col := range requiredImportColumns {
			if get(col) == "" {
				missing = append(missing, col)
			}
		}
		if len(missing) > 0 {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: missing %s", line, strings.Join(missing, ", ")))
			continue
		}

		roleID, err := strconv.ParseUint(get(ColRoleID), 10, 32)
		if err != nil || roleID == 0 {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: invalid role_id %q", line, get(ColRoleID)))
			continue
		}
		status, err := vo.ParseUserStatus(get(ColStatus))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		email, err := vo.NewEmail(get(ColEmail))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		if first, dup := emails[email.String()]; dup {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: email %s already appears on row %d", line, email, first))
			continue
		}
		emails[email.String()] = line

		rows = append(rows, &importRow{
			line: line,
			site: get(ColSiteName),
			profile: directory.UserProfile{
				FirstName:  normalizeName(get(ColFirstName)),
				MiddleName: normalizeName(get(ColMiddleName)),
				LastName:   normalizeName(get(ColLastName)),
				Email:      email.String(),
				RmNum:      get(ColRmNum),
				RoleID:     uint(roleID),
				Status:     status,
			},
		})
	}
	return rows, rowErrs
}

// normalizeName title-cases names typed entirely in one case and leaves
// mixed-case names such as "McKenzie" alone.
func normalizeName(s string) string {
	if s == strings.ToLower(s) || s == strings.ToUpper(s) {
		return cases.Title(language.English).String(s)
	}
	return s
}
