package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/assistitk12/assistitk12/internal/domain/access"
	"github.com/assistitk12/assistitk12/internal/domain/directory"
	vo "github.com/assistitk12/assistitk12/internal/domain/directory/valueobjects"
)

const strongPassword = "Str0ng!Password"

func testUser(t *testing.T, id, roleID, siteID uint, first, email string) *directory.User {
	t.Helper()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u, err := directory.ReconstructUser(id, directory.UserProfile{
		FirstName: first,
		LastName:  "Tester",
		Email:     email,
		RmNum:     "101",
		RoleID:    roleID,
		SiteID:    siteID,
		Status:    vo.UserStatusActive,
	}, "hashed:"+strongPassword, false, now, now)
	require.NoError(t, err)
	return u
}

func actorFor(roleID uint) access.Actor {
	return access.Actor{
		UserID:       1,
		RoleID:       roleID,
		SiteID:       1,
		Capabilities: access.NewCapabilitySet(access.DefaultRoleCapabilities[roleID]...),
	}
}

func testSite(id uint, name, cds string) *directory.Site {
	return directory.ReconstructSite(id, directory.SiteDetails{
		Name: name,
		GUID: "guid-" + cds,
		CDS:  cds,
		Code: "C" + cds,
		Abbr: "A" + cds,
	})
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }
