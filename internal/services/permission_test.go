package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"botcafe/internal/testutil"
)

func TestPermissionCheck(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewPermissionService(gdb)

	creator := testutil.TestUser(t, gdb)
	viewer := testutil.TestUser(t, gdb)
	public := testutil.TestBot(t, gdb, creator.ID)
	unlisted := testutil.TestBot(t, gdb, creator.ID, testutil.WithUnlisted())

	assert.Equal(t, PermissionOwner, svc.Check(creator.ID, public.ID))
	assert.Equal(t, PermissionViewer, svc.Check(viewer.ID, public.ID))
	assert.Equal(t, PermissionViewer, svc.Check(0, public.ID))

	assert.Equal(t, PermissionOwner, svc.Check(creator.ID, unlisted.ID))
	assert.Equal(t, PermissionNone, svc.Check(viewer.ID, unlisted.ID))
	assert.Equal(t, PermissionNone, svc.Check(0, unlisted.ID))
}

func TestPermissionCheckMissingBot(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewPermissionService(gdb)

	assert.Equal(t, PermissionNone, svc.Check(1, 99999))
}
