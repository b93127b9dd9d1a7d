package services_test

import (
	"testing"

	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/models"
	"github.com/bragboard/bragboard-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func adminFixtures(t *testing.T) (*gorm.DB, *services.AdminService, *services.ShoutOutService) {
	t.Helper()
	db := newTestDB(t)
	return db, services.NewAdminService(db, testConfig()), services.NewShoutOutService(db)
}

func TestStatsAggregation(t *testing.T) {
	db, admin, shoutouts := adminFixtures(t)
	ann := seedUser(t, db, "Ann", "a@x.com", "Eng")
	bob := seedUser(t, db, "Bob", "b@x.com", "Sales")
	eve := seedUser(t, db, "Eve", "e@x.com", "Eng")

	_, err := shoutouts.Create(ann.ID, "one", []uint{bob.ID})
	require.NoError(t, err)
	_, err = shoutouts.Create(ann.ID, "two", []uint{bob.ID, eve.ID})
	require.NoError(t, err)
	flagged, err := shoutouts.Create(bob.ID, "three", nil)
	require.NoError(t, err)
	require.NoError(t, shoutouts.Report(flagged.ID))

	stats, err := admin.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalShoutouts)

	require.NotEmpty(t, stats.TopGivers)
	assert.Equal(t, dto.NameCount{Name: "Ann", Count: 2}, stats.TopGivers[0])

	require.NotEmpty(t, stats.MostTagged)
	assert.Equal(t, dto.NameCount{Name: "Bob", Count: 2}, stats.MostTagged[0])

	assert.Equal(t, int64(2), stats.DepartmentStats["Eng"])
	assert.Equal(t, int64(1), stats.DepartmentStats["Sales"])

	require.Len(t, stats.ReportedPosts, 1)
	assert.Equal(t, "three", stats.ReportedPosts[0].Message)
	assert.Equal(t, "Bob", stats.ReportedPosts[0].Sender)
}

func TestStatsReportedPostSurvivesDeletedSender(t *testing.T) {
	db, admin, shoutouts := adminFixtures(t)
	ghost := seedUser(t, db, "Ghost", "g@x.com", "Ops")

	post, err := shoutouts.Create(ghost.ID, "haunted", nil)
	require.NoError(t, err)
	require.NoError(t, shoutouts.Report(post.ID))
	require.NoError(t, db.Delete(&models.User{}, ghost.ID).Error)

	stats, err := admin.Stats()
	require.NoError(t, err)
	require.Len(t, stats.ReportedPosts, 1)
	assert.Equal(t, "Deleted User", stats.ReportedPosts[0].Sender)
}

func TestDeleteShoutOutCascadesAndAudits(t *testing.T) {
	db, admin, shoutouts := adminFixtures(t)
	ann := seedUser(t, db, "Ann", "a@x.com", "Eng")
	bob := seedUser(t, db, "Bob", "b@x.com", "Sales")

	post, err := shoutouts.Create(ann.ID, "bye", []uint{bob.ID})
	require.NoError(t, err)
	_, err = shoutouts.ToggleReaction(post.ID, bob.ID, models.ReactionStar)
	require.NoError(t, err)
	_, err = shoutouts.AddComment(post.ID, bob.ID, "nice")
	require.NoError(t, err)

	require.NoError(t, admin.DeleteShoutOut(ann.ID, post.ID))

	for _, model := range []interface{}{
		&models.ShoutOut{}, &models.ShoutOutRecipient{}, &models.Reaction{}, &models.Comment{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	var log models.AdminLog
	require.NoError(t, db.First(&log).Error)
	assert.Equal(t, models.ActionDeletedShoutout, log.Action)
	assert.Equal(t, ann.ID, log.AdminID)
	require.NotNil(t, log.TargetID)
	assert.Equal(t, post.ID, *log.TargetID)
	assert.Equal(t, "shoutout", log.TargetType)
}

func TestDeleteShoutOutNotFound(t *testing.T) {
	_, admin, _ := adminFixtures(t)
	assert.ErrorIs(t, admin.DeleteShoutOut(1, 999), services.ErrShoutOutNotFound)
}

func TestDismissReport(t *testing.T) {
	db, admin, shoutouts := adminFixtures(t)
	ann := seedUser(t, db, "Ann", "a@x.com", "Eng")

	post, err := shoutouts.Create(ann.ID, "meh", nil)
	require.NoError(t, err)
	require.NoError(t, shoutouts.Report(post.ID))

	require.NoError(t, admin.DismissReport(post.ID))

	var reloaded models.ShoutOut
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.False(t, reloaded.IsReported)

	// Same policy as delete: a missing post is NotFound, not a no-op.
	assert.ErrorIs(t, admin.DismissReport(post.ID+999), services.ErrShoutOutNotFound)
}

func TestAdminCreateUser(t *testing.T) {
	db, admin, _ := adminFixtures(t)
	boss := seedUser(t, db, "Boss", "boss@x.com", "Mgmt")

	req := &dto.CreateUserRequest{Name: "New", Email: "n@x.com", Password: "pw", Department: "Eng"}
	user, err := admin.CreateUser(boss.ID, req, false)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, user.Role)

	_, err = admin.CreateUser(boss.ID, req, false)
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	flagged, err := admin.CreateUser(boss.ID, &dto.CreateUserRequest{
		Name: "Flag", Email: "f@x.com", Password: "pw", Department: "Eng",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, flagged.Role)

	secret, err := admin.CreateUser(boss.ID, &dto.CreateUserRequest{
		Name: "Sec", Email: "s@x.com", Password: "pw", Department: "Eng", AdminSecret: "SECRET2026",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, secret.Role)

	var actions []string
	require.NoError(t, db.Model(&models.AdminLog{}).Order("id").Pluck("action", &actions).Error)
	assert.Equal(t, []string{
		models.ActionCreatedEmployee,
		models.ActionCreatedAdmin,
		models.ActionCreatedAdmin,
	}, actions)
}

func TestDeleteUserForbidsSelf(t *testing.T) {
	db, admin, _ := adminFixtures(t)
	boss := seedUser(t, db, "Boss", "boss@x.com", "Mgmt")

	assert.ErrorIs(t, admin.DeleteUser(boss.ID, boss.ID), services.ErrSelfDelete)
	assert.ErrorIs(t, admin.DeleteUser(boss.ID, boss.ID+999), services.ErrUserNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db, admin, shoutouts := adminFixtures(t)
	boss := seedUser(t, db, "Boss", "boss@x.com", "Mgmt")
	doomed := seedUser(t, db, "Doomed", "d@x.com", "Eng")
	bob := seedUser(t, db, "Bob", "b@x.com", "Sales")

	// A post the doomed user sent, engaged with by Bob.
	sent, err := shoutouts.Create(doomed.ID, "from doomed", []uint{bob.ID})
	require.NoError(t, err)
	_, err = shoutouts.ToggleReaction(sent.ID, bob.ID, models.ReactionLike)
	require.NoError(t, err)
	_, err = shoutouts.AddComment(sent.ID, bob.ID, "thanks")
	require.NoError(t, err)

	// A post by Bob that the doomed user engaged with.
	theirs, err := shoutouts.Create(bob.ID, "from bob", []uint{doomed.ID})
	require.NoError(t, err)
	_, err = shoutouts.ToggleReaction(theirs.ID, doomed.ID, models.ReactionClap)
	require.NoError(t, err)
	_, err = shoutouts.AddComment(theirs.ID, doomed.ID, "cheers")
	require.NoError(t, err)

	require.NoError(t, admin.DeleteUser(boss.ID, doomed.ID))

	// The sent post and all its children are gone.
	var count int64
	require.NoError(t, db.Model(&models.ShoutOut{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Bob's post survives but the doomed user's traces on it do not.
	require.NoError(t, db.Model(&models.Reaction{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.ShoutOutRecipient{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var log models.AdminLog
	require.NoError(t, db.Where("action = ?", models.ActionDeletedUser).First(&log).Error)
	require.NotNil(t, log.TargetID)
	assert.Equal(t, doomed.ID, *log.TargetID)
}
