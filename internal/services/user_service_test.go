package services

import (
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

func (suite *ServiceTestSuite) TestCreateUser_ThenGetByEmail() {
	fullName := "Ada Lovelace"
	created, err := suite.users.Create(suite.ctx, CreateUserInput{
		Email:    "a@x.com",
		FullName: &fullName,
		Password: "password123",
	})
	suite.Require().NoError(err)
	suite.NotEqual(uuid.Nil, created.ID)
	suite.True(created.IsActive)
	suite.NotEqual("password123", created.PasswordHash)

	found, err := suite.users.GetByEmail(suite.ctx, "a@x.com")
	suite.Require().NoError(err)
	suite.Equal(created.ID, found.ID)
	suite.True(found.IsActive)
	suite.Equal(fullName, *found.FullName)
}

func (suite *ServiceTestSuite) TestCreateUser_NormalizesEmail() {
	created := suite.createUser("  Mixed.Case@Example.COM ")
	suite.Equal("mixed.case@example.com", created.Email)

	found, err := suite.users.GetByEmail(suite.ctx, "MIXED.case@example.com")
	suite.Require().NoError(err)
	suite.Equal(created.ID, found.ID)
}

func (suite *ServiceTestSuite) TestCreateUser_DuplicateEmail() {
	original := suite.createUser("a@x.com")

	_, err := suite.users.Create(suite.ctx, CreateUserInput{Email: "A@x.com", Password: "another-password"})
	suite.assertDomainError(err, ErrEmailAlreadyExists)

	var domainErr *apierrors.Error
	suite.Require().ErrorAs(err, &domainErr)
	suite.Equal(apierrors.CodeAlreadyExists, domainErr.Code)
	suite.Equal(apierrors.DomainUser, domainErr.Domain)

	after, err := suite.users.Get(suite.ctx, original.ID)
	suite.Require().NoError(err)
	suite.Equal(original.PasswordHash, after.PasswordHash)
	suite.True(original.UpdatedAt.Equal(after.UpdatedAt))

	_, total, err := suite.users.List(suite.ctx, 1, 20)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
}

func (suite *ServiceTestSuite) TestCreateUser_Validation() {
	_, err := suite.users.Create(suite.ctx, CreateUserInput{Email: "   ", Password: "password123"})
	suite.assertDomainError(err, ErrEmailRequired)

	_, err = suite.users.Create(suite.ctx, CreateUserInput{Email: "a@x.com", Password: "short"})
	suite.assertDomainError(err, ErrPasswordTooShort)
}

func (suite *ServiceTestSuite) TestGetUser_NotFound() {
	missing := uuid.New()
	_, err := suite.users.Get(suite.ctx, missing)
	suite.assertDomainError(err, ErrUserNotFound)

	var domainErr *apierrors.Error
	suite.Require().ErrorAs(err, &domainErr)
	suite.Equal(missing.String(), domainErr.Context["id"])

	_, err = suite.users.GetByEmail(suite.ctx, "nobody@x.com")
	suite.assertDomainError(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestListUsers_Paginates() {
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		suite.createUser(email)
	}

	page, total, err := suite.users.List(suite.ctx, 1, 2)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(page, 2)

	page, total, err = suite.users.List(suite.ctx, 2, 2)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(page, 1)
}

func (suite *ServiceTestSuite) TestUpdateUser() {
	user := suite.createUser("a@x.com")

	name := "Grace"
	inactive := false
	updated, err := suite.users.Update(suite.ctx, user.ID, UpdateUserInput{FullName: &name, IsActive: &inactive})
	suite.Require().NoError(err)
	suite.Equal("Grace", *updated.FullName)
	suite.False(updated.IsActive)
	suite.Equal(user.PasswordHash, updated.PasswordHash)
}

func (suite *ServiceTestSuite) TestUpdateUser_EmptyPatchKeepsUpdatedAt() {
	user := suite.createUser("a@x.com")

	updated, err := suite.users.Update(suite.ctx, user.ID, UpdateUserInput{})
	suite.Require().NoError(err)
	suite.True(user.UpdatedAt.Equal(updated.UpdatedAt))

	reloaded, err := suite.users.Get(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.True(user.UpdatedAt.Equal(reloaded.UpdatedAt))
}

func (suite *ServiceTestSuite) TestUpdateUser_PasswordChange() {
	user := suite.createUser("a@x.com")

	short := "short"
	_, err := suite.users.Update(suite.ctx, user.ID, UpdateUserInput{Password: &short})
	suite.assertDomainError(err, ErrPasswordTooShort)

	newPassword := "brand-new-password"
	_, err = suite.users.Update(suite.ctx, user.ID, UpdateUserInput{Password: &newPassword})
	suite.Require().NoError(err)

	_, err = suite.users.Authenticate(suite.ctx, "a@x.com", "password123")
	suite.assertDomainError(err, ErrInvalidCredentials)

	authed, err := suite.users.Authenticate(suite.ctx, "a@x.com", newPassword)
	suite.Require().NoError(err)
	suite.Equal(user.ID, authed.ID)
}

func (suite *ServiceTestSuite) TestUpdateUser_NotFound() {
	name := "x"
	_, err := suite.users.Update(suite.ctx, uuid.New(), UpdateUserInput{FullName: &name})
	suite.assertDomainError(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestAuthenticate() {
	user := suite.createUser("a@x.com")

	authed, err := suite.users.Authenticate(suite.ctx, "A@X.com", "password123")
	suite.Require().NoError(err)
	suite.Equal(user.ID, authed.ID)

	_, err = suite.users.Authenticate(suite.ctx, "a@x.com", "wrong-password")
	suite.assertDomainError(err, ErrInvalidCredentials)

	_, err = suite.users.Authenticate(suite.ctx, "nobody@x.com", "password123")
	suite.assertDomainError(err, ErrInvalidCredentials)

	inactive := false
	_, err = suite.users.Update(suite.ctx, user.ID, UpdateUserInput{IsActive: &inactive})
	suite.Require().NoError(err)

	_, err = suite.users.Authenticate(suite.ctx, "a@x.com", "password123")
	suite.assertDomainError(err, ErrUserInactive)
}

func (suite *ServiceTestSuite) TestRemoveUser_NullifiesOwnedTasks() {
	owner := suite.createUser("a@x.com")
	other := suite.createUser("b@x.com")

	owned := []uuid.UUID{
		suite.createTask("T1", owner.ID).ID,
		suite.createTask("T2", owner.ID).ID,
		suite.createTask("T3", owner.ID).ID,
	}
	kept := suite.createTask("other", other.ID)

	suite.Require().NoError(suite.users.Remove(suite.ctx, owner.ID))

	_, err := suite.users.Get(suite.ctx, owner.ID)
	suite.assertDomainError(err, ErrUserNotFound)

	for _, id := range owned {
		task, err := suite.tasks.Get(suite.ctx, id)
		suite.Require().NoError(err)
		suite.Nil(task.OwnerID)
	}

	task, err := suite.tasks.Get(suite.ctx, kept.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(task.OwnerID)
	suite.Equal(other.ID, *task.OwnerID)
}

func (suite *ServiceTestSuite) TestRemoveUser_DeletesProjectsAndTheirTasks() {
	owner := suite.createUser("a@x.com")
	project := suite.createProject("P1", owner.ID)
	inProject := suite.createTask("in project", owner.ID)
	loose := suite.createTask("loose", owner.ID)

	_, err := suite.projects.AddTask(suite.ctx, inProject.ID, project.ID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.users.Remove(suite.ctx, owner.ID))

	_, err = suite.projects.Get(suite.ctx, project.ID)
	suite.assertDomainError(err, ErrProjectNotFound)

	_, err = suite.tasks.Get(suite.ctx, inProject.ID)
	suite.assertDomainError(err, ErrTaskNotFound)

	task, err := suite.tasks.Get(suite.ctx, loose.ID)
	suite.Require().NoError(err)
	suite.Nil(task.OwnerID)
}

func (suite *ServiceTestSuite) TestRemoveUser_NotFound() {
	err := suite.users.Remove(suite.ctx, uuid.New())
	suite.assertDomainError(err, ErrUserNotFound)
}
