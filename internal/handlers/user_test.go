package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

func (suite *HandlerTestSuite) TestCreateUser() {
	w := suite.do(http.MethodPost, "/api/v1/users", gin.H{
		"email":     "A@x.com",
		"full_name": "Ada",
		"password":  "password123",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.NotContains(w.Body.String(), "password")

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("a@x.com", user.Email)
	suite.Equal("Ada", *user.FullName)
	suite.True(user.IsActive)
}

func (suite *HandlerTestSuite) TestCreateUser_DuplicateEmail() {
	suite.createUser("a@x.com")

	w := suite.do(http.MethodPost, "/api/v1/users", gin.H{"email": "a@x.com", "password": "password123"})
	body := suite.assertError(w, http.StatusConflict, "ALREADY_EXISTS")
	suite.Equal("a@x.com", body.Context["email"])
}

func (suite *HandlerTestSuite) TestCreateUser_InvalidBody() {
	w := suite.do(http.MethodPost, "/api/v1/users", gin.H{"email": "not-an-email", "password": "password123"})
	suite.assertError(w, http.StatusBadRequest, "BAD_REQUEST")

	w = suite.do(http.MethodPost, "/api/v1/users", gin.H{"email": "a@x.com", "password": "short"})
	suite.assertError(w, http.StatusBadRequest, "BAD_REQUEST")
}

func (suite *HandlerTestSuite) TestGetUser() {
	user := suite.createUser("a@x.com")

	w := suite.do(http.MethodGet, "/api/v1/users/"+user.ID.String(), nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/users/email/a@x.com", nil)
	suite.Equal(http.StatusOK, w.Code)
	var found dto.UserDTO
	suite.decode(w, &found)
	suite.Equal(user.ID, found.ID)

	w = suite.do(http.MethodGet, "/api/v1/users/"+uuid.NewString(), nil)
	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")

	w = suite.do(http.MethodGet, "/api/v1/users/not-a-uuid", nil)
	body := suite.assertError(w, http.StatusBadRequest, "BAD_REQUEST")
	suite.Equal("not-a-uuid", body.Context["id"])
}

func (suite *HandlerTestSuite) TestListUsers() {
	suite.createUser("a@x.com")
	suite.createUser("b@x.com")
	suite.createUser("c@x.com")

	w := suite.do(http.MethodGet, "/api/v1/users?page=2&limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var body struct {
		Users      []dto.UserDTO            `json:"users"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}
	suite.decode(w, &body)
	suite.Len(body.Users, 1)
	suite.Equal(utils.PaginationResponse{Page: 2, Limit: 2, Total: 3}, body.Pagination)
}

func (suite *HandlerTestSuite) TestUpdateUser() {
	user := suite.createUser("a@x.com")

	w := suite.do(http.MethodPatch, "/api/v1/users/"+user.ID.String(), gin.H{"full_name": "Grace", "is_active": false})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.UserDTO
	suite.decode(w, &updated)
	suite.Equal("Grace", *updated.FullName)
	suite.False(updated.IsActive)
}

func (suite *HandlerTestSuite) TestLogin() {
	suite.createUser("a@x.com")

	w := suite.do(http.MethodPost, "/api/v1/users/login", gin.H{"email": "a@x.com", "password": "password123"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/users/login", gin.H{"email": "a@x.com", "password": "wrong-password"})
	suite.assertError(w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func (suite *HandlerTestSuite) TestDeleteUser() {
	user := suite.createUser("a@x.com")
	task := suite.createTask("T1", user.ID.String())

	w := suite.do(http.MethodDelete, "/api/v1/users/"+user.ID.String(), nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/tasks/"+task.ID.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var reloaded dto.TaskDTO
	suite.decode(w, &reloaded)
	suite.Nil(reloaded.OwnerID)

	w = suite.do(http.MethodDelete, "/api/v1/users/"+user.ID.String(), nil)
	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")
}
