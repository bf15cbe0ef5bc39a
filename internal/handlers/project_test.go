package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

func (suite *HandlerTestSuite) TestCreateProject_RequiresDescription() {
	owner := suite.createUser("a@x.com")

	w := suite.do(http.MethodPost, "/api/v1/projects", gin.H{"name": "P1", "owner_id": owner.ID})
	suite.assertError(w, http.StatusBadRequest, "BAD_REQUEST")
}

func (suite *HandlerTestSuite) TestProjectScenario() {
	user := suite.createUser("a@x.com")
	project := suite.createProject("P1", user.ID.String())
	task := suite.createTask("T1", user.ID.String())
	projectPath := "/api/v1/projects/" + project.ID.String()
	membership := projectPath + "/tasks/" + task.ID.String()

	w := suite.do(http.MethodPost, membership, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, membership, nil)
	suite.assertError(w, http.StatusConflict, "CONFLICT")

	w = suite.do(http.MethodGet, projectPath, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var loaded dto.ProjectDTO
	suite.decode(w, &loaded)
	suite.Require().Len(loaded.Tasks, 1)
	suite.Equal(task.ID, loaded.Tasks[0].ID)

	w = suite.do(http.MethodDelete, projectPath, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/tasks/"+task.ID.String(), nil)
	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")
}

func (suite *HandlerTestSuite) TestAddTask_DifferentOwners() {
	projectOwner := suite.createUser("a@x.com")
	taskOwner := suite.createUser("b@x.com")
	project := suite.createProject("P1", projectOwner.ID.String())
	task := suite.createTask("T1", taskOwner.ID.String())

	w := suite.do(http.MethodPost, "/api/v1/projects/"+project.ID.String()+"/tasks/"+task.ID.String(), nil)
	suite.assertError(w, http.StatusForbidden, "FORBIDDEN")

	w = suite.do(http.MethodPost, "/api/v1/projects/"+project.ID.String()+"/tasks/not-a-uuid", nil)
	suite.assertError(w, http.StatusBadRequest, "BAD_REQUEST")
}

func (suite *HandlerTestSuite) TestRemoveTaskFromProject() {
	owner := suite.createUser("a@x.com")
	project := suite.createProject("P1", owner.ID.String())
	task := suite.createTask("T1", owner.ID.String())
	membership := "/api/v1/projects/" + project.ID.String() + "/tasks/" + task.ID.String()

	w := suite.do(http.MethodDelete, membership, nil)
	suite.assertError(w, http.StatusConflict, "CONFLICT")

	suite.Require().Equal(http.StatusOK, suite.do(http.MethodPost, membership, nil).Code)

	w = suite.do(http.MethodDelete, membership, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var updated dto.ProjectDTO
	suite.decode(w, &updated)
	suite.Empty(updated.Tasks)
}

func (suite *HandlerTestSuite) TestUpdateAndListProjects() {
	owner := suite.createUser("a@x.com")
	project := suite.createProject("P1", owner.ID.String())
	suite.createProject("P2", owner.ID.String())

	w := suite.do(http.MethodPatch, "/api/v1/projects/"+project.ID.String(), gin.H{"name": "Renamed"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var updated dto.ProjectDTO
	suite.decode(w, &updated)
	suite.Equal("Renamed", updated.Name)
	suite.Equal("about P1", *updated.Description)

	w = suite.do(http.MethodGet, "/api/v1/projects", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var body struct {
		Projects   []dto.ProjectDTO         `json:"projects"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}
	suite.decode(w, &body)
	suite.Len(body.Projects, 2)
	suite.Equal(int64(2), body.Pagination.Total)

	w = suite.do(http.MethodGet, "/api/v1/projects/name/renamed", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var search struct {
		Projects []dto.ProjectDTO `json:"projects"`
	}
	suite.decode(w, &search)
	suite.Len(search.Projects, 1)
}
