package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/dto"
)

func (suite *HandlerTestSuite) TestCreateTask() {
	owner := suite.createUser("a@x.com")

	w := suite.do(http.MethodPost, "/api/v1/tasks", gin.H{
		"name":        "T1",
		"description": "first",
		"deadline":    "2025-01-01",
		"owner_id":    owner.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal("T1", task.Name)
	suite.Require().NotNil(task.Deadline)
	suite.Equal("2025-01-01", task.Deadline.String())
	suite.Equal(owner.ID, *task.OwnerID)
	suite.Nil(task.ProjectID)
}

func (suite *HandlerTestSuite) TestCreateTask_Errors() {
	owner := suite.createUser("a@x.com")

	w := suite.do(http.MethodPost, "/api/v1/tasks", gin.H{"name": "T1", "owner_id": uuid.NewString()})
	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")

	w = suite.do(http.MethodPost, "/api/v1/tasks", gin.H{"name": "", "owner_id": owner.ID})
	suite.assertError(w, http.StatusBadRequest, "BAD_REQUEST")

	w = suite.do(http.MethodPost, "/api/v1/tasks", gin.H{"name": "T1", "owner_id": owner.ID, "deadline": "tomorrow"})
	suite.assertError(w, http.StatusBadRequest, "BAD_REQUEST")
}

func (suite *HandlerTestSuite) TestSearchTasks() {
	owner := suite.createUser("a@x.com")
	suite.createTask("Write report", owner.ID.String())
	suite.createTask("groceries", owner.ID.String())

	w := suite.do(http.MethodGet, "/api/v1/tasks/name/REPORT", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var body struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	suite.decode(w, &body)
	suite.Require().Len(body.Tasks, 1)
	suite.Equal("Write report", body.Tasks[0].Name)
}

func (suite *HandlerTestSuite) TestUpdateTask_DeadlineProtocol() {
	owner := suite.createUser("a@x.com")
	w := suite.do(http.MethodPost, "/api/v1/tasks", gin.H{"name": "T1", "deadline": "2025-01-01", "owner_id": owner.ID})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var task dto.TaskDTO
	suite.decode(w, &task)
	path := "/api/v1/tasks/" + task.ID.String()

	w = suite.do(http.MethodPatch, path, gin.H{"deadline": "2030-01-01"})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &task)
	suite.Equal("2025-01-01", task.Deadline.String())

	w = suite.do(http.MethodPatch, path, gin.H{"set_deadline": true, "deadline": nil})
	suite.Require().Equal(http.StatusOK, w.Code)
	var cleared dto.TaskDTO
	suite.decode(w, &cleared)
	suite.Nil(cleared.Deadline)
}

func (suite *HandlerTestSuite) TestAssignOwner() {
	first := suite.createUser("a@x.com")
	second := suite.createUser("b@x.com")
	task := suite.createTask("T1", first.ID.String())
	path := "/api/v1/tasks/" + task.ID.String() + "/owner"

	w := suite.do(http.MethodPatch, path, gin.H{"owner_id": second.ID})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Equal(second.ID, *updated.OwnerID)

	w = suite.do(http.MethodPatch, path, gin.H{"owner_id": nil})
	suite.Require().Equal(http.StatusOK, w.Code)
	var unassigned dto.TaskDTO
	suite.decode(w, &unassigned)
	suite.Nil(unassigned.OwnerID)
}

func (suite *HandlerTestSuite) TestDeleteTask() {
	owner := suite.createUser("a@x.com")
	task := suite.createTask("T1", owner.ID.String())

	w := suite.do(http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/tasks/"+task.ID.String(), nil)
	suite.assertError(w, http.StatusNotFound, "NOT_FOUND")
}
