package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"attendance-tracker-backend/internal/authz"
	apperrors "attendance-tracker-backend/internal/errors"
	"attendance-tracker-backend/internal/mocks"
	"attendance-tracker-backend/internal/service"
	"attendance-tracker-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// EmployeeHandlerTestSuite defines the test suite for EmployeeHandler
type EmployeeHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockEmployeeServiceInterface
	handler     *EmployeeHandler
	httpSuite   *testutils.HTTPTestSuite
	identity    *authz.Identity
}

// SetupTest sets up the test suite
func (suite *EmployeeHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockEmployeeServiceInterface(suite.ctrl)
	suite.handler = NewEmployeeHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()
	suite.identity = adminIdentity()

	v1 := suite.httpSuite.Router.Group("/api/v1")
	v1.Use(identityMiddleware(&suite.identity))
	employees := v1.Group("/employees")
	{
		employees.POST("", suite.handler.CreateEmployee)
		employees.GET("", suite.handler.ListEmployees)
		employees.GET("/:id", suite.handler.GetEmployee)
		employees.PUT("/:id", suite.handler.UpdateEmployee)
		employees.DELETE("/:id", suite.handler.DeleteEmployee)
	}
}

// TearDownTest cleans up after each test
func (suite *EmployeeHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateEmployee tests creating an employee
func (suite *EmployeeHandlerTestSuite) TestCreateEmployee() {
	orgID := uuid.New()
	employeeID := uuid.New()
	requestBody := map[string]interface{}{
		"organization_id": orgID.String(),
		"name":            "Jane Jansen",
		"email":           "jane.jansen@acme.example",
		"department":      "assembly",
	}

	expectedResponse := &service.EmployeeResponse{
		ID:             employeeID,
		OrganizationID: orgID,
		Name:           "Jane Jansen",
		Email:          "jane.jansen@acme.example",
		Department:     "assembly",
	}

	suite.mockService.EXPECT().
		Create(authz.Scope{}, gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/employees", requestBody)

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)

	var response service.EmployeeResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), expectedResponse.Email, response.Email)
	assert.Equal(suite.T(), orgID, response.OrganizationID)
}

// TestCreateEmployeeManagerScope tests that a manager's scope reaches the service
func (suite *EmployeeHandlerTestSuite) TestCreateEmployeeManagerScope() {
	orgID := uuid.New()
	suite.identity = managerIdentity(orgID)

	requestBody := map[string]interface{}{
		"organization_id": orgID.String(),
		"name":            "Jane Jansen",
		"email":           "jane.jansen@acme.example",
	}

	suite.mockService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(scope authz.Scope, req *service.CreateEmployeeRequest) (*service.EmployeeResponse, error) {
			assert.NotNil(suite.T(), scope.OrganizationID)
			assert.Equal(suite.T(), orgID, *scope.OrganizationID)
			return &service.EmployeeResponse{ID: uuid.New(), OrganizationID: orgID, Name: req.Name, Email: req.Email}, nil
		}).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/employees", requestBody)

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)
}

// TestCreateEmployeeDuplicateEmail tests creating an employee with a taken email
func (suite *EmployeeHandlerTestSuite) TestCreateEmployeeDuplicateEmail() {
	requestBody := map[string]interface{}{
		"organization_id": uuid.New().String(),
		"name":            "Jane Jansen",
		"email":           "jane.jansen@acme.example",
	}

	suite.mockService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.ErrEmployeeExists).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/employees", requestBody)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "employee already exists")
}

// TestCreateEmployeeForbiddenForEmployee tests that the employee role cannot manage employees
func (suite *EmployeeHandlerTestSuite) TestCreateEmployeeForbiddenForEmployee() {
	suite.identity = employeeIdentity(uuid.New(), uuid.New())

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/employees", map[string]interface{}{"name": "x"})

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusForbidden, "requires role admin or manager")
}

// TestGetEmployee tests getting an employee by ID
func (suite *EmployeeHandlerTestSuite) TestGetEmployee() {
	employeeID := uuid.New()
	orgID := uuid.New()
	expectedResponse := &service.EmployeeResponse{
		ID:             employeeID,
		OrganizationID: orgID,
		Name:           "Jane Jansen",
		Email:          "jane.jansen@acme.example",
	}

	suite.mockService.EXPECT().
		GetByID(authz.Scope{}, employeeID).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", fmt.Sprintf("/api/v1/employees/%s", employeeID), nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.EmployeeResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), employeeID, response.ID)
}

// TestGetEmployeeInvalidID tests getting an employee with invalid ID
func (suite *EmployeeHandlerTestSuite) TestGetEmployeeInvalidID() {
	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/employees/not-a-uuid", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "invalid UUID")
}

// TestGetEmployeeNotFound tests getting a non-existent employee
func (suite *EmployeeHandlerTestSuite) TestGetEmployeeNotFound() {
	employeeID := uuid.New()

	suite.mockService.EXPECT().
		GetByID(gomock.Any(), employeeID).
		Return(nil, apperrors.ErrEmployeeNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", fmt.Sprintf("/api/v1/employees/%s", employeeID), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "employee not found")
}

// TestListEmployees tests listing employees
func (suite *EmployeeHandlerTestSuite) TestListEmployees() {
	orgID := uuid.New()
	expectedResponse := &service.EmployeeListResponse{
		Employees: []service.EmployeeResponse{
			{ID: uuid.New(), OrganizationID: orgID, Name: "Jane Jansen"},
			{ID: uuid.New(), OrganizationID: orgID, Name: "Piet de Vries"},
		},
		Total:    2,
		Page:     1,
		PageSize: 20,
	}

	suite.mockService.EXPECT().
		List(authz.Scope{}, 1, 20).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/employees", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.EmployeeListResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Len(suite.T(), response.Employees, 2)
	assert.Equal(suite.T(), int64(2), response.Total)
}

// TestUpdateEmployee tests updating an employee
func (suite *EmployeeHandlerTestSuite) TestUpdateEmployee() {
	employeeID := uuid.New()
	requestBody := map[string]interface{}{
		"name":       "Jane Jansen-Smit",
		"email":      "jane.jansen@acme.example",
		"department": "quality",
	}

	expectedResponse := &service.EmployeeResponse{
		ID:         employeeID,
		Name:       "Jane Jansen-Smit",
		Email:      "jane.jansen@acme.example",
		Department: "quality",
	}

	suite.mockService.EXPECT().
		Update(authz.Scope{}, employeeID, gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PUT", fmt.Sprintf("/api/v1/employees/%s", employeeID), requestBody)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.EmployeeResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), "quality", response.Department)
}

// TestDeleteEmployee tests deleting an employee
func (suite *EmployeeHandlerTestSuite) TestDeleteEmployee() {
	employeeID := uuid.New()

	suite.mockService.EXPECT().
		Delete(authz.Scope{}, employeeID).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", fmt.Sprintf("/api/v1/employees/%s", employeeID), nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestDeleteEmployeeOutsideScope tests that scope violations surface as 403
func (suite *EmployeeHandlerTestSuite) TestDeleteEmployeeOutsideScope() {
	orgID := uuid.New()
	suite.identity = managerIdentity(orgID)
	employeeID := uuid.New()

	suite.mockService.EXPECT().
		Delete(gomock.Any(), employeeID).
		Return(apperrors.ErrOrganizationScope).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", fmt.Sprintf("/api/v1/employees/%s", employeeID), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusForbidden, "outside the caller's organization")
}

// TestEmployeeHandlerTestSuite runs the test suite
func TestEmployeeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeHandlerTestSuite))
}
