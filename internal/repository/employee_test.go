package repository

import (
	"testing"

	"attendance-tracker-backend/internal/database/models"
	"attendance-tracker-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// EmployeeRepositoryTestSuite tests the EmployeeRepository
type EmployeeRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *EmployeeRepository
	orgRepo       *OrganizationRepository
	factories     *testutils.FactorySet
	org           *models.Organization
}

// SetupSuite runs before all tests in the suite
func (suite *EmployeeRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewEmployeeRepository(suite.baseTestSuite.DB)
	suite.orgRepo = NewOrganizationRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *EmployeeRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test and seeds the parent organization
func (suite *EmployeeRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.org = suite.factories.Organization.Create()
	suite.Require().NoError(suite.orgRepo.Create(suite.org))
}

// TearDownTest runs after each test
func (suite *EmployeeRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new employee
func (suite *EmployeeRepositoryTestSuite) TestCreate() {
	employee := suite.factories.Employee.WithOrganization(suite.org.ID)

	err := suite.repo.Create(employee)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, employee.ID)
	suite.Equal(suite.org.ID, employee.OrganizationID)
}

// TestCreateDuplicateEmail tests that the unique index on email rejects duplicates
func (suite *EmployeeRepositoryTestSuite) TestCreateDuplicateEmail() {
	employee1 := suite.factories.Employee.WithOrganization(suite.org.ID)
	employee1.Email = "jane.jansen@acme.example"
	suite.NoError(suite.repo.Create(employee1))

	employee2 := suite.factories.Employee.WithOrganization(suite.org.ID)
	employee2.Email = "jane.jansen@acme.example"

	err := suite.repo.Create(employee2)
	suite.Error(err)
}

// TestGetByID tests retrieving an employee by ID
func (suite *EmployeeRepositoryTestSuite) TestGetByID() {
	employee := suite.factories.Employee.WithOrganization(suite.org.ID)
	suite.NoError(suite.repo.Create(employee))

	retrieved, err := suite.repo.GetByID(employee.ID)

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal(employee.ID, retrieved.ID)
	suite.Equal(employee.Email, retrieved.Email)
}

// TestGetByIDNotFound tests retrieving a non-existent employee
func (suite *EmployeeRepositoryTestSuite) TestGetByIDNotFound() {
	employee, err := suite.repo.GetByID(uuid.New())

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(employee)
}

// TestGetByEmail tests retrieving an employee by email
func (suite *EmployeeRepositoryTestSuite) TestGetByEmail() {
	employee := suite.factories.Employee.WithOrganization(suite.org.ID)
	suite.NoError(suite.repo.Create(employee))

	retrieved, err := suite.repo.GetByEmail(employee.Email)

	suite.NoError(err)
	suite.Equal(employee.ID, retrieved.ID)
}

// TestListInOrganization tests that the organization filter narrows the listing
func (suite *EmployeeRepositoryTestSuite) TestListInOrganization() {
	otherOrg := suite.factories.Organization.Create()
	suite.Require().NoError(suite.orgRepo.Create(otherOrg))

	for i := 0; i < 3; i++ {
		suite.NoError(suite.repo.Create(suite.factories.Employee.WithOrganization(suite.org.ID)))
	}
	suite.NoError(suite.repo.Create(suite.factories.Employee.WithOrganization(otherOrg.ID)))

	employees, total, err := suite.repo.List(&suite.org.ID, 10, 0)

	suite.NoError(err)
	suite.Len(employees, 3)
	suite.Equal(int64(3), total)
	for _, employee := range employees {
		suite.Equal(suite.org.ID, employee.OrganizationID)
	}
}

// TestListAcrossOrganizations tests listing without an organization filter
func (suite *EmployeeRepositoryTestSuite) TestListAcrossOrganizations() {
	otherOrg := suite.factories.Organization.Create()
	suite.Require().NoError(suite.orgRepo.Create(otherOrg))

	suite.NoError(suite.repo.Create(suite.factories.Employee.WithOrganization(suite.org.ID)))
	suite.NoError(suite.repo.Create(suite.factories.Employee.WithOrganization(otherOrg.ID)))

	employees, total, err := suite.repo.List(nil, 10, 0)

	suite.NoError(err)
	suite.Len(employees, 2)
	suite.Equal(int64(2), total)
}

// TestAllByOrganization tests the unpaginated roster listing
func (suite *EmployeeRepositoryTestSuite) TestAllByOrganization() {
	names := []string{"Carla", "Anna", "Bram"}
	for _, name := range names {
		employee := suite.factories.Employee.WithOrganization(suite.org.ID)
		employee.Name = name
		suite.NoError(suite.repo.Create(employee))
	}

	employees, err := suite.repo.AllByOrganization(&suite.org.ID)

	suite.NoError(err)
	suite.Len(employees, 3)
	suite.Equal("Anna", employees[0].Name)
	suite.Equal("Bram", employees[1].Name)
	suite.Equal("Carla", employees[2].Name)
}

// TestUpdate tests updating an employee
func (suite *EmployeeRepositoryTestSuite) TestUpdate() {
	employee := suite.factories.Employee.WithOrganization(suite.org.ID)
	suite.NoError(suite.repo.Create(employee))

	employee.Department = "quality"

	suite.NoError(suite.repo.Update(employee))

	updated, err := suite.repo.GetByID(employee.ID)
	suite.NoError(err)
	suite.Equal("quality", updated.Department)
}

// TestDeleteCascadesAttendance tests that deleting an employee removes their records
func (suite *EmployeeRepositoryTestSuite) TestDeleteCascadesAttendance() {
	employee := suite.factories.Employee.WithOrganization(suite.org.ID)
	suite.NoError(suite.repo.Create(employee))

	attendanceRepo := NewAttendanceRepository(suite.baseTestSuite.DB)
	record := suite.factories.Attendance.WithEmployee(employee.ID)
	suite.NoError(attendanceRepo.Create(record))

	suite.NoError(suite.repo.Delete(employee.ID))

	_, err := suite.repo.GetByID(employee.ID)
	suite.Equal(gorm.ErrRecordNotFound, err)

	_, err = attendanceRepo.GetByEmployeeAndDate(employee.ID, record.Date)
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// Run the test suite
func TestEmployeeRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeRepositoryTestSuite))
}
