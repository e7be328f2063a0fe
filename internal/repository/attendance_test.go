package repository

import (
	"testing"
	"time"

	"attendance-tracker-backend/internal/database/models"
	apperrors "attendance-tracker-backend/internal/errors"
	"attendance-tracker-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// AttendanceRepositoryTestSuite tests the AttendanceRepository
type AttendanceRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *AttendanceRepository
	orgRepo       *OrganizationRepository
	employeeRepo  *EmployeeRepository
	factories     *testutils.FactorySet
	org           *models.Organization
	employee      *models.Employee
}

// SetupSuite runs before all tests in the suite
func (suite *AttendanceRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewAttendanceRepository(suite.baseTestSuite.DB)
	suite.orgRepo = NewOrganizationRepository(suite.baseTestSuite.DB)
	suite.employeeRepo = NewEmployeeRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *AttendanceRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test and seeds an organization with one employee
func (suite *AttendanceRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.org = suite.factories.Organization.Create()
	suite.Require().NoError(suite.orgRepo.Create(suite.org))

	suite.employee = suite.factories.Employee.WithOrganization(suite.org.ID)
	suite.Require().NoError(suite.employeeRepo.Create(suite.employee))
}

// TearDownTest runs after each test
func (suite *AttendanceRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating an attendance record
func (suite *AttendanceRepositoryTestSuite) TestCreate() {
	record := suite.factories.Attendance.WithEmployee(suite.employee.ID)

	err := suite.repo.Create(record)

	suite.NoError(err)
	suite.NotZero(record.ID)
}

// TestCreateDuplicateDayReportsConflict tests that the unique index on
// (employee_id, date) surfaces as the attendance conflict error
func (suite *AttendanceRepositoryTestSuite) TestCreateDuplicateDayReportsConflict() {
	record1 := suite.factories.Attendance.WithEmployee(suite.employee.ID)
	suite.NoError(suite.repo.Create(record1))

	record2 := suite.factories.Attendance.WithEmployee(suite.employee.ID)
	record2.Date = record1.Date

	err := suite.repo.Create(record2)

	suite.Error(err)
	suite.ErrorIs(err, apperrors.ErrAttendanceExists)
	suite.True(apperrors.IsConflict(err))
}

// TestCreateSameDayDifferentEmployees tests that the daily key is per employee
func (suite *AttendanceRepositoryTestSuite) TestCreateSameDayDifferentEmployees() {
	other := suite.factories.Employee.WithOrganization(suite.org.ID)
	suite.Require().NoError(suite.employeeRepo.Create(other))

	record1 := suite.factories.Attendance.WithEmployee(suite.employee.ID)
	suite.NoError(suite.repo.Create(record1))

	record2 := suite.factories.Attendance.WithEmployee(other.ID)
	record2.Date = record1.Date

	suite.NoError(suite.repo.Create(record2))
}

// TestGetByEmployeeAndDate tests retrieving the daily record
func (suite *AttendanceRepositoryTestSuite) TestGetByEmployeeAndDate() {
	record := suite.factories.Attendance.WithEmployee(suite.employee.ID)
	suite.NoError(suite.repo.Create(record))

	// Any timestamp within the day resolves to the same record
	lookup := record.Date.Add(14*time.Hour + 30*time.Minute)
	retrieved, err := suite.repo.GetByEmployeeAndDate(suite.employee.ID, lookup)

	suite.NoError(err)
	suite.Equal(record.ID, retrieved.ID)
	suite.NotNil(retrieved.CheckIn)
}

// TestGetByEmployeeAndDateNotFound tests the empty daily slot
func (suite *AttendanceRepositoryTestSuite) TestGetByEmployeeAndDateNotFound() {
	record, err := suite.repo.GetByEmployeeAndDate(suite.employee.ID, time.Now())

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(record)
}

// TestUpdateSetsCheckOut tests closing an open record
func (suite *AttendanceRepositoryTestSuite) TestUpdateSetsCheckOut() {
	record := suite.factories.Attendance.WithEmployee(suite.employee.ID)
	suite.NoError(suite.repo.Create(record))

	checkOut := record.CheckIn.Add(8 * time.Hour)
	record.CheckOut = &checkOut

	suite.NoError(suite.repo.Update(record))

	updated, err := suite.repo.GetByEmployeeAndDate(suite.employee.ID, record.Date)
	suite.NoError(err)
	suite.NotNil(updated.CheckOut)
}

// TestListByDateRange tests the inclusive date-range filter
func (suite *AttendanceRepositoryTestSuite) TestListByDateRange() {
	days := []time.Time{
		time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		record := suite.factories.Attendance.WithEmployee(suite.employee.ID)
		record.Date = day
		suite.NoError(suite.repo.Create(record))
	}

	from := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	records, total, err := suite.repo.List(AttendanceFilter{From: &from, To: &to}, 10, 0)

	suite.NoError(err)
	suite.Len(records, 2)
	suite.Equal(int64(2), total)
	// Newest date first
	suite.Equal(models.DateOf(days[2]), models.DateOf(records[0].Date))
	suite.Equal(models.DateOf(days[1]), models.DateOf(records[1].Date))
}

// TestListByOrganizationJoinsEmployees tests the organization filter join
func (suite *AttendanceRepositoryTestSuite) TestListByOrganizationJoinsEmployees() {
	otherOrg := suite.factories.Organization.Create()
	suite.Require().NoError(suite.orgRepo.Create(otherOrg))
	outsider := suite.factories.Employee.WithOrganization(otherOrg.ID)
	suite.Require().NoError(suite.employeeRepo.Create(outsider))

	suite.NoError(suite.repo.Create(suite.factories.Attendance.WithEmployee(suite.employee.ID)))
	suite.NoError(suite.repo.Create(suite.factories.Attendance.WithEmployee(outsider.ID)))

	records, total, err := suite.repo.List(AttendanceFilter{OrganizationID: &suite.org.ID}, 10, 0)

	suite.NoError(err)
	suite.Len(records, 1)
	suite.Equal(int64(1), total)
	suite.Equal(suite.employee.ID, records[0].EmployeeID)
}

// TestListByEmployee tests the employee filter
func (suite *AttendanceRepositoryTestSuite) TestListByEmployee() {
	other := suite.factories.Employee.WithOrganization(suite.org.ID)
	suite.Require().NoError(suite.employeeRepo.Create(other))

	suite.NoError(suite.repo.Create(suite.factories.Attendance.WithEmployee(suite.employee.ID)))
	suite.NoError(suite.repo.Create(suite.factories.Attendance.WithEmployee(other.ID)))

	records, total, err := suite.repo.List(AttendanceFilter{EmployeeID: &suite.employee.ID}, 10, 0)

	suite.NoError(err)
	suite.Len(records, 1)
	suite.Equal(int64(1), total)
	suite.Equal(suite.employee.ID, records[0].EmployeeID)
}

// TestListByDate tests the single-day listing used by summary and roster
func (suite *AttendanceRepositoryTestSuite) TestListByDate() {
	otherOrg := suite.factories.Organization.Create()
	suite.Require().NoError(suite.orgRepo.Create(otherOrg))
	outsider := suite.factories.Employee.WithOrganization(otherOrg.ID)
	suite.Require().NoError(suite.employeeRepo.Create(outsider))

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	mine := suite.factories.Attendance.WithEmployee(suite.employee.ID)
	mine.Date = day
	suite.NoError(suite.repo.Create(mine))

	theirs := suite.factories.Attendance.Absent(outsider.ID, day)
	suite.NoError(suite.repo.Create(theirs))

	// Unscoped sees both organizations
	records, err := suite.repo.ListByDate(day, nil)
	suite.NoError(err)
	suite.Len(records, 2)

	// Organization-scoped sees only its own employees
	records, err = suite.repo.ListByDate(day, &suite.org.ID)
	suite.NoError(err)
	suite.Len(records, 1)
	suite.Equal(suite.employee.ID, records[0].EmployeeID)
}

// Run the test suite
func TestAttendanceRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceRepositoryTestSuite))
}
