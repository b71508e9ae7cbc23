package app

import (
	"time"

	"go-shinsei/internal/directory"
	"go-shinsei/internal/domain"
	"go-shinsei/internal/settings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// seedDemoData loads the demo dataset on an empty database so the API is
// usable on first run. It never touches a database that already has users.
func seedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&directory.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	zap.L().Info("seeding demo data")

	return db.Transaction(func(tx *gorm.DB) error {
		admin := directory.User{
			ID:                   uuid.New(),
			Code:                 "a001",
			FullName:             "Admin Ito",
			Role:                 directory.RoleAdmin,
			Department:           "HQ",
			AnnualLeaveAllowance: 25,
		}
		salesManager := directory.User{
			ID:                   uuid.New(),
			Code:                 "m001",
			FullName:             "Mika Yamada",
			Role:                 directory.RoleManager,
			Department:           "Sales",
			ManagerID:            &admin.ID,
			AnnualLeaveAllowance: 22,
		}
		engManager := directory.User{
			ID:                   uuid.New(),
			Code:                 "m002",
			FullName:             "Ryo Watanabe",
			Role:                 directory.RoleManager,
			Department:           "Engineering",
			ManagerID:            &admin.ID,
			AnnualLeaveAllowance: 22,
		}
		users := []directory.User{
			admin,
			salesManager,
			engManager,
			{
				ID:                   uuid.New(),
				Code:                 "e001",
				FullName:             "Alice Tanaka",
				Role:                 directory.RoleEmployee,
				Department:           "Sales",
				ManagerID:            &salesManager.ID,
				AnnualLeaveAllowance: 20,
			},
			{
				ID:                   uuid.New(),
				Code:                 "e002",
				FullName:             "Bob Suzuki",
				Role:                 directory.RoleEmployee,
				Department:           "Engineering",
				ManagerID:            &engManager.ID,
				AnnualLeaveAllowance: 18,
			},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		leaveTypes := []settings.LeaveType{
			{Code: "paid", Label: "Paid", RequiresReason: false, CountsAgainstQuota: true},
			{Code: "sick", Label: "Sick", RequiresReason: true, CountsAgainstQuota: true},
			{Code: "half_day", Label: "Half-day", RequiresReason: false, CountsAgainstQuota: true},
			{Code: "special", Label: "Special", RequiresReason: true, CountsAgainstQuota: false},
		}
		if err := tx.Create(&leaveTypes).Error; err != nil {
			return err
		}

		holidays := []settings.Holiday{
			{Day: date(2025, 1, 1), Label: "New Year's Day"},
			{Day: date(2025, 2, 11), Label: "National Foundation Day"},
			{Day: date(2025, 4, 29), Label: "Showa Day"},
			{Day: date(2025, 5, 3), Label: "Constitution Day"},
		}
		if err := tx.Create(&holidays).Error; err != nil {
			return err
		}

		sales := "Sales"
		engineering := "Engineering"
		routes := []settings.ApprovalRoute{
			{Category: domain.CategoryLeave, Department: &sales, Steps: namedApprover(salesManager.ID)},
			{Category: domain.CategoryLeave, Department: &engineering, Steps: namedApprover(engManager.ID)},
			{Category: domain.CategoryLeave, Steps: domain.RouteSteps{{Type: domain.StepManager}}},
			{Category: domain.CategoryCorrection, Department: &sales, Steps: namedApprover(salesManager.ID)},
			{Category: domain.CategoryCorrection, Department: &engineering, Steps: namedApprover(engManager.ID)},
			{Category: domain.CategoryCorrection, Steps: domain.RouteSteps{{Type: domain.StepManager}}},
		}
		return tx.Create(&routes).Error
	})
}

func namedApprover(userID uuid.UUID) domain.RouteSteps {
	return domain.RouteSteps{{Type: domain.StepUser, UserID: userID.String()}}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
