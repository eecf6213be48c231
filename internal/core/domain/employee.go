package domain

// DriverProfile carries the driver-specific attributes of an employee.
type DriverProfile struct {
	ZoneName        string           `json:"zoneName,omitempty"`
	SalaryType      DriverSalaryType `json:"salaryType"`
	WalletAccountID string           `json:"walletAccountID,omitempty"` // Liability account owed to this driver
}

// Employee is a member of staff. Drivers additionally carry a
// DriverProfile used for commission resolution and wallet postings.
type Employee struct {
	EmployeeID string         `json:"employeeID"`
	Name       string         `json:"name"`
	IsDriver   bool           `json:"isDriver"`
	Driver     *DriverProfile `json:"driver,omitempty"`
	AuditFields
}
