package model

// Staff roles as stored in staff.role.
const (
	StaffRolePilot   = "PILOT"
	StaffRoleCopilot = "COPILOT"
	StaffRoleCrew    = "CREW"
)

// Staff represents a row in the `staff` table.  Staff members belong
// to an airline and are assigned to flights via the flight_staff join
// table.
//
// Fields:
//  ID        – primary key identifier.
//  FullName  – staff member's name.
//  Role      – PILOT, COPILOT or CREW.
//  Phone     – contact phone (nullable).
//  Email     – contact email (nullable).
//  AirlineID – employing airline (FK -> airlines.id).
type Staff struct {
	ID        uint64  // staff.id
	FullName  string  // staff.full_name
	Role      string  // staff.role
	Phone     *string // staff.phone (nullable)
	Email     *string // staff.email (nullable)
	AirlineID uint64  // staff.airline_id
}

// FlightStaff represents the `flight_staff` join table assigning a
// staff member to a specific flight with a role for that flight.
type FlightStaff struct {
	FlightNumber string // flight_staff.flight_number
	StaffID      uint64 // flight_staff.staff_id
	RoleOnFlight string // flight_staff.role_on_flight
}
