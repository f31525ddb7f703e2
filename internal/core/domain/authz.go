package domain

// Operation identifies a guarded action. Every route that changes or reads
// protected state maps to exactly one Operation.
type Operation string

const (
	OpAppointmentList      Operation = "appointment.list"
	OpAppointmentDetail    Operation = "appointment.detail"
	OpAppointmentCreate    Operation = "appointment.create"
	OpAppointmentEdit      Operation = "appointment.edit"
	OpAppointmentDelete    Operation = "appointment.delete"
	OpConsultationRequest  Operation = "consultation.request"
	OpConsultationForm     Operation = "consultation.form"
	OpConsultationSchedule Operation = "consultation.schedule"
	OpProfileComplete      Operation = "profile.complete"
	OpProfileView          Operation = "profile.view"
	OpProfileUpdate        Operation = "profile.update"
	OpInboxRead            Operation = "inbox.read"
	OpDoctorLookup         Operation = "doctor.lookup"
	OpPatientAdmin         Operation = "patient.admin"
	OpDoctorAdmin          Operation = "doctor.admin"
	OpPatientDashboard     Operation = "dashboard.patient"
	OpDoctorDashboard      Operation = "dashboard.doctor"
	OpAdminDashboard       Operation = "dashboard.admin"
)

// operationRoles is the single (operation, role) -> allow table. Role checks
// happen here and nowhere else; handlers never branch on the role string.
// Doctor operations are deliberately unscoped: any doctor may edit or delete
// any appointment, not only their own.
var operationRoles = map[Operation][]Role{
	OpAppointmentList:      {RoleAdmin, RoleDoctor, RolePatient},
	OpAppointmentDetail:    {RoleAdmin, RoleDoctor, RolePatient},
	OpAppointmentCreate:    {RoleDoctor},
	OpAppointmentEdit:      {RoleDoctor},
	OpAppointmentDelete:    {RoleDoctor},
	OpConsultationRequest:  {RolePatient},
	OpConsultationForm:     {RolePatient},
	OpConsultationSchedule: {RoleDoctor},
	OpProfileComplete:      {RolePatient},
	OpProfileView:          {RoleAdmin, RoleDoctor, RolePatient},
	OpProfileUpdate:        {RoleAdmin, RoleDoctor, RolePatient},
	OpInboxRead:            {RoleAdmin, RoleDoctor, RolePatient},
	OpDoctorLookup:         {RolePatient},
	OpPatientAdmin:         {RoleAdmin},
	OpDoctorAdmin:          {RoleAdmin},
	OpPatientDashboard:     {RolePatient},
	OpDoctorDashboard:      {RoleDoctor},
	OpAdminDashboard:       {RoleAdmin},
}

// Allowed reports whether role may perform op. Unknown operations and unknown
// roles are denied.
func Allowed(role Role, op Operation) bool {
	for _, r := range operationRoles[op] {
		if r == role {
			return true
		}
	}
	return false
}
