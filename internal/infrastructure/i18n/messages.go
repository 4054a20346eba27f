package i18n

// Claves de mensajes usados por las exportaciones y la API.
const (
	KeyFieldID         = "userFields.id"
	KeyFieldName       = "userFields.name"
	KeyFieldEmail      = "userFields.email"
	KeyFieldRole       = "userFields.role"
	KeyFieldStatus     = "userFields.status"
	KeyFieldDepartment = "userFields.department"
	KeyFieldLocation   = "userFields.location"
	KeyFieldPhone      = "userFields.phone"
	KeyFieldCreatedAt  = "userFields.createdAt"
	KeyFieldLastLogin  = "userFields.lastLogin"

	KeyUserList     = "userManagement.userList"
	KeyUserDetails  = "userManagement.userDetails"
	KeyExportDate   = "common.exportDate"
	KeyAllRoles     = "userManagement.allRoles"
	KeyNotSpecified = "common.notSpecified"
)

var english = map[string]string{
	KeyFieldID:         "ID",
	KeyFieldName:       "Name",
	KeyFieldEmail:      "Email",
	KeyFieldRole:       "Role",
	KeyFieldStatus:     "Status",
	KeyFieldDepartment: "Department",
	KeyFieldLocation:   "Location",
	KeyFieldPhone:      "Phone",
	KeyFieldCreatedAt:  "Date Joined",
	KeyFieldLastLogin:  "Last Login",

	KeyUserList:     "User List",
	KeyUserDetails:  "User Details",
	KeyExportDate:   "Export Date",
	KeyAllRoles:     "All Roles",
	KeyNotSpecified: "Not specified",

	"roles.admin":   "Administrator",
	"roles.manager": "Manager",
	"roles.editor":  "Editor",
	"roles.viewer":  "Viewer",
	"roles.guest":   "Guest",

	"statuses.active":   "Active",
	"statuses.inactive": "Inactive",
	"statuses.pending":  "Pending",
}

var arabic = map[string]string{
	KeyFieldID:         "المعرف",
	KeyFieldName:       "الاسم",
	KeyFieldEmail:      "البريد الإلكتروني",
	KeyFieldRole:       "الدور",
	KeyFieldStatus:     "الحالة",
	KeyFieldDepartment: "القسم",
	KeyFieldLocation:   "الموقع",
	KeyFieldPhone:      "الهاتف",
	KeyFieldCreatedAt:  "تاريخ الانضمام",
	KeyFieldLastLogin:  "آخر تسجيل دخول",

	KeyUserList:     "قائمة المستخدمين",
	KeyUserDetails:  "تفاصيل المستخدم",
	KeyExportDate:   "تاريخ التصدير",
	KeyAllRoles:     "جميع الأدوار",
	KeyNotSpecified: "غير محدد",

	"roles.admin":   "مسؤول",
	"roles.manager": "مدير",
	"roles.editor":  "محرر",
	"roles.viewer":  "مشاهد",

	"statuses.active":   "نشط",
	"statuses.inactive": "غير نشط",
	"statuses.pending":  "قيد الانتظار",
}
