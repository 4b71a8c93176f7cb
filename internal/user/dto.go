package user

import (
	errors "github.com/frahmantamala/loanlink/internal"
	"github.com/frahmantamala/loanlink/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/user"
)

var knownRoles = []string{
	userDatamodel.RoleBorrower,
	userDatamodel.RoleManager,
	userDatamodel.RoleAdmin,
}

// UpsertDTO is the wire payload for the login upsert. Role is optional; an
// empty role means the borrower default.
type UpsertDTO struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

func (d *UpsertDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("email", d.Email).Required().Email()
	validator.Field("role", d.Role).OneOf(knownRoles, errors.ErrCodeInvalidRole)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// UpdateRoleDTO is the wire payload for the admin role patch.
type UpdateRoleDTO struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (d *UpdateRoleDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("email", d.Email).Required().Email()
	validator.Field("role", d.Role).Required().OneOf(knownRoles, errors.ErrCodeInvalidRole)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// RoleResponse is the body of GET /user/role.
type RoleResponse struct {
	Role string `json:"role"`
}
