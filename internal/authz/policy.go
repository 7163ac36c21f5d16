package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// grants is the static (role, resource, action) matrix. Admin is not listed:
// admin is granted unconditionally by the evaluator. Parents never appear for
// classroom or user management, employees never for payment or user
// management.
var grants = [][3]string{
	{RoleParent, ResourceChild, ActionRead},
	{RoleParent, ResourceAttendance, ActionRead},
	{RoleParent, ResourceActivity, ActionRead},
	{RoleParent, ResourceMedicalAlert, ActionRead},
	{RoleParent, ResourcePayment, ActionRead},
	{RoleParent, ResourcePayment, ActionPay},
	{RoleParent, ResourceNotification, ActionRead},
	{RoleParent, ResourceNotification, ActionUpdate},

	{RoleEmployee, ResourceChild, ActionRead},
	{RoleEmployee, ResourceChild, ActionUpdate},
	{RoleEmployee, ResourceClassroom, ActionRead},
	{RoleEmployee, ResourceClassroom, ActionUpdate},
	{RoleEmployee, ResourceAttendance, ActionRead},
	{RoleEmployee, ResourceAttendance, ActionCreate},
	{RoleEmployee, ResourceAttendance, ActionUpdate},
	{RoleEmployee, ResourceActivity, ActionRead},
	{RoleEmployee, ResourceActivity, ActionCreate},
	{RoleEmployee, ResourceMedicalAlert, ActionRead},
	{RoleEmployee, ResourceMedicalAlert, ActionCreate},
	{RoleEmployee, ResourceMedicalAlert, ActionUpdate},
	{RoleEmployee, ResourceNotification, ActionRead},
	{RoleEmployee, ResourceNotification, ActionUpdate},
}

// NewEnforcer builds the casbin enforcer backing the grant matrix. The policy
// set is fixed at startup; role semantics never change at runtime.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, g := range grants {
		if _, err := e.AddPolicy(g[0], g[1], g[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// rolesAllowed lists the roles the grant matrix admits for resource/action,
// used to build stable role-naming denial messages. Admin always qualifies.
func rolesAllowed(resource, action string) []string {
	roles := make([]string, 0, 3)
	for _, g := range grants {
		if g[1] == resource && g[2] == action {
			roles = append(roles, g[0])
		}
	}
	return append(roles, RoleAdmin)
}
