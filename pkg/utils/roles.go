package utils

const (
	RoleCustomer = "CUSTOMER"
	RolePromoter = "PROMOTER"
	RoleAdmin    = "ADMIN"
)

// SignupRoles are the roles a user may self-assign at registration.
// ADMIN accounts are seeded out of band and never created through signup.
var SignupRoles = []string{RoleCustomer, RolePromoter}
