package utils

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// CheckPermission reports whether the member holding userRoleIDs has the admin role.
func CheckPermission(userRoleIDs []string, adminRoleID string) bool {
	if adminRoleID == "" {
		return false
	}
	return contains(userRoleIDs, adminRoleID)
}

// HasRole reports whether roleID is among roleIDs.
func HasRole(roleIDs []string, roleID string) bool {
	return contains(roleIDs, roleID)
}
