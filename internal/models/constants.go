package models

// Category assigned when a source record carries no label.
const CategoryUncategorized = "Uncategorized"

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
)
