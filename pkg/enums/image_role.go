package enums

import "fmt"

// ImageRole distinguishes the two renditions a variant carries.
type ImageRole string

const (
	ImageRoleMain  ImageRole = "main"
	ImageRoleHover ImageRole = "hover"
)

var validImageRoles = []ImageRole{
	ImageRoleMain,
	ImageRoleHover,
}

// String implements fmt.Stringer.
func (r ImageRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ImageRole.
func (r ImageRole) IsValid() bool {
	for _, candidate := range validImageRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseImageRole converts raw input into an ImageRole.
func ParseImageRole(value string) (ImageRole, error) {
	for _, candidate := range validImageRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid image role %q", value)
}
