package formaterror

import "strings"

// FormatError translates raw database errors into field-level messages
// suitable for redisplaying a form.
func FormatError(errString string) map[string]string {
	errorMessages := make(map[string]string)
	lower := strings.ToLower(errString)

	if strings.Contains(lower, "username") {
		errorMessages["Taken_username"] = "Username Already Taken"
	}
	if strings.Contains(lower, "email") {
		errorMessages["Taken_email"] = "Email Already Taken"
	}
	if strings.Contains(lower, "slug") {
		errorMessages["Taken_slug"] = "Slug Already Taken"
	}
	if strings.Contains(lower, "hashedpassword") || strings.Contains(lower, "mismatched") {
		errorMessages["Incorrect_password"] = "Incorrect Password"
	}
	if strings.Contains(lower, "record not found") {
		errorMessages["No_record"] = "No Record Found"
	}
	if len(errorMessages) > 0 {
		return errorMessages
	}
	return map[string]string{"Incorrect_details": "Incorrect Details"}
}
