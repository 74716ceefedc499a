package appointments

import (
	"strings"

	"shopdesk/internal/models"
)

// Match is the appointment list search: case-insensitive on the name, plain
// substring on the contact number and on the raw preferred date.
func Match(a models.Appointment, query string) bool {
	return strings.Contains(strings.ToLower(a.Name), strings.ToLower(query)) ||
		strings.Contains(a.ContactNumber, query) ||
		strings.Contains(a.PreferredDate, query)
}
