package models

// Course is a catalog entry.
type Course struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	Price      Amount `json:"price"`
	DriveLink  string `json:"driveLink,omitempty"`
	ExpiryDays Count  `json:"expiryDays,omitempty"`
}

// EnrollmentInfo is the join record nested into enrolled courses.
type EnrollmentInfo struct {
	Progress Count `json:"progress"`
}

// EnrolledCourse is one item of GET /api/enrollments.
type EnrolledCourse struct {
	Course
	Enrollment *EnrollmentInfo `json:"Enrollment,omitempty"`
}

// Progress returns the completion percentage, 0 when unknown.
func (e EnrolledCourse) Progress() int {
	if e.Enrollment == nil {
		return 0
	}
	p := int(e.Enrollment.Progress)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// NewCourse is the payload of POST /api/admin/courses.
type NewCourse struct {
	Title      string  `json:"title" validate:"required"`
	Price      float64 `json:"price" validate:"gt=0"`
	DriveLink  string  `json:"driveLink" validate:"required,url"`
	ExpiryDays int     `json:"expiryDays" validate:"gt=0"`
}
