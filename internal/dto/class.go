package dto

// Classroom is a class owned by a teacher. Join codes are only present in
// teacher-facing responses.
type Classroom struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	JoinCode  *string `json:"joinCode,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// CreateClassRequest is the payload of POST /api/classes.
type CreateClassRequest struct {
	Name string `json:"name" validate:"required"`
}

// JoinClassRequest is the payload of POST /api/classes/join. The code is
// normalized (trimmed, uppercased) by the client before sending.
type JoinClassRequest struct {
	Code string `json:"code" validate:"required"`
}

// ClassMember is one row of GET /api/classes/{id}/members.
type ClassMember struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      string  `json:"role"`
	JoinedAt  string  `json:"joinedAt"`
}

// ClassStudent identifies a student in progress matrices.
type ClassStudent struct {
	StudentID string  `json:"studentId"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}
