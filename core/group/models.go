package group

import "time"

// Member roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type (
	Group struct {
		ID        string `json:"id"`
		Name      string `json:"group_name"`
		CreatorID string `json:"creator_id"`
	}

	Member struct {
		StudentID string `json:"student_id"`
		Role      string `json:"role"`
	}

	File struct {
		ID         string    `json:"file_id"`
		Name       string    `json:"file_name"`
		UploaderID string    `json:"uploader_id"`
		UploadedAt time.Time `json:"uploaded_at"` // UTC
	}

	ChatMessage struct {
		SenderID  string    `json:"sender_id"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"` // UTC
	}

	// Detail bundles a group with its collections for the detail page.
	Detail struct {
		Group    Group         `json:"group"`
		Members  []Member      `json:"members"`
		Files    []File        `json:"files"`    // most-recent-first
		Messages []ChatMessage `json:"messages"` // oldest-first
	}
)

func (g Group) IsCreator(studentID string) bool {
	return studentID != "" && g.CreatorID == studentID
}
