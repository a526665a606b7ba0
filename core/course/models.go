package course

type (
	Subject struct {
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}

	Item struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}

	Section struct {
		Title string `json:"title"`
		Items []Item `json:"items"`
	}

	// SubjectDetail is a subject with its course sections and, for each
	// assignment, the submitted file name (if any).
	SubjectDetail struct {
		Subject     Subject           `json:"subject"`
		Sections    []Section         `json:"sections"`
		Submissions map[string]string `json:"submissions"` // assignment title -> file name
	}
)

// Section titles
const (
	SectionModules     = "Modules"
	SectionPointers    = "Pointers to Review"
	SectionAssignments = "Assignments"
)

var subjects = []Subject{
	{Name: "Mathematics", Icon: "📐", Color: "#fce7f3"},
	{Name: "Science", Icon: "🔬", Color: "#dbeafe"},
	{Name: "English", Icon: "📚", Color: "#fee2e2"},
	{Name: "History", Icon: "🏰", Color: "#e0f2fe"},
	{Name: "Geography", Icon: "🗺️", Color: "#dcfce7"},
	{Name: "Computer Science", Icon: "💻", Color: "#ede9fe"},
	{Name: "Art", Icon: "🎨", Color: "#fef9c3"},
}

// Every subject shares the same demo sections for now.
var sections = []Section{
	{
		Title: SectionModules,
		Items: []Item{
			{Title: "Module 1: Introduction", Content: "Mathematics is the study of numbers, shapes, and patterns."},
			{Title: "Module 2: Advanced Topics", Content: "Covers calculus and problem-solving techniques."},
			{Title: "Module 3: Practice", Content: "Hands-on exercises and practice problems."},
		},
	},
	{
		Title: SectionPointers,
		Items: []Item{
			{Title: "Key Formula", Content: "List of formulas you should memorize."},
			{Title: "Important Concepts", Content: "Concepts you must understand."},
			{Title: "Sample Questions", Content: "Example questions for practice."},
		},
	},
	{
		Title: SectionAssignments,
		Items: []Item{
			{Title: "Assignment 1", Content: "Solve exercises on page 34-35."},
			{Title: "Assignment 2", Content: "Group activity about measurements."},
			{Title: "Assignment 3", Content: "Create a math puzzle."},
		},
	},
}

// NoteKey identifies one editable private note.
func NoteKey(section, item string) string {
	return section + "::" + item
}

// SubmissionKey identifies one assignment submission slot.
func SubmissionKey(subject, assignment string) string {
	return subject + "::" + assignment
}
