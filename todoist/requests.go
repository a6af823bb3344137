package todoist

// Request payloads. Fields are tagged with `json:"..."` to control
// serialization, and `omitempty` keeps unset optional parameters out of the
// request. Update payloads use pointers so a zero value can be sent on
// purpose.

// GetTasksArgs filters the active tasks listing.
type GetTasksArgs struct {
	ProjectID string   `json:"project_id,omitempty"`
	SectionID string   `json:"section_id,omitempty"`
	Label     string   `json:"label,omitempty"`
	Filter    string   `json:"filter,omitempty"`
	Lang      string   `json:"lang,omitempty"`
	IDs       []string `json:"ids,omitempty"`
}

// AddTaskArgs is the payload for creating a new task.
type AddTaskArgs struct {
	Content      string   `json:"content"`
	Description  string   `json:"description,omitempty"`
	ProjectID    string   `json:"project_id,omitempty"`
	SectionID    string   `json:"section_id,omitempty"`
	ParentID     string   `json:"parent_id,omitempty"`
	Order        int      `json:"order,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	Priority     int      `json:"priority,omitempty"`
	DueString    string   `json:"due_string,omitempty"`
	DueDate      string   `json:"due_date,omitempty"`
	DueDatetime  string   `json:"due_datetime,omitempty"`
	DueLang      string   `json:"due_lang,omitempty"`
	AssigneeID   string   `json:"assignee_id,omitempty"`
	Duration     int      `json:"duration,omitempty"`
	DurationUnit string   `json:"duration_unit,omitempty"`
}

// QuickAddTaskArgs is the payload for quick add, which parses dates, projects
// and labels out of free text.
type QuickAddTaskArgs struct {
	Text         string `json:"text"`
	Note         string `json:"note,omitempty"`
	Reminder     string `json:"reminder,omitempty"`
	AutoReminder bool   `json:"auto_reminder,omitempty"`
}

// UpdateTaskArgs is the payload for updating a task.
type UpdateTaskArgs struct {
	Content      *string  `json:"content,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	Priority     *int     `json:"priority,omitempty"`
	DueString    *string  `json:"due_string,omitempty"`
	DueDate      *string  `json:"due_date,omitempty"`
	DueDatetime  *string  `json:"due_datetime,omitempty"`
	DueLang      *string  `json:"due_lang,omitempty"`
	AssigneeID   *string  `json:"assignee_id,omitempty"`
	Duration     *int     `json:"duration,omitempty"`
	DurationUnit *string  `json:"duration_unit,omitempty"`
}

// MoveTaskArgs names the destination of a move. Exactly one field must be set.
type MoveTaskArgs struct {
	ProjectID string `json:"project_id,omitempty"`
	SectionID string `json:"section_id,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
}

// ReorderItem sets the position of a task among its siblings.
type ReorderItem struct {
	ID         string `json:"id"`
	ChildOrder int    `json:"child_order"`
}

// AddProjectArgs is the payload for creating a project.
type AddProjectArgs struct {
	Name       string `json:"name"`
	ParentID   string `json:"parent_id,omitempty"`
	Color      string `json:"color,omitempty"`
	IsFavorite *bool  `json:"is_favorite,omitempty"`
	ViewStyle  string `json:"view_style,omitempty"`
}

// UpdateProjectArgs is the payload for updating a project.
type UpdateProjectArgs struct {
	Name       *string `json:"name,omitempty"`
	Color      *string `json:"color,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
	ViewStyle  *string `json:"view_style,omitempty"`
}

// AddSectionArgs is the payload for creating a section.
type AddSectionArgs struct {
	Name      string `json:"name"`
	ProjectID string `json:"project_id"`
	Order     int    `json:"order,omitempty"`
}

// UpdateSectionArgs is the payload for renaming a section.
type UpdateSectionArgs struct {
	Name string `json:"name"`
}

// AddLabelArgs is the payload for creating a personal label.
type AddLabelArgs struct {
	Name       string `json:"name"`
	Order      *int   `json:"order,omitempty"`
	Color      string `json:"color,omitempty"`
	IsFavorite *bool  `json:"is_favorite,omitempty"`
}

// UpdateLabelArgs is the payload for updating a personal label.
type UpdateLabelArgs struct {
	Name       *string `json:"name,omitempty"`
	Order      *int    `json:"order,omitempty"`
	Color      *string `json:"color,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

// RenameSharedLabelArgs renames a shared label everywhere it is used.
type RenameSharedLabelArgs struct {
	Name    string `json:"name"`
	NewName string `json:"new_name"`
}

// RemoveSharedLabelArgs removes a shared label from every task.
type RemoveSharedLabelArgs struct {
	Name string `json:"name"`
}

// GetCommentsArgs selects the comments of a task or of a project. Exactly
// one field must be set.
type GetCommentsArgs struct {
	TaskID    string `json:"task_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
}

// AttachmentArgs describes a file attached to a new comment.
type AttachmentArgs struct {
	FileURL      string `json:"file_url"`
	FileName     string `json:"file_name,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
}

// AddCommentArgs is the payload for commenting on a task or a project.
// Exactly one of TaskID and ProjectID must be set.
type AddCommentArgs struct {
	TaskID     string          `json:"task_id,omitempty"`
	ProjectID  string          `json:"project_id,omitempty"`
	Content    string          `json:"content"`
	Attachment *AttachmentArgs `json:"attachment,omitempty"`
}

// UpdateCommentArgs is the payload for editing a comment.
type UpdateCommentArgs struct {
	Content string `json:"content"`
}
