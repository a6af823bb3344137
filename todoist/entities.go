package todoist

// Optional fields are pointers without omitempty: a field the server did not
// send is always present as null when the entity is encoded again.

// Task represents a Todoist task object as returned by the REST API.
type Task struct {
	ID           string    `json:"id"`
	Order        int       `json:"order"`
	Content      string    `json:"content"`
	Description  string    `json:"description"`
	ProjectID    string    `json:"project_id"`
	SectionID    *string   `json:"section_id"`
	IsCompleted  bool      `json:"is_completed"`
	Labels       []string  `json:"labels"`
	Priority     int       `json:"priority"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    string    `json:"created_at"`
	URL          string    `json:"url"`
	CreatorID    string    `json:"creator_id"`
	AssigneeID   *string   `json:"assignee_id"`
	AssignerID   *string   `json:"assigner_id"`
	ParentID     *string   `json:"parent_id"`
	Due          *Due      `json:"due"`
	Duration     *Duration `json:"duration"`
}

// Due is the due date of a task.
type Due struct {
	IsRecurring bool    `json:"is_recurring"`
	String      string  `json:"string"`
	Date        string  `json:"date"`
	Datetime    *string `json:"datetime"`
	Timezone    *string `json:"timezone"`
	Lang        *string `json:"lang"`
}

// Duration is the estimated time of a task.
type Duration struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
}

// Project represents a Todoist project.
type Project struct {
	ID             string  `json:"id"`
	ParentID       *string `json:"parent_id"`
	Order          int     `json:"order"`
	Color          string  `json:"color"`
	Name           string  `json:"name"`
	CommentCount   int     `json:"comment_count"`
	IsShared       bool    `json:"is_shared"`
	IsFavorite     bool    `json:"is_favorite"`
	IsInboxProject bool    `json:"is_inbox_project"`
	IsTeamInbox    bool    `json:"is_team_inbox"`
	URL            string  `json:"url"`
	ViewStyle      string  `json:"view_style"`
}

// Section represents a section of a project.
type Section struct {
	ID        string `json:"id"`
	Order     int    `json:"order"`
	Name      string `json:"name"`
	ProjectID string `json:"project_id"`
}

// Label represents a personal label.
type Label struct {
	ID         string `json:"id"`
	Order      int    `json:"order"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	IsFavorite bool   `json:"is_favorite"`
}

// User is a collaborator of a shared project.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Attachment is a file or link attached to a comment.
type Attachment struct {
	ResourceType string  `json:"resource_type"`
	FileName     *string `json:"file_name"`
	FileSize     *int    `json:"file_size"`
	FileType     *string `json:"file_type"`
	FileURL      *string `json:"file_url"`
	FileDuration *int    `json:"file_duration"`
	UploadState  *string `json:"upload_state"`
	Image        *string `json:"image"`
	ImageWidth   *int    `json:"image_width"`
	ImageHeight  *int    `json:"image_height"`
	URL          *string `json:"url"`
	Title        *string `json:"title"`
}

// Comment is a note on a task or a project.
type Comment struct {
	ID         string      `json:"id"`
	TaskID     *string     `json:"task_id"`
	ProjectID  *string     `json:"project_id"`
	Content    string      `json:"content"`
	PostedAt   string      `json:"posted_at"`
	Attachment *Attachment `json:"attachment"`
}

// QuickAddTaskResponse is the Sync API item returned by quick add.
type QuickAddTaskResponse struct {
	ID             string       `json:"id"`
	ProjectID      string       `json:"project_id"`
	Content        string       `json:"content"`
	Description    string       `json:"description"`
	Priority       int          `json:"priority"`
	SectionID      *string      `json:"section_id"`
	ParentID       *string      `json:"parent_id"`
	ChildOrder     int          `json:"child_order"`
	Labels         []string     `json:"labels"`
	AssignedByUID  *string      `json:"assigned_by_uid"`
	ResponsibleUID *string      `json:"responsible_uid"`
	Checked        bool         `json:"checked"`
	AddedAt        string       `json:"added_at"`
	AddedByUID     *string      `json:"added_by_uid"`
	Due            *QuickAddDue `json:"due"`
	Duration       *Duration    `json:"duration"`
}

// QuickAddDue is the Sync API representation of a due date. Date holds a
// datetime when Timezone is set.
type QuickAddDue struct {
	Date        string  `json:"date"`
	Timezone    *string `json:"timezone"`
	IsRecurring bool    `json:"is_recurring"`
	String      string  `json:"string"`
	Lang        string  `json:"lang"`
}
