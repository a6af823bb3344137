package todoist

import (
	s "github.com/ziyixi/todoist/todoist/internal/schema"
)

var (
	dueSchema = &s.Schema{
		Name: "due",
		Fields: []s.Field{
			s.Required("is_recurring", s.KindBool),
			s.Required("string", s.KindString),
			s.Required("date", s.KindString),
			s.Optional("datetime", s.KindString),
			s.Optional("timezone", s.KindString),
			s.Optional("lang", s.KindString),
		},
	}

	durationSchema = &s.Schema{
		Name: "duration",
		Fields: []s.Field{
			s.Required("amount", s.KindInt),
			s.Enum("unit", false, "minute", "day"),
		},
	}

	taskSchema = &s.Schema{
		Name: "task",
		Fields: []s.Field{
			s.Required("id", s.KindString),
			s.Required("order", s.KindInt),
			s.Required("content", s.KindString),
			s.Required("description", s.KindString),
			s.Required("project_id", s.KindString),
			s.Optional("section_id", s.KindString),
			s.Required("is_completed", s.KindBool),
			s.ArrayOf("labels", s.Required("", s.KindString), false),
			s.Required("priority", s.KindInt),
			s.Required("comment_count", s.KindInt),
			s.Required("created_at", s.KindString),
			s.Required("url", s.KindString),
			s.Required("creator_id", s.KindString),
			s.Optional("assignee_id", s.KindString),
			s.Optional("assigner_id", s.KindString),
			s.Optional("parent_id", s.KindString),
			s.Object("due", dueSchema, true),
			s.Object("duration", durationSchema, true),
		},
	}

	projectSchema = &s.Schema{
		Name: "project",
		Fields: []s.Field{
			s.Required("id", s.KindString),
			s.Optional("parent_id", s.KindString),
			s.Required("order", s.KindInt),
			s.Required("color", s.KindString),
			s.Required("name", s.KindString),
			s.Required("comment_count", s.KindInt),
			s.Required("is_shared", s.KindBool),
			s.Required("is_favorite", s.KindBool),
			s.Required("is_inbox_project", s.KindBool),
			s.Required("is_team_inbox", s.KindBool),
			s.Required("url", s.KindString),
			s.Required("view_style", s.KindString),
		},
	}

	sectionSchema = &s.Schema{
		Name: "section",
		Fields: []s.Field{
			s.Required("id", s.KindString),
			s.Required("order", s.KindInt),
			s.Required("name", s.KindString),
			s.Required("project_id", s.KindString),
		},
	}

	labelSchema = &s.Schema{
		Name: "label",
		Fields: []s.Field{
			s.Required("id", s.KindString),
			s.Required("order", s.KindInt),
			s.Required("name", s.KindString),
			s.Required("color", s.KindString),
			s.Required("is_favorite", s.KindBool),
		},
	}

	userSchema = &s.Schema{
		Name: "user",
		Fields: []s.Field{
			s.Required("id", s.KindString),
			s.Required("name", s.KindString),
			s.Required("email", s.KindEmail),
		},
	}

	attachmentSchema = &s.Schema{
		Name: "attachment",
		Fields: []s.Field{
			s.Required("resource_type", s.KindString),
			s.Optional("file_name", s.KindString),
			s.Optional("file_size", s.KindInt),
			s.Optional("file_type", s.KindString),
			s.Optional("file_url", s.KindString),
			s.Optional("file_duration", s.KindInt),
			s.Enum("upload_state", true, "pending", "completed"),
			s.Optional("image", s.KindString),
			s.Optional("image_width", s.KindInt),
			s.Optional("image_height", s.KindInt),
			s.Optional("url", s.KindString),
			s.Optional("title", s.KindString),
		},
	}

	commentSchema = &s.Schema{
		Name: "comment",
		Fields: []s.Field{
			s.Required("id", s.KindString),
			s.Optional("task_id", s.KindString),
			s.Optional("project_id", s.KindString),
			s.Required("content", s.KindString),
			s.Required("posted_at", s.KindString),
			s.Object("attachment", attachmentSchema, true),
		},
	}

	quickAddDueSchema = &s.Schema{
		Name: "quick add due",
		Fields: []s.Field{
			s.Required("date", s.KindString),
			s.Optional("timezone", s.KindString),
			s.Required("is_recurring", s.KindBool),
			s.Required("string", s.KindString),
			s.Required("lang", s.KindString),
		},
	}

	quickAddSchema = &s.Schema{
		Name: "quick add task",
		Fields: []s.Field{
			s.Required("id", s.KindString),
			s.Required("project_id", s.KindString),
			s.Required("content", s.KindString),
			s.Required("description", s.KindString),
			s.Required("priority", s.KindInt),
			s.Optional("section_id", s.KindString),
			s.Optional("parent_id", s.KindString),
			s.Required("child_order", s.KindInt),
			s.ArrayOf("labels", s.Required("", s.KindString), false),
			s.Optional("assigned_by_uid", s.KindString),
			s.Optional("responsible_uid", s.KindString),
			s.Required("checked", s.KindBool),
			s.Required("added_at", s.KindString),
			s.Optional("added_by_uid", s.KindString),
			s.Object("due", quickAddDueSchema, true),
			s.Object("duration", durationSchema, true),
		},
	}

	sharedLabelElem = s.Required("", s.KindString)
)
