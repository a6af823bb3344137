package todoist

import (
	"encoding/json"

	"github.com/ziyixi/todoist/todoist/internal/schema"
)

// taskFromQuickAdd maps a Sync API item onto the REST task shape and runs it
// through the task schema.
func taskFromQuickAdd(item *QuickAddTaskResponse) (*Task, error) {
	var creatorID string
	if item.AddedByUID != nil {
		creatorID = *item.AddedByUID
	}

	task := Task{
		ID:           item.ID,
		Order:        item.ChildOrder,
		Content:      item.Content,
		Description:  item.Description,
		ProjectID:    item.ProjectID,
		SectionID:    item.SectionID,
		IsCompleted:  item.Checked,
		Labels:       item.Labels,
		Priority:     item.Priority,
		CommentCount: 0,
		CreatedAt:    item.AddedAt,
		URL:          taskURLPrefix + item.ID,
		CreatorID:    creatorID,
		AssigneeID:   item.ResponsibleUID,
		AssignerID:   item.AssignedByUID,
		ParentID:     item.ParentID,
		Due:          dueFromQuickAdd(item.Due),
		Duration:     item.Duration,
	}

	raw, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	return schema.Decode[Task](raw, taskSchema)
}

func dueFromQuickAdd(due *QuickAddDue) *Due {
	if due == nil {
		return nil
	}
	out := &Due{
		IsRecurring: due.IsRecurring,
		String:      due.String,
		Date:        due.Date,
	}
	if due.Lang != "" {
		lang := due.Lang
		out.Lang = &lang
	}
	if due.Timezone != nil {
		datetime, tz := due.Date, *due.Timezone
		out.Datetime = &datetime
		out.Timezone = &tz
	}
	return out
}
