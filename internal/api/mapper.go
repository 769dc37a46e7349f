package api

import (
	"github.com/mlukashev/task-manager-api/internal/domain"
)

// Entity-to-DTO conversions. Handlers never serialize domain entities
// directly; the wire format is pinned down here.

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: Date{user.CreatedAt},
	}
}

func toUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	return out
}

func toTaskStatusResponse(status *domain.TaskStatus) TaskStatusResponse {
	return TaskStatusResponse{
		ID:        status.ID,
		Name:      status.Name,
		Slug:      status.Slug,
		CreatedAt: Date{status.CreatedAt},
	}
}

func toTaskStatusResponses(statuses []*domain.TaskStatus) []TaskStatusResponse {
	out := make([]TaskStatusResponse, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, toTaskStatusResponse(status))
	}
	return out
}

func toLabelResponse(label *domain.Label) LabelResponse {
	return LabelResponse{
		ID:        label.ID,
		Name:      label.Name,
		CreatedAt: Date{label.CreatedAt},
	}
}

func toLabelResponses(labels []*domain.Label) []LabelResponse {
	out := make([]LabelResponse, 0, len(labels))
	for _, label := range labels {
		out = append(out, toLabelResponse(label))
	}
	return out
}

func toTaskResponse(task *domain.Task) TaskResponse {
	labelIDs := task.LabelIDs
	if labelIDs == nil {
		labelIDs = []int64{}
	}
	return TaskResponse{
		ID:         task.ID,
		Title:      task.Title,
		Index:      task.Index,
		Content:    task.Content,
		Status:     task.StatusSlug,
		AssigneeID: task.AssigneeID,
		LabelIDs:   labelIDs,
		CreatedAt:  Date{task.CreatedAt},
	}
}

func toTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskResponse(task))
	}
	return out
}
