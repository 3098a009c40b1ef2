package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phrazzld/task-api/internal/domain"
)

// taskDocument is the persisted shape of a task.
type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description,omitempty"`
	Status      string             `bson:"status"`
}

func documentFromTask(task *domain.Task) taskDocument {
	return taskDocument{
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
	}
}

func (d taskDocument) toTask() *domain.Task {
	task := &domain.Task{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Status: domain.Status(d.Status),
	}
	if d.Description != nil {
		desc := *d.Description
		task.Description = &desc
	}
	return task
}

// setDocument builds the $set operand for a patch. Fields absent from the
// patch are not mentioned so they keep their stored value.
func setDocument(patch domain.TaskPatch) bson.D {
	set := bson.D{}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*patch.Status)})
	}
	return set
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.NewValidationError(
			"id",
			"has invalid format",
			domain.ErrInvalidID,
		)
	}
	return oid, nil
}
