package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// CollectionName is the collection holding task documents.
const CollectionName = "tasks"

// TaskStore implements store.TaskStore on top of a MongoDB collection.
type TaskStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Connect dials uri, verifies the deployment answers a primary ping within
// timeout and returns a store bound to the tasks collection of dbName.
func Connect(
	ctx context.Context,
	uri string,
	dbName string,
	timeout time.Duration,
	logger *slog.Logger,
) (*TaskStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewTaskStore(client, dbName, logger), nil
}

// NewTaskStore wraps an already connected client. The store takes ownership
// of the client and disconnects it in Close.
func NewTaskStore(client *mongo.Client, dbName string, logger *slog.Logger) *TaskStore {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		client:     client,
		collection: client.Database(dbName).Collection(CollectionName),
		logger:     logger.With(slog.String("component", "task_store")),
	}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc := documentFromTask(task)
	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		log.Error("failed to insert task", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "create", "insert failed", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, store.NewStoreError("task", "create",
			fmt.Sprintf("unexpected inserted id type %T", res.InsertedID), nil)
	}
	doc.ID = oid

	created := doc.toTask()
	log.Debug("task created", slog.String("task_id", created.ID))
	return created, nil
}

// List implements store.TaskStore.List
// Documents are returned in natural order, which is insertion order for an
// append-only workload.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "find failed", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Error("failed to decode tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "decode failed", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toTask())
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	filter := bson.D{{Key: "_id", Value: oid}}

	var doc taskDocument
	if patch.IsEmpty() {
		err = s.collection.FindOne(ctx, filter).Decode(&doc)
	} else {
		update := bson.D{{Key: "$set", Value: setDocument(patch)}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	}

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("task not found for update", slog.String("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, store.NewStoreError("task", "update", "find and update failed", err)
	}

	log.Debug("task updated", slog.String("task_id", id))
	return doc.toTask(), nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", err)
	}

	if res.DeletedCount == 0 {
		log.Debug("task not found for delete", slog.String("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted", slog.String("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping
func (s *TaskStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close implements store.TaskStore.Close
func (s *TaskStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
