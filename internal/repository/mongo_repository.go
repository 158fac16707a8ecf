package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aryan0dhankhar/workforce/internal/domain"
	"github.com/aryan0dhankhar/workforce/pkg/database"
)

type employeeDocument struct {
	ID          string    `bson:"_id"`
	Seq         int64     `bson:"seq"`
	FirstName   string    `bson:"first_name"`
	LastName    string    `bson:"last_name"`
	Email       string    `bson:"email"`
	Designation string    `bson:"designation"`
	Department  string    `bson:"department"`
	HireDate    time.Time `bson:"hire_date"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d *employeeDocument) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:          d.ID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		Designation: d.Designation,
		Department:  d.Department,
		HireDate:    d.HireDate.UTC(),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

type taskDocument struct {
	ID          string    `bson:"_id"`
	Seq         int64     `bson:"seq"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	AssignedTo  string    `bson:"assigned_to"`
	Status      string    `bson:"status"`
	Priority    string    `bson:"priority"`
	DueDate     time.Time `bson:"due_date"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newTaskDocument(t *domain.Task, seq int64) *taskDocument {
	return &taskDocument{
		ID:          t.ID,
		Seq:         seq,
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d *taskDocument) toDomain() (*domain.Task, error) {
	status, err := domain.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}
	priority, err := domain.ParsePriority(d.Priority)
	if err != nil {
		return nil, err
	}
	return &domain.Task{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		AssignedTo:  d.AssignedTo,
		Status:      status,
		Priority:    priority,
		DueDate:     d.DueDate.UTC(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}

// nextSeq allocates a monotonically increasing sequence number per collection
// so listings keep insertion order even when created_at values collide.
func nextSeq(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := db.Collection(database.CountersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	return counter.Value, err
}

var bySeq = options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

// MongoEmployeeRepository implements domain.EmployeeRepository on MongoDB
type MongoEmployeeRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoEmployeeRepository creates a new employee repository
func NewMongoEmployeeRepository(db *mongo.Database, logger *slog.Logger) *MongoEmployeeRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoEmployeeRepository{
		db:         db,
		collection: db.Collection(database.EmployeesCollection),
		logger:     logger,
	}
}

// Create inserts a new employee; the unique email index rejects duplicates
func (r *MongoEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	seq, err := nextSeq(ctx, r.db, database.EmployeesCollection)
	if err != nil {
		return domain.NewStoreFailure("create employee", err)
	}

	employee.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc := &employeeDocument{
		ID:          employee.ID,
		Seq:         seq,
		FirstName:   employee.FirstName,
		LastName:    employee.LastName,
		Email:       employee.Email,
		Designation: employee.Designation,
		Department:  employee.Department,
		HireDate:    employee.HireDate,
		CreatedAt:   employee.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		r.logger.Error("failed to create employee",
			slog.String("email", employee.Email),
			slog.String("error", err.Error()),
		)
		return domain.NewStoreFailure("create employee", err)
	}
	return nil
}

// GetByID retrieves an employee by ID
func (r *MongoEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return r.findOne(ctx, "get employee", bson.M{"_id": id})
}

// GetByEmail retrieves an employee by email. Emails are stored lower-cased.
func (r *MongoEmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, "get employee by email", bson.M{"email": email})
}

func (r *MongoEmployeeRepository) findOne(ctx context.Context, op string, filter bson.M) (*domain.Employee, error) {
	var doc employeeDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, domain.NewStoreFailure(op, err)
	}
	return doc.toDomain(), nil
}

// List returns all employees in insertion order
func (r *MongoEmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	docs, err := r.find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("failed to list employees", slog.String("error", err.Error()))
		return nil, domain.NewStoreFailure("list employees", err)
	}
	employees := make([]*domain.Employee, 0, len(docs))
	for i := range docs {
		employees = append(employees, docs[i].toDomain())
	}
	return employees, nil
}

// FindByIDs resolves summaries for the given IDs with a single $in query
func (r *MongoEmployeeRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.EmployeeSummary, error) {
	out := make(map[string]*domain.EmployeeSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	docs, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, domain.NewStoreFailure("find employees", err)
	}
	for i := range docs {
		e := docs[i].toDomain()
		out[e.ID] = e.Summary()
	}
	return out, nil
}

// ExistingIDs reports which of ids are stored, projecting only _id
func (r *MongoEmployeeRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, domain.NewStoreFailure("check employees", err)
	}
	defer cursor.Close(ctx)

	var keys []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &keys); err != nil {
		return nil, domain.NewStoreFailure("check employees", err)
	}
	for _, k := range keys {
		out[k.ID] = true
	}
	return out, nil
}

func (r *MongoEmployeeRepository) find(ctx context.Context, filter bson.M) ([]employeeDocument, error) {
	cursor, err := r.collection.Find(ctx, filter, bySeq)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []employeeDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// MongoTaskRepository implements domain.TaskRepository on MongoDB.
// MongoDB has no foreign keys, so the assignee is checked right before the
// write; an employee removed in between would leave an orphan, which the
// enrichment path renders as an unresolved assignee.
type MongoTaskRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
	employees  *mongo.Collection
	logger     *slog.Logger
}

// NewMongoTaskRepository creates a new task repository
func NewMongoTaskRepository(db *mongo.Database, logger *slog.Logger) *MongoTaskRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoTaskRepository{
		db:         db,
		collection: db.Collection(database.TasksCollection),
		employees:  db.Collection(database.EmployeesCollection),
		logger:     logger,
	}
}

func (r *MongoTaskRepository) assigneeExists(ctx context.Context, id string) (bool, error) {
	n, err := r.employees.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// Create inserts a new task if its assignee exists
func (r *MongoTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	ok, err := r.assigneeExists(ctx, task.AssignedTo)
	if err != nil {
		return domain.NewStoreFailure("create task", err)
	}
	if !ok {
		return domain.ErrEmployeeNotFound
	}

	seq, err := nextSeq(ctx, r.db, database.TasksCollection)
	if err != nil {
		return domain.NewStoreFailure("create task", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	task.CreatedAt = now
	task.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, newTaskDocument(task, seq)); err != nil {
		r.logger.Error("failed to create task", slog.String("error", err.Error()))
		return domain.NewStoreFailure("create task", err)
	}
	return nil
}

// GetByID retrieves a task by ID
func (r *MongoTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var doc taskDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.NewStoreFailure("get task", err)
	}
	task, err := doc.toDomain()
	if err != nil {
		return nil, domain.NewStoreFailure("get task", err)
	}
	return task, nil
}

// List returns all tasks in insertion order
func (r *MongoTaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, bySeq)
	if err != nil {
		r.logger.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, domain.NewStoreFailure("list tasks", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreFailure("list tasks", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		task, err := docs[i].toDomain()
		if err != nil {
			return nil, domain.NewStoreFailure("list tasks", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Update replaces the mutable fields of a task
func (r *MongoTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	var existing taskDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": task.ID}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrTaskNotFound
		}
		return domain.NewStoreFailure("update task", err)
	}

	if task.AssignedTo != existing.AssignedTo {
		ok, err := r.assigneeExists(ctx, task.AssignedTo)
		if err != nil {
			return domain.NewStoreFailure("update task", err)
		}
		if !ok {
			return domain.ErrEmployeeNotFound
		}
	}

	task.CreatedAt = existing.CreatedAt.UTC()
	task.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	set := bson.M{
		"title":       task.Title,
		"description": task.Description,
		"assigned_to": task.AssignedTo,
		"status":      task.Status.String(),
		"priority":    task.Priority.String(),
		"due_date":    task.DueDate,
		"updated_at":  task.UpdatedAt,
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": task.ID}, bson.M{"$set": set})
	if err != nil {
		return domain.NewStoreFailure("update task", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task
func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.NewStoreFailure("delete task", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
