package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard-be/internal/models"
)

// sqliteTimeFormat is the layout the sqlite driver parses back into
// time.Time for DATETIME columns. UTC timestamps in this layout also sort
// lexicographically, which the createdAt-descending listing relies on.
const sqliteTimeFormat = "2006-01-02 15:04:05.999999999-07:00"

// Sentinel errors the handlers map onto the legacy status codes.
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrNoTaskForUser = errors.New("no task for user")
	ErrNotTaskOwner  = errors.New("task does not belong to user")
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	GetAllTasks() ([]models.Task, error)
	GetTaskByID(id string) (models.Task, error)
	GetTaskForUser(userID string) (models.TaskWithOwner, error)
	CreateTask(userID, title, description, deadline string) (models.Task, error)
	DeleteTask(id, userID string) error
}

// TaskService provides business logic for task management.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// scanTask is a helper to scan a task from a row or rows object.
func scanTask(scanner interface{ Scan(...interface{}) error }) (models.Task, error) {
	var task models.Task
	var userID, deadline sql.NullString

	err := scanner.Scan(&task.ID, &userID, &task.Title, &task.Description, &deadline, &task.CreatedAt)
	if err != nil {
		return task, err
	}

	if userID.Valid {
		task.User = &userID.String
	}
	task.Deadline = deadline.String
	return task, nil
}

// GetAllTasks retrieves every task, newest first. The createdAt-descending
// order is part of the listing contract.
func (s *TaskService) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query("SELECT id, user_id, title, description, deadline, created_at FROM tasks ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// GetTaskByID retrieves a single task by its ID.
func (s *TaskService) GetTaskByID(id string) (models.Task, error) {
	row := s.db.QueryRow("SELECT id, user_id, title, description, deadline, created_at FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, fmt.Errorf("task with ID %s: %w", id, ErrTaskNotFound)
		}
		return models.Task{}, err
	}
	return task, nil
}

// GetTaskForUser retrieves the first task owned by the given user, with the
// owner's public fields resolved. Owner stays nil on a dangling reference.
func (s *TaskService) GetTaskForUser(userID string) (models.TaskWithOwner, error) {
	row := s.db.QueryRow(`
		SELECT t.id, t.title, t.description, t.deadline, t.created_at, u.id, u.name, u.avatar
		FROM tasks t
		LEFT JOIN users u ON u.id = t.user_id
		WHERE t.user_id = ?
		LIMIT 1`, userID)

	var task models.TaskWithOwner
	var deadline, ownerID, ownerName, ownerAvatar sql.NullString
	err := row.Scan(&task.ID, &task.Title, &task.Description, &deadline, &task.CreatedAt, &ownerID, &ownerName, &ownerAvatar)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.TaskWithOwner{}, fmt.Errorf("user %s: %w", userID, ErrNoTaskForUser)
		}
		return models.TaskWithOwner{}, err
	}

	task.Deadline = deadline.String
	if ownerID.Valid {
		task.Owner = &models.TaskOwner{
			ID:     ownerID.String,
			Name:   ownerName.String,
			Avatar: ownerAvatar.String,
		}
	}
	return task, nil
}

// CreateTask persists a new task owned by the given user. Title emptiness is
// left to the store's own constraint, a separate failure path from the
// description validator.
func (s *TaskService) CreateTask(userID, title, description, deadline string) (models.Task, error) {
	task := models.Task{
		ID:          uuid.New().String(),
		User:        &userID,
		Title:       title,
		Description: description,
		Deadline:    deadline,
		CreatedAt:   time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO tasks(id, user_id, title, description, deadline, created_at) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Task{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(task.ID, task.User, task.Title, task.Description, task.Deadline, task.CreatedAt.Format(sqliteTimeFormat))
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task after checking that the acting user owns it.
// The ownership decision is made from the by-id lookup alone.
func (s *TaskService) DeleteTask(id, userID string) error {
	task, err := s.GetTaskByID(id)
	if err != nil {
		return err
	}

	if task.User == nil || *task.User != userID {
		return ErrNotTaskOwner
	}

	_, err = s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	return err
}
