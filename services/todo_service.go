package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vishnukbarath/sharedtodo/models"

	"gorm.io/gorm"
)

// ErrTodoNotFound covers both a missing todo and a todo belonging to
// another couple. Mutations filter by the caller's couple id, so a
// cross-workspace probe cannot tell "absent" from "not yours".
var ErrTodoNotFound = errors.New("todo not found")

type TodoService struct {
	db       *gorm.DB
	activity *ActivityService
	push     *PushService // optional, nil when push is disabled
}

func NewTodoService(db *gorm.DB, activity *ActivityService, push *PushService) *TodoService {
	return &TodoService{db: db, activity: activity, push: push}
}

type TodoInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  string     `json:"assignedTo" binding:"omitempty,oneof=him her both"`
}

// TodoUpdate uses pointers so a PATCH can change one field without
// clobbering the rest.
type TodoUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending completed"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *string    `json:"assignedTo" binding:"omitempty,oneof=him her both"`
}

// List returns the couple's todos newest-first, comments oldest-first.
func (s *TodoService) List(coupleID uint) ([]models.Todo, error) {
	var todos []models.Todo
	err := s.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Where("couple_id = ?", coupleID).
		Order("created_at DESC, id DESC").
		Find(&todos).Error
	return todos, err
}

func (s *TodoService) Create(coupleID, userID uint, in TodoInput) (*models.Todo, error) {
	todo := models.Todo{
		CoupleID:    coupleID,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusPending,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   userID,
		Comments:    []models.Comment{},
	}
	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}
	if todo.AssignedTo == "" {
		todo.AssignedTo = models.AssignedBoth
	}

	if err := s.db.Create(&todo).Error; err != nil {
		return nil, err
	}

	s.activity.Log(coupleID, userID, models.ActionCreateTodo, fmt.Sprintf("Created task: %s", todo.Title))
	s.notifyPartner(coupleID, userID, "New task", fmt.Sprintf("%s was added to your list", todo.Title))

	return &todo, nil
}

// Update applies a partial patch. Completing a task logs complete_todo, but
// only when the status actually flips on this write; a repeated
// completed -> completed save stays silent.
func (s *TodoService) Update(coupleID, userID, todoID uint, in TodoUpdate) (*models.Todo, error) {
	todo, err := s.getScoped(coupleID, todoID)
	if err != nil {
		return nil, err
	}

	wasCompleted := todo.Status == models.StatusCompleted

	if in.Title != nil {
		todo.Title = *in.Title
	}
	if in.Description != nil {
		todo.Description = *in.Description
	}
	if in.Status != nil {
		todo.Status = *in.Status
	}
	if in.Priority != nil {
		todo.Priority = *in.Priority
	}
	if in.DueDate != nil {
		todo.DueDate = in.DueDate
	}
	if in.AssignedTo != nil {
		todo.AssignedTo = *in.AssignedTo
	}

	if err := s.db.Save(todo).Error; err != nil {
		return nil, err
	}

	if !wasCompleted && todo.Status == models.StatusCompleted {
		s.activity.Log(coupleID, userID, models.ActionCompleteTodo, fmt.Sprintf("Completed task: %s", todo.Title))
		s.notifyPartner(coupleID, userID, "Task completed", fmt.Sprintf("%s is done", todo.Title))
	}

	return todo, nil
}

// Delete removes a todo and its comments. Never logs activity.
func (s *TodoService) Delete(coupleID, todoID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getScopedTx(tx, coupleID, todoID); err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", todoID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Todo{}, todoID).Error
	})
}

// AddComment appends to a todo after checking it belongs to the caller's
// couple.
func (s *TodoService) AddComment(coupleID, userID, todoID uint, content string) (*models.Comment, error) {
	if _, err := s.getScoped(coupleID, todoID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		TodoID:  todoID,
		UserID:  userID,
		Content: content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *TodoService) getScoped(coupleID, todoID uint) (*models.Todo, error) {
	return s.getScopedTx(s.db, coupleID, todoID)
}

func (s *TodoService) getScopedTx(tx *gorm.DB, coupleID, todoID uint) (*models.Todo, error) {
	var todo models.Todo
	err := tx.Where("id = ? AND couple_id = ?", todoID, coupleID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &todo, nil
}

// notifyPartner pushes to the other member's devices. Best-effort.
func (s *TodoService) notifyPartner(coupleID, actorID uint, title, body string) {
	if s.push == nil {
		return
	}
	var members []models.CoupleMember
	if err := s.db.Where("couple_id = ?", coupleID).Find(&members).Error; err != nil {
		return
	}
	for _, m := range members {
		if m.UserID != actorID {
			s.push.PushToUser(m.UserID, title, body, map[string]string{"coupleId": fmt.Sprint(coupleID)})
		}
	}
}
